package types

import "errors"

// Sentinel errors for config-ready operations. All three evaluator errors
// are configuration-authoring mistakes, surfaced loudly rather than masked
// by a silent fall-back to the default value.
var (
	// ErrMissingSeed indicates a percentage condition was evaluated against
	// a context without the percentageSeed attribute.
	ErrMissingSeed = errors.New("context is missing required field percentageSeed")

	// ErrUnknownEvaluator indicates a customCondition referenced an
	// evaluator name that is not registered.
	ErrUnknownEvaluator = errors.New("custom evaluator is not registered")

	// ErrUnsupportedFieldType indicates a condition or context value is
	// neither a primitive scalar, a sequence of scalars, nor a recognized
	// structured shape.
	ErrUnsupportedFieldType = errors.New("unsupported context field type")

	// ErrEmptySetting indicates an entry with an empty setting identifier.
	ErrEmptySetting = errors.New("setting identifier is empty")

	// ErrPercentageOutOfRange indicates a percentage or randomPercentage
	// value outside [0, 100].
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")

	// ErrCircularDependency indicates a cycle between settings that
	// reference each other through setting conditions.
	ErrCircularDependency = errors.New("circular setting dependency")

	// ErrDuplicateSetting indicates a document defines the same setting
	// name more than once.
	ErrDuplicateSetting = errors.New("duplicate setting in document")

	// ErrDocumentNotFound indicates no stored document matched the
	// requested name or snapshot ID.
	ErrDocumentNotFound = errors.New("settings document not found")
)

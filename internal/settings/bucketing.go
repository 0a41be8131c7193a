// internal/settings/bucketing.go
package settings

import (
	"crypto/sha1" //nolint:gosec // not used on credentials, only for stable bucketing
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/theogravity/config-ready/internal/types"
)

/*
 * Deterministic percentage bucketing.
 *
 * Maps (setting, percentageSeed) to a stable bucket in [0, 100): SHA-1 over
 * "setting.seed", first 15 hex digits parsed base 16, scaled by the 60-bit
 * ceiling. The same seed always lands in the same bucket for the same
 * setting, so a rollout percentage can be raised without reshuffling users
 * already inside it. Different settings hash the same seed to independent
 * buckets.
 *
 * 15 hex digits keep the parsed value within int64 range; the scale
 * constant is the corresponding all-ones ceiling so the ratio stays below 1.
 */

const bucketScale = float64(0xFFFFFFFFFFFFFFF)

// Bucket computes the deterministic rollout bucket in [0, 100) for a
// setting and seed. Seed must be a string or a number.
func Bucket(setting string, seed any) (float64, error) {
	id, err := seedString(seed)
	if err != nil {
		return 0, err
	}

	h := sha1.New() //nolint:gosec // insecure hashing is fine here
	_, _ = io.WriteString(h, setting+"."+id)
	digest := hex.EncodeToString(h.Sum(nil))[:15]

	n, _ := strconv.ParseInt(digest, 16, 64)
	return float64(n) / bucketScale * 100, nil
}

// seedString renders a seed attribute for hashing. Integral floats print
// without a fraction so a JSON-decoded 42 and a literal "42" bucket alike.
func seedString(seed any) (string, error) {
	switch s := seed.(type) {
	case string:
		return s, nil
	default:
		if n, ok := toFloat64(seed); ok {
			if n == float64(int64(n)) {
				return strconv.FormatInt(int64(n), 10), nil
			}
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		}
		return "", fmt.Errorf("condition %q: seed %v: %w", keyPercentage, seed, types.ErrUnsupportedFieldType)
	}
}

package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Keys that never take part in a content fingerprint.
var fingerprintExcluded = map[string]struct{}{
	mdfp.FingerprintField: {},
	"lastmod":             {},
}

// Fingerprint computes the content fingerprint of a front-matter/body pair. The
// fields are serialized canonically so YAML and TOML sources with the same values
// hash alike. A nil or empty field map hashes the body alone.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, skip := fingerprintExcluded[k]; skip {
			continue
		}
		forHash[k] = v
	}

	fm := ""
	if len(forHash) > 0 {
		serialized, err := Canonical(forHash)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

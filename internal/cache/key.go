package cache

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// foldAccents strips combining marks so "Café" and "Cafe" key identically.
var foldAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key builds the deterministic cache key for a source/company pair:
// "{source}_{normalized}". Normalization lowercases, folds accents and
// strips everything outside [a-z0-9], so capitalization and punctuation
// variants of a company name collide onto the same slot.
func Key(source model.SourceType, companyName string) string {
	folded, _, err := transform.String(foldAccents, companyName)
	if err != nil {
		folded = companyName
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return string(source) + "_" + b.String()
}

// IsExpired reports whether an entry is too old to serve. Entries with no
// timestamp are always expired. The boundary is inclusive: an entry exactly
// maxAge old is expired.
func IsExpired(entry *Entry, maxAge time.Duration) bool {
	if entry == nil || entry.Timestamp.IsZero() {
		return true
	}
	return time.Since(entry.Timestamp) >= maxAge
}

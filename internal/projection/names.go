package projection

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// defaultNameOverrides maps roster spellings to the full name the stats
// table uses. The stats source and ESPN occasionally disagree on a player's
// registered name.
var defaultNameOverrides = map[string]string{
	"Alex Sarr":   "Alexandre Sarr",
	"Nic Claxton": "Nicolas Claxton",
}

// Resolver normalizes display names into the canonical key used to join
// roster entries against the stats table. Resolution is total: a key that
// matches nothing downstream simply yields no stats.
type Resolver struct {
	overrides map[string]string
}

func NewResolver(overrides map[string]string) *Resolver {
	if overrides == nil {
		overrides = defaultNameOverrides
	}
	return &Resolver{overrides: overrides}
}

func (r *Resolver) Resolve(raw string) string {
	name := strings.TrimSpace(raw)
	if mapped, ok := r.overrides[name]; ok {
		name = mapped
	}
	return strings.TrimSpace(strings.ToLower(ASCIIFold(name)))
}

// ASCIIFold transliterates accented characters to their plain ASCII
// equivalents, leaving everything else alone.
func ASCIIFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

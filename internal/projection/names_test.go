package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNormalizes(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases and trims", "  LeBron James ", "lebron james"},
		{"strips diacritics", "Nikola Jokić", "nikola jokic"},
		{"strips diacritics mid-word", "Luka Dončić", "luka doncic"},
		{"already canonical", "stephen curry", "stephen curry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.raw))
		})
	}
}

func TestResolveAppliesOverrides(t *testing.T) {
	r := NewResolver(nil)

	// The roster spelling and the stats-table spelling must land on the
	// same key.
	assert.Equal(t, r.Resolve("Nicolas Claxton"), r.Resolve("Nic Claxton"))
	assert.Equal(t, "alexandre sarr", r.Resolve("Alex Sarr"))
}

func TestResolveCustomOverrides(t *testing.T) {
	r := NewResolver(map[string]string{"CJ McCollum": "C.J. McCollum"})

	assert.Equal(t, "c.j. mccollum", r.Resolve("CJ McCollum"))
	// Defaults are replaced, not merged.
	assert.Equal(t, "nic claxton", r.Resolve("Nic Claxton"))
}

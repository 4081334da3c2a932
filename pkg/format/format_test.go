package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thirteen digits", "1234567891234", "1234 5678 9123 4"},
		{"exact multiple of four", "12345678", "1234 5678"},
		{"shorter than a group", "123", "123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueID(tt.in))
		})
	}
}

func TestUniqueIDRoundTrip(t *testing.T) {
	ids := []string{
		"1234567891234",
		"0000000000000",
		"9",
		"1234",
		"99999999",
	}
	for _, id := range ids {
		assert.Equal(t, id, StripUniqueID(UniqueID(id)), "round trip for %q", id)
	}
}

package proposal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceRange(t *testing.T) {
	small := "Starting from $15,000–$35,000"
	medium := "Typical range: $35,000–$100,000 depending on scope"
	large := "Starting from $100,000+ depending on requirements"

	tests := []struct {
		scope string
		want  string
	}{
		{"small", small},
		{"SMALL", small},
		{"Small", small},
		{" small ", small},
		{"medium", medium},
		{"Large", large},
		{"enterprise", medium},
		{"", medium},
		{"tiny", medium},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceRange(tt.scope))
		})
	}
}

func TestParseScope(t *testing.T) {
	assert.Equal(t, ScopeLarge, ParseScope("LARGE"))
	assert.Equal(t, ScopeMedium, ParseScope("huge"))
}

package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatARS(t *testing.T) {
	tests := []struct {
		value float64
		lang  string
		want  string
	}{
		{12500, "es", "$ 12.500"},
		{12500, "en", "ARS 12,500"},
		{1500, "es", "$ 1.500"},
		{0, "es", "$ 0"},
		{999, "en", "ARS 999"},
		{12500, "de", "$ 12.500"}, // unknown language falls back to Spanish
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatARS(tt.value, tt.lang), "FormatARS(%v, %q)", tt.value, tt.lang)
	}
}

func TestFormatARSRounds(t *testing.T) {
	assert.Equal(t, "$ 1.500", FormatARS(1499.6, "es"))
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Sample", "sample"},
		{"sample_type", "sampletype"},
		{"Sample Type", "sampletype"},
		{"sample-type", "sampletype"},
		{"SAMPLE.TYPE", "sampletype"},
		{"", ""},
		{"Größe", "größe"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

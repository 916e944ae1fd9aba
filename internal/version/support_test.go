package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"2.11.0", true},
		{"2.11", true},
		{"2.12.5", true},
		{"3.0", true},
		{"3", true},
		{"10.0.0", true},
		{"2.11.0.4", true},
		{"3.0.0.1", true},
		{"2.10.9", false},
		{"2.10.9.9", false},
		{"2", false},
		{"2.9", false},
		{"1.99.99", false},
		{"", false},
		{"banana", false},
		{"2.x", false},
		{" 2.11.0 ", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.version))
		})
	}
}

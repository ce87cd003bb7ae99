package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		target string
		valid  bool
	}{
		{"latest", true},
		{"stable", true},
		{"1.2.3", true},
		{"2.0.1", true},
		{"1.2.3-beta.1", true},
		{"v1.2.3", true},
		{"", false},
		{"newest", false},
		{"1.2", false},
		{"1.2.3.4", false},
		{"one.two.three", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsConcrete(t *testing.T) {
	assert.True(t, IsConcrete("2.0.1"))
	assert.True(t, IsConcrete("1.0.0-rc.2"))
	assert.False(t, IsConcrete("latest"))
	assert.False(t, IsConcrete("stable"))
}

func TestIsChannel(t *testing.T) {
	assert.True(t, IsChannel("latest"))
	assert.True(t, IsChannel("stable"))
	assert.False(t, IsChannel("1.2.3"))
}

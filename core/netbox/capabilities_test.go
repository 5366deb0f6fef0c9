package netbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilities(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		wantModules bool
		wantErr     bool
	}{
		{"3.1 has no modules", "3.1", false, false},
		{"3.2 has modules", "3.2", true, false},
		{"3.7 has modules", "3.7", true, false},
		{"4.0 has modules", "4.0", true, false},
		{"Patch version", "4.1.3", true, false},
		{"Leading v", "v3.2", true, false},
		{"Major only", "4", true, false},
		{"Old major", "2.11", false, false},
		{"Pre-release minor", "3.2-beta1", true, false},
		{"Empty", "", false, true},
		{"Garbage", "latest", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, err := ParseCapabilities(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModules, caps.Modules)
			assert.Equal(t, tt.version, caps.Version)
		})
	}
}

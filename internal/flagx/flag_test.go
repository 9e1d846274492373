package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://api"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", "http://api"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "order preserved",
			args:         []string{"-p", "a.db", "-x", "1", "-s=redis"},
			allowedFlags: []string{"-s", "-p"},
			want:         []string{"-p", "a.db", "-s=redis"},
		},
		{
			name:         "value that looks like a flag is not consumed",
			args:         []string{"-c", "-a", "http://api"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "nothing allowed matches",
			args:         []string{"-x", "1", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "conf.json", ConfigPath([]string{"-a", "x", "-c", "conf.json"}))
	assert.Equal(t, "other.json", ConfigPath([]string{"-config=other.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", "x"}))
	assert.Equal(t, "", ConfigPath(nil))
}

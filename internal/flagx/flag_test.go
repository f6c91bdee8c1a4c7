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
			args:         []string{"-c", "conf.json", "-d", "store.db"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-q=1024", "-d", "store.db"},
			allowedFlags: []string{"-q"},
			want:         []string{"-q=1024"},
		},
		{
			name:         "order preserved",
			args:         []string{"-d", "a.db", "-x", "1", "-q", "10"},
			allowedFlags: []string{"-q", "-d"},
			want:         []string{"-d", "a.db", "-q", "10"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag at end without value",
			args:         []string{"-s"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s"},
		},
		{
			name:         "flag followed by another flag takes no value",
			args:         []string{"-s", "-d", "x.db"},
			allowedFlags: []string{"-s", "-d"},
			want:         []string{"-s", "-d", "x.db"},
		},
		{
			name:         "empty input",
			args:         nil,
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

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "app.jsonc"}, "app.jsonc"},
		{"long", []string{"-config", "app.json"}, "app.json"},
		{"equals", []string{"-config=eq.json", "-d", "x.db"}, "eq.json"},
		{"double dash", []string{"--config", "dd.json"}, "dd.json"},
		{"absent", []string{"-d", "x.db"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}

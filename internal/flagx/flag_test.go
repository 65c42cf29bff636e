package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", ":3000"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", ":3000"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-s"},
			allowed: []string{"-s"},
			want:    []string{"-s"},
		},
		{
			name:    "next flag is not consumed as value",
			args:    []string{"-d", "-s", "secret"},
			allowed: []string{"-d", "-s"},
			want:    []string{"-d", "-s", "secret"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-a", ":8080", "-l", "debug", "-d", "postgres://x"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", ":8080", "-d", "postgres://x"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/tasklist.json", ConfigFile([]string{"-c", "/etc/tasklist.json"}))
	assert.Equal(t, "/srv/conf.json", ConfigFile([]string{"-a", ":3000", "-config", "/srv/conf.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-c", "a.json", "-config=b.json"}))
	assert.Empty(t, ConfigFile([]string{"-a", ":3000", "-s", "k"}))
}

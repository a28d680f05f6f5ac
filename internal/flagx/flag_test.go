package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func swapArgs(args []string) (restore func()) {
	prev := os.Args
	os.Args = args
	return func() { os.Args = prev }
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps flag value pairs",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: []string{"-a"},
			want:    []string{"-a", "1"},
		},
		{
			name:    "keeps equals form",
			args:    []string{"-a=1", "-b=2"},
			allowed: []string{"-b"},
			want:    []string{"-b=2"},
		},
		{
			name:    "drops unknown flags entirely",
			args:    []string{"-x", "5"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "boolean flag followed by another flag",
			args:    []string{"-v", "-a", "1"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", "1"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-a"},
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"long form", []string{"cli", "-config", "cfg.json"}, "cfg.json"},
		{"short form", []string{"cli", "-c", "cfg.json"}, "cfg.json"},
		{"equals form", []string{"cli", "-config=cfg.json"}, "cfg.json"},
		{"absent", []string{"cli", "-other", "1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osArgs := make([]string, len(tt.args))
			copy(osArgs, tt.args)
			restore := swapArgs(osArgs)
			defer restore()

			assert.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}

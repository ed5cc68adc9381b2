package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Paths:        []string{"exports"},
			OutputFormat: "table",
			Timezone:     "Local",
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "named timezone", modify: func(c *Config) { c.Timezone = "Europe/Berlin" }},
		{name: "xlsx with file", modify: func(c *Config) { c.OutputFormat = "xlsx"; c.OutputFile = "out.xlsx" }},
		{name: "no paths", modify: func(c *Config) { c.Paths = nil }, wantErr: "--paths"},
		{name: "empty path", modify: func(c *Config) { c.Paths = []string{""} }, wantErr: "--paths"},
		{name: "bad format", modify: func(c *Config) { c.OutputFormat = "pdf" }, wantErr: `"pdf" is not one of`},
		{name: "bad timezone", modify: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "unknown timezone"},
		{name: "xlsx without file", modify: func(c *Config) { c.OutputFormat = "xlsx" }, wantErr: "--out"},
		{name: "negative limit", modify: func(c *Config) { c.Limit = -1 }, wantErr: "--limit: must not be negative"},
		{name: "negative concurrency", modify: func(c *Config) { c.Concurrency = -2 }, wantErr: "--concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigValidateReportsAllErrors(t *testing.T) {
	cfg := Config{OutputFormat: "pdf", Timezone: "UTC", Limit: -1}

	err := cfg.Validate()

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "--paths")
		assert.Contains(t, err.Error(), "--output")
		assert.Contains(t, err.Error(), "--limit")
	}
}

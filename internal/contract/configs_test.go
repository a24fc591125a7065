package contract

import (
	"strings"
	"testing"

	"github.com/huangsam/streetrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ModelVersion: DefaultModelVersion,
		LookbackDays: DefaultLookbackDays,
		RecentDays:   DefaultRecentDays,
		Clusters:     DefaultClusters,
		Restarts:     DefaultRestarts,
		Seed:         DefaultSeed,
		Backend:      string(schema.SQLiteBackend),
		DBConnect:    "",
		ResultLimit:  DefaultResultLimit,
		Output:       "",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{
			name:   "valid minimal config",
			mutate: func(_ *ConfigRawInput) {},
		},
		{
			name:        "empty model version",
			mutate:      func(in *ConfigRawInput) { in.ModelVersion = "" },
			expectError: "model version",
		},
		{
			name:        "zero lookback",
			mutate:      func(in *ConfigRawInput) { in.LookbackDays = 0 },
			expectError: "lookback-days",
		},
		{
			name:        "recent window exceeds lookback",
			mutate:      func(in *ConfigRawInput) { in.RecentDays = in.LookbackDays + 1 },
			expectError: "recent-days",
		},
		{
			name:        "zero clusters",
			mutate:      func(in *ConfigRawInput) { in.Clusters = 0 },
			expectError: "clusters",
		},
		{
			name:        "zero restarts",
			mutate:      func(in *ConfigRawInput) { in.Restarts = 0 },
			expectError: "restarts",
		},
		{
			name:        "unknown backend",
			mutate:      func(in *ConfigRawInput) { in.Backend = "oracle" },
			expectError: "unsupported backend",
		},
		{
			name: "mysql requires connection string",
			mutate: func(in *ConfigRawInput) {
				in.Backend = string(schema.MySQLBackend)
				in.DBConnect = ""
			},
			expectError: "mysql backend requires",
		},
		{
			name: "postgresql requires connection string",
			mutate: func(in *ConfigRawInput) {
				in.Backend = string(schema.PostgreSQLBackend)
				in.DBConnect = ""
			},
			expectError: "postgresql backend requires",
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.ResultLimit = MaxResultLimit + 1 },
			expectError: "limit",
		},
		{
			name:        "unknown output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "output mode",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tc.expectError != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tc.expectError),
					"error %q should mention %q", err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, schema.SQLiteBackend, cfg.Backend)
			assert.Equal(t, schema.TextOut, cfg.Output)
			assert.True(t, cfg.UseColors)
		})
	}
}

func TestProcessAndValidateOutputModes(t *testing.T) {
	for _, mode := range []string{"", "text", "csv", "json"} {
		input := validInput()
		input.Output = mode

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		if mode == "" {
			assert.Equal(t, schema.TextOut, cfg.Output)
		} else {
			assert.Equal(t, schema.OutputMode(mode), cfg.Output)
		}
	}
}

func TestParseBoolFlag(t *testing.T) {
	assert.True(t, ParseBoolFlag("yes", false))
	assert.True(t, ParseBoolFlag("1", false))
	assert.False(t, ParseBoolFlag("no", true))
	assert.False(t, ParseBoolFlag("off", true))
	assert.True(t, ParseBoolFlag("", true))
	assert.False(t, ParseBoolFlag("garbage", false))
}

func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".streetrisk.db"))
}

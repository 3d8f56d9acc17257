package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		settings  map[string]any
		expectErr bool
		expected  Config
	}{
		{
			name: "defaults only",
			expected: Config{
				Editor:         defaultEditor,
				TimeFormat:     "Jan 2, 2006 3:04:05 PM",
				SeverityFilter: "All",
				SortOrder:      "Newest",
			},
		},
		{
			name: "overrides",
			settings: map[string]any{
				"editor":          "nano",
				"severity_filter": "High",
				"sort_order":      "Oldest",
				"metrics_address": "localhost:9090",
			},
			expected: Config{
				Editor:         "nano",
				TimeFormat:     "Jan 2, 2006 3:04:05 PM",
				SeverityFilter: "High",
				SortOrder:      "Oldest",
				MetricsAddress: "localhost:9090",
			},
		},
		{
			name:      "unknown severity",
			settings:  map[string]any{"severity_filter": "Critical"},
			expectErr: true,
		},
		{
			name:      "unknown sort order",
			settings:  map[string]any{"sort_order": "Sideways"},
			expectErr: true,
		},
		{
			name:      "empty time format",
			settings:  map[string]any{"time_format": ""},
			expectErr: true,
		},
		{
			name:      "bad metrics address",
			settings:  map[string]any{"metrics_address": "not an address"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			for k, v := range tt.settings {
				viper.Set(k, v)
			}

			c, err := loadConfig()
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid with deprecated keys", func(t *testing.T) {
		resetViper(t)
		viper.Set("filter", "High")
		viper.Set("sort", "Oldest")
		assert.NoError(t, validateConfig())
	})

	t.Run("invalid values are reported", func(t *testing.T) {
		resetViper(t)
		viper.Set("sort_order", "Sideways")
		assert.Error(t, validateConfig())
	})
}

func TestConfigCmdCreate(t *testing.T) {
	var out bytes.Buffer
	configCmd.SetOut(&out)
	t.Cleanup(func() {
		configCmd.SetOut(nil)
		_ = configCmd.Flags().Set("create", "false")
	})

	assert.NoError(t, configCmd.Flags().Set("create", "true"))
	assert.NoError(t, configCmd.RunE(configCmd, nil))
	assert.Contains(t, out.String(), "severity_filter: All")
	assert.Contains(t, out.String(), "sort_order: Newest")
}

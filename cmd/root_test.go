package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/clcollins/aidash/pkg/incident"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDetermineLogDestination(t *testing.T) {
	tests := []struct {
		name         string
		goos         string
		expectedDest LogDestination
		expectedPath string
	}{
		{
			name:         "Linux logs to the config directory",
			goos:         "linux",
			expectedDest: LogToFile,
			expectedPath: "~/.config/aidash/debug.log",
		},
		{
			name:         "macOS logs to the user's Library",
			goos:         "darwin",
			expectedDest: LogToFile,
			expectedPath: "~/Library/Logs/aidash.log",
		},
		{
			name:         "Unsupported OS logs to stderr",
			goos:         "windows",
			expectedDest: LogToStderr,
			expectedPath: "",
		},
		{
			name:         "Unknown OS logs to stderr",
			goos:         "freebsd",
			expectedDest: LogToStderr,
			expectedPath: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, path := determineLogDestination(tt.goos)
			assert.Equal(t, tt.expectedDest, dest, "Log destination mismatch")
			assert.Equal(t, tt.expectedPath, path, "Log path mismatch")
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/me", ".config/aidash/debug.log"), expandHome("~/.config/aidash/debug.log", "/home/me"))
	assert.Equal(t, "/var/log/aidash.log", expandHome("/var/log/aidash.log", "/home/me"))
}

func TestSetupLogging(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	closeLog, err := setupLogging("linux", false)
	assert.NoError(t, err)
	assert.NoError(t, closeLog())

	_, err = os.Stat(filepath.Join(home, ".config/aidash/debug.log"))
	assert.NoError(t, err)

	closeLog, err = setupLogging("windows", false)
	assert.NoError(t, err)
	assert.NoError(t, closeLog())
}

func TestAsyncWriter(t *testing.T) {
	var buf bytes.Buffer
	w := newAsyncWriter(&buf, 10)

	n, err := w.Write([]byte("hello "))
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = w.Write([]byte("world"))

	assert.NoError(t, w.Close())
	assert.Equal(t, "hello world", buf.String())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestNewDashboard(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		expectErr bool
		filter    incident.SeverityFilter
		order     incident.SortOrder
	}{
		{
			name:   "defaults",
			config: Config{SeverityFilter: "All", SortOrder: "Newest"},
			filter: incident.All,
			order:  incident.Newest,
		},
		{
			name:   "case insensitive values",
			config: Config{SeverityFilter: "high", SortOrder: "oldest"},
			filter: incident.SeverityFilter(incident.High),
			order:  incident.Oldest,
		},
		{
			name:      "invalid severity",
			config:    Config{SeverityFilter: "Critical", SortOrder: "Newest"},
			expectErr: true,
		},
		{
			name:      "invalid sort order",
			config:    Config{SeverityFilter: "All", SortOrder: "Random"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newDashboard(tt.config)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.filter, d.SeverityFilter())
			assert.Equal(t, tt.order, d.SortOrder())
			assert.Equal(t, 3, d.Len())
		})
	}
}

// resetViper clears viper's global state and restores the defaults
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	setConfigDefaults()
	t.Cleanup(viper.Reset)
}

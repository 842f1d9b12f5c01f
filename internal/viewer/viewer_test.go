// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records launches and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	startErr      error

	started []string
	args    [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Start(name string, args ...string) error {
	m.started = append(m.started, name)
	m.args = append(m.args, args)
	return m.startErr
}

func TestLauncherPerPlatform(t *testing.T) {
	tests := []struct {
		goos     string
		wantBin  string
		wantArgs []string
	}{
		{"linux", "xdg-open", []string{"/tmp/deck.pptx"}},
		{"freebsd", "xdg-open", []string{"/tmp/deck.pptx"}},
		{"darwin", "open", []string{"/tmp/deck.pptx"}},
		{"windows", "cmd", []string{"/c", "start", "", "/tmp/deck.pptx"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			m := &mockExecutor{availableBins: map[string]bool{tt.wantBin: true}}
			l := newLauncher(tt.goos, m)
			assert.Equal(t, tt.wantBin, l.Name())

			require.NoError(t, l.Open("/tmp/deck.pptx"))
			require.Len(t, m.started, 1)
			assert.Equal(t, tt.wantBin, m.started[0])
			assert.Equal(t, tt.wantArgs, m.args[0])
		})
	}
}

func TestOpenMissingBinary(t *testing.T) {
	m := &mockExecutor{availableBins: map[string]bool{}}
	err := newLauncher("linux", m).Open("deck.pptx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
	assert.Empty(t, m.started)
}

func TestOpenStartFails(t *testing.T) {
	m := &mockExecutor{
		availableBins: map[string]bool{"open": true},
		startErr:      errors.New("exec format error"),
	}
	err := newLauncher("darwin", m).Open("deck.pptx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec format error")
}

func TestDefault(t *testing.T) {
	assert.NotEmpty(t, Default().Name())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viewer opens a finished deck in the desktop's default application.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches a viewer for a file.
type Opener interface {
	// Name returns the launcher binary.
	Name() string

	// Open starts the viewer for path without waiting for it to exit.
	Open(path string) error
}

// executor abstracts process launching for testing.
type executor interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// The viewer outlives us; reap it in the background.
	go cmd.Wait() //nolint:errcheck
	return nil
}

// launcher implements Opener for one platform command. The platforms differ
// only in the binary and the arguments placed before the path.
type launcher struct {
	bin  string
	args []string
	exec executor
}

func (l *launcher) Name() string { return l.bin }

func (l *launcher) Open(path string) error {
	if _, err := l.exec.LookPath(l.bin); err != nil {
		return fmt.Errorf("viewer %s not available: %w", l.bin, err)
	}
	args := make([]string, 0, len(l.args)+1)
	args = append(args, l.args...)
	args = append(args, path)
	if err := l.exec.Start(l.bin, args...); err != nil {
		return fmt.Errorf("starting %s for %s: %w", l.bin, path, err)
	}
	return nil
}

func newLauncher(goos string, exec executor) *launcher {
	switch goos {
	case "windows":
		// start treats its first quoted argument as the window title.
		return &launcher{bin: "cmd", args: []string{"/c", "start", ""}, exec: exec}
	case "darwin":
		return &launcher{bin: "open", exec: exec}
	default:
		return &launcher{bin: "xdg-open", exec: exec}
	}
}

var defaultExec = &osExecutor{}

// Default returns the Opener for the running platform.
func Default() Opener {
	return newLauncher(runtime.GOOS, defaultExec)
}

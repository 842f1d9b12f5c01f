//go:build mage

// Package main contains Mage build targets for versedeck developer tooling.
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

const (
	binDir    = "bin"
	binName   = "versedeck"
	cmdPkg    = "./cmd/versedeck"
	sampleDir = "samples"
)

// Init creates the samples directory used by the Sample and Songbook targets.
func Init() error {
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}
	fmt.Println("  ", sampleDir)
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs every package's tests.
func Test() error {
	if err := sh.RunV("go", "test", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Stats prints project metrics: packages, Go files and test functions.
func Stats() error {
	var s stats
	packages := make(map[string]bool)
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		packages[filepath.Dir(path)] = true
		if !strings.HasSuffix(path, "_test.go") {
			s.files++
			return nil
		}
		s.testFiles++
		n, err := countTests(path)
		if err != nil {
			return err
		}
		s.tests += n
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Packages:       %d\n", len(packages))
	fmt.Printf("Go files:       %d\n", s.files)
	fmt.Printf("Test files:     %d\n", s.testFiles)
	fmt.Printf("Test functions: %d\n", s.tests)
	return nil
}

type stats struct {
	files     int
	testFiles int
	tests     int
}

// countTests counts top-level TestXxx functions in a test file.
func countTests(path string) (int, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.SkipObjectResolution)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	n := 0
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil && strings.HasPrefix(fn.Name.Name, "Test") {
			n++
		}
	}
	return n, nil
}

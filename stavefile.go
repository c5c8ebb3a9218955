//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

var Aliases = map[string]any{
	"b": Build,
	"t": Test,
	"l": Lint,
	"g": Golden,
	"s": Smoke,
}

// Build compiles bin/cssfmt when its sources changed.
func Build() error {
	rebuild, err := target.Dir("bin/cssfmt", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/cssfmt is up to date")
		return nil
	}
	ldflags := fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/cssfmt", "./cmd/cssfmt")
}

// Test runs the test suite under gotestsum with the race detector.
func Test() error {
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Golden rewrites the formatter golden files from the current output.
func Golden() error {
	return sh.RunV("go", "test", "./pkg/format/", "-run", "TestFormat(Options)?Golden", "-update")
}

// Smoke checks that the built binary finds nothing to change in the golden
// outputs.
func Smoke() error {
	st.Deps(Build)

	goldens, err := filepath.Glob("pkg/format/testdata/*.golden")
	if err != nil {
		return fmt.Errorf("glob golden files: %w", err)
	}
	dir, err := os.MkdirTemp("", "cssfmt-smoke-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for _, golden := range goldens {
		content, err := os.ReadFile(golden)
		if err != nil {
			return fmt.Errorf("read %s: %w", golden, err)
		}
		name := strings.TrimSuffix(filepath.Base(golden), ".golden")
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o600); err != nil {
			return fmt.Errorf("copy %s: %w", golden, err)
		}
	}
	return sh.RunV("bin/cssfmt", "--check", "--color", "never", dir)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

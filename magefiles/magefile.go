//go:build mage

// Package main contains Mage build targets for credence.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "credence"
	cmdPkg     = "./cmd/credence"
	versionVar = "github.com/ppiankov/credence/internal/cli.Version"
)

// Default target when mage is run without arguments
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := gitVersion()
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X "+versionVar+"="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install installs the binary into GOBIN.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", "-X "+versionVar+"="+gitVersion(), cmdPkg)
}

func gitVersion() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		return "dev"
	}
	return version
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}

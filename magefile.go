//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the statbar binary
func Build() error {
	return sh.Run("go", "build", "-o", "bin/statbar", "./cmd/statbar")
}

// Test runs the full test suite with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet across the module
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs vet and the test suite
func QA() error {
	mg.Deps(Vet)
	return Test()
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

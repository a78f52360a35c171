//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Search builds the binary and runs a search for the given query.
func Search(query string) error {
	mg.Deps(Build)
	return runBinary("search", query)
}

// Serve builds the binary and starts the MCP server over stdio.
func Serve() error {
	mg.Deps(Build)
	return runBinary("serve")
}

func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

package main

import (
	"fmt"
	"os"

	"github.com/pkgwalk/pkgwalk"
	"github.com/pkgwalk/pkgwalk/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd(pkgwalk.Version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

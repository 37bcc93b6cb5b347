package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/ezconfig/cmd/ezconfig"
	"github.com/arthur-debert/ezconfig/internal/version"
)

func main() {
	rootCmd := ezconfig.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "EZCONFIG",
		Section: "1",
		Source:  "ezconfig " + version.Version,
		Manual:  "ezconfig manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

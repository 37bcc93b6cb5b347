package main

import (
	"os"

	"github.com/arthur-debert/ezconfig/cmd/ezconfig"
)

func main() {
	rootCmd := ezconfig.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ezconfig.HandleError(os.Stderr, err))
	}
}

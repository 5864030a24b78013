package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fnr/cmd/fnr"
	"github.com/arthur-debert/fnr/pkg/ui/styles"
)

func main() {
	rootCmd := fnr.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

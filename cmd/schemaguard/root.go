package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemaguard",
	Short: "schemaguard validates JSON documents against schema files",
	Long: `Schemaguard compiles a schema document (YAML or JSON) into a validator
and checks JSON documents against it, printing one path-qualified message
per violation.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/idle-snake/internal/config"
)

var flagConfigSchema bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order, the schema check and
the engine profile have been applied. The output is valid input for --config.

Examples:
  idlesnake config > ~/.idlesnake/configs/idlesnake.yaml
  idlesnake config --profile cautious
  idlesnake config --schema`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigSchema, "schema", false, "Print the JSON schema instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigSchema {
		os.Stdout.Write(config.SchemaJSON())
		return
	}

	data, err := config.Marshal(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

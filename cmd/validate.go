package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/rules"
)

var validateCmd = &cobra.Command{
	Use:   "validate [data_dir]",
	Short: "Check tables, chain manifest, and engine wiring",
	Long: `Loads the reference tables (optionally with a data directory override),
builds every rule chain, and runs the engine self-check.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var dataDirs []string
		if len(args) == 1 {
			dataDirs = []string{args[0]}
		}

		tables, err := data.NewLoader(dataDirs).Load()
		if err != nil {
			fmt.Printf("Table load failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Tables: %d classes, %d races\n", len(tables.Classes), len(tables.Races))

		manifestPath, _ := cmd.Flags().GetString("chains")
		manifest, err := rules.LoadChainManifest(manifestPath)
		if err != nil {
			fmt.Printf("Chain manifest failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Manifest: %d chains\n", len(manifest.Chains))

		eng, err := rules.BuildEngine(tables, dice.NewRoller(), manifest)
		if err != nil {
			fmt.Printf("Engine build failed: %v\n", err)
			os.Exit(1)
		}

		report := eng.Validate()
		if !report.Valid {
			for _, msg := range report.Errors {
				fmt.Printf("Invalid: %s\n", msg)
			}
			os.Exit(1)
		}
		fmt.Println("Engine wiring OK")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("chains", "", "Path to a chain manifest override")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/graydelve/graydelve/internal/data"
)

var seedCmd = &cobra.Command{
	Use:   "seed <directory>",
	Short: "Write the embedded reference tables into a data directory",
	Long: `Copies the shipped class, race, and spell tables into a directory so
they can be edited and used as campaign overrides.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		dataDir := args[0]

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			fmt.Printf("Error creating %s: %v\n", dataDir, err)
			os.Exit(1)
		}

		files, err := data.EmbeddedTableFiles()
		if err != nil {
			fmt.Printf("Error reading embedded tables: %v\n", err)
			os.Exit(1)
		}

		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)

		bar := progressbar.Default(int64(len(names)), "Seeding tables")
		for _, name := range names {
			path := filepath.Join(dataDir, name)
			if _, err := os.Stat(path); err == nil && !force {
				bar.Add(1)
				continue
			}
			if err := os.WriteFile(path, files[name], 0644); err != nil {
				fmt.Printf("\nFailed to write %s: %v\n", name, err)
			}
			bar.Add(1)
		}

		fmt.Printf("\nSeeded %d table files into %s\n", len(names), dataDir)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("force", false, "Overwrite existing table files")
}

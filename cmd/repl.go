/*
Copyright © 2026 Graydelve Authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/graydelve/graydelve/internal/session"
)

var replCmd = &cobra.Command{
	Use:   "repl <world_name> <campaign_name>",
	Short: "Start the interactive table shell",
	Long: `Starts the read-eval-print loop for a campaign. Commands:

	> create "Brom Ironhand" human fighter
	> xp brom-ironhand 100 treasure
	> save brom-ironhand death +2
	> roll 2d6+1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		create, _ := cmd.Flags().GetBool("create")

		app, err := session.Open(viper.GetString("worlds_dir"), args[0], args[1], create)
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		if err := RunTUI(app, args[0], args[1]); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("create", false, "Create the campaign if it does not exist")
}

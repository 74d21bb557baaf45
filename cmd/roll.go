package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graydelve/graydelve/internal/dice"
)

var rollCmd = &cobra.Command{
	Use:   "roll <notation>",
	Short: "Roll dice without opening a campaign",
	Long:  `Rolls classic notation like 3d6, 1d100, or 2d6+1 and prints the dice.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := dice.NewRoller().Roll(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %v", res.Notation, res.Rolls)
		if res.Modifier != 0 {
			fmt.Printf(" %+d", res.Modifier)
		}
		fmt.Printf(" = %d\n", res.Total)
	},
}

func init() {
	rootCmd.AddCommand(rollCmd)
}

/*
Copyright © 2026 Graydelve Authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/graydelve/graydelve/internal/persistence"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage campaign folders and their journals",
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create <world_name> <campaign_name>",
	Short: "Create a new campaign under a world",
	Long: `Bootstraps a fresh campaign directory: an append-only journal.jsonl,
a characters/ directory for sheets, and a data/ directory whose tables
shadow the embedded defaults.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		manager := persistence.NewCampaignManager(viper.GetString("worlds_dir"))
		journal, err := manager.Create(args[0], args[1])
		if err != nil {
			fmt.Printf("Error creating campaign: %v\n", err)
			os.Exit(1)
		}
		defer journal.Close()

		fmt.Printf("Successfully created campaign!\n")
		fmt.Printf("Journal stored at: %s/journal.jsonl\n", manager.CampaignPath(args[0], args[1]))
	},
}

var campaignLogCmd = &cobra.Command{
	Use:   "log <world_name> <campaign_name>",
	Short: "Print the campaign's command journal",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		manager := persistence.NewCampaignManager(viper.GetString("worlds_dir"))
		journal, err := manager.Load(args[0], args[1])
		if err != nil {
			fmt.Printf("Error loading campaign: %v\n", err)
			os.Exit(1)
		}
		defer journal.Close()

		records, err := journal.Load()
		if err != nil {
			fmt.Printf("Error reading journal: %v\n", err)
			os.Exit(1)
		}
		for _, rec := range records {
			status := "ok"
			if !rec.Result.Success {
				status = "failed"
				if rec.Result.Code != "" {
					status = string(rec.Result.Code)
				}
			}
			fmt.Printf("%s  %-16s %-18s %s\n",
				rec.At.Format("2006-01-02 15:04:05"), rec.Command, status, rec.Result.Message)
		}
	},
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignCreateCmd)
	campaignCmd.AddCommand(campaignLogCmd)
}

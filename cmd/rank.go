package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchsim/pkg/export"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print the ranked asset table of each category",
	RunE:  rankPortfolio,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func rankPortfolio(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	ranks, err := svc.Rank()
	if err != nil {
		return err
	}
	for _, r := range ranks {
		if err := export.WriteRecordsCSV(cmd.OutOrStdout(), r.Category, r.Records); err != nil {
			return err
		}
	}
	return nil
}

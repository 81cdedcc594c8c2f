package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "optisale",
		Short: "OptiSale CRM dashboard backend",
		Long: `OptiSale serves a role-gated sales dashboard over Zoho CRM data
(deals, leads, tasks, notes) with an AI assistant for data questions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewExportNotesCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

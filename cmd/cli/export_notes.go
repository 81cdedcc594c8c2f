package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/optisale/optisale/internal/config"
	"github.com/optisale/optisale/pkg/zoho"
)

func NewExportNotesCommand() *cobra.Command {
	var (
		outPath string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "export-notes",
		Short: "Export all CRM notes, oldest first",
		Long: `Fetches every note from the CRM (following pagination, unlike the
dashboard which reads a single page) and writes the content and
creation date to an xlsx workbook or JSON on stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := zoho.NewClient(zoho.ClientConfig{
				Credentials: cfg.ZohoCredentials(),
				BaseURL:     cfg.ZohoAPIBaseURL,
				AccountsURL: cfg.ZohoAccountsURL,
			})

			exporter := zoho.NewExporter(client)
			notes, err := exporter.FetchAllNotes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to export notes: %w", err)
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(notes)
			}

			if err := zoho.WriteWorkbook(notes, outPath); err != nil {
				return err
			}

			log.Info().Str("path", outPath).Int("notes", len(notes)).Msg("Notes exported")
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "notes.xlsx", "Output workbook path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON to stdout instead of a workbook")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optisale/optisale/internal/config"
	"github.com/optisale/optisale/pkg/assistant"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Test CRM and assistant connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			crmService := newCRMService(cfg)
			crmOK, crmMessage := crmService.TestConnection(cmd.Context())
			printStatus("Zoho CRM", crmOK, crmMessage)

			ai := assistant.New(assistant.Dependencies{
				APIKey: cfg.GroqAPIKey,
				Model:  cfg.GroqModel,
			})
			aiOK, aiMessage := ai.TestConnection(cmd.Context())
			printStatus("Assistant", aiOK, aiMessage)

			return nil
		},
	}

	return cmd
}

func printStatus(name string, ok bool, message string) {
	state := "FAIL"
	if ok {
		state = "OK"
	}
	fmt.Printf("%-10s [%s] %s\n", name, state, message)
}

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/optisale/optisale/internal/config"
	"github.com/optisale/optisale/internal/controllers"
	"github.com/optisale/optisale/internal/server"
	"github.com/optisale/optisale/pkg/assistant"
	"github.com/optisale/optisale/pkg/zoho"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			crmService := newCRMService(cfg)
			ai := assistant.New(assistant.Dependencies{
				APIKey: cfg.GroqAPIKey,
				Model:  cfg.GroqModel,
			})

			controller := controllers.NewDashboardController(controllers.DashboardControllerDependencies{
				CRMService: crmService,
				Assistant:  ai,
			})

			app := server.NewHTTPServer(server.HTTPServerDependencies{
				DashboardController: controller,
			})

			log.Info().Str("address", cfg.HTTPAddress).Msg("Starting dashboard API server")
			return app.Listen(cfg.HTTPAddress)
		},
	}

	return cmd
}

func newCRMService(cfg *config.Config) *zoho.Service {
	client := zoho.NewClient(zoho.ClientConfig{
		Credentials: cfg.ZohoCredentials(),
		BaseURL:     cfg.ZohoAPIBaseURL,
		AccountsURL: cfg.ZohoAccountsURL,
	})

	return zoho.NewService(zoho.ServiceDependencies{Client: client})
}

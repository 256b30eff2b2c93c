package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/server"
)

const shutdownTimeout = 10 * time.Second

func addServeCommand(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newServeCmd(app))
}

func newServeCmd(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the kundli HTTP API",
		Long: `Serve the kundli HTTP API.

Endpoints:
  GET    /health
  POST   /api/kundli           generate and store a kundli
  GET    /api/kundli?limit=N   recent kundlis
  GET    /api/kundli/{id}      one kundli
  DELETE /api/kundli/{id}      delete a kundli
  POST   /api/charts/derive    Moon and Navamsa charts from a Lagna chart`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Service(true)
			if err != nil {
				return err
			}

			serverCfg := app.Config.Server
			if port > 0 {
				serverCfg.Port = port
			}

			srv := server.New(server.Config{
				Log:     app.Logger,
				Server:  serverCfg,
				Service: svc,
				Version: Version,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			app.Logger.Info().Msg("Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: server.port from config)")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/registry"
	"github.com/lawtext/gazette/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gazette read API server",
	Long: `Start the gazette HTTP server over the local act registry.

The server provides:
  - /health                        - Server health check
  - /issues                        - Processed issues
  - /issues/{year}/{number}/acts   - Acts parsed from one issue
  - /acts/{year}/{serial}          - One parsed act as JSON

Examples:
  gazette serve                    # Start on default port 8080
  gazette serve --port 3000        # Start on custom port
  gazette serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		h, err := openHome()
		if err != nil {
			return err
		}
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cm.WatchConfig()

		store, err := registry.NewStore(h.RegistryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		host, port := serveHost, servePort
		if !cmd.Flags().Changed("host") {
			host = cm.Get().Server.Host
		}
		if !cmd.Flags().Changed("port") {
			port = cm.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:   host,
			Port:   port,
			Store:  store,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

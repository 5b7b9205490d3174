package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgets/internal/config"
	"github.com/vango-dev/widgets/internal/dev"
	werrors "github.com/vango-dev/widgets/internal/errors"
)

func serveCmd() *cobra.Command {
	var (
		port     int
		host     string
		document string
		pageID   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Serve a document holding a frame and reload connected browsers when
the document, stylesheets or scripts change.

Settings come from widgets.json or widgets.yaml; flags override them.

Examples:
  widgets serve
  widgets serve --port=8080 --document=index.html --page=home`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				if !errors.Is(err, werrors.New("C002")) {
					return err
				}
				warn(cmd, "no project file, using defaults")
				cfg = config.New()
			}

			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if document != "" {
				cfg.Serve.Document = document
			}
			if pageID != "" {
				cfg.Serve.Page = pageID
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.Apply()

			srv, err := dev.NewServer(dev.ServerOptions{Config: cfg})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from project file)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from project file)")
	cmd.Flags().StringVarP(&document, "document", "d", "", "HTML document to mount the frame into")
	cmd.Flags().StringVar(&pageID, "page", "", "Page shown first")
	return cmd
}

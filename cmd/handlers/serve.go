package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mnafierce/agentwatch/internal/config"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/server"
)

// NewServeCmd creates the serve command for starting the dashboard server.
func NewServeCmd() *cobra.Command {
	var (
		port        int
		host        string
		templateDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Démarrer le tableau de bord web",
		Long: `Démarre le serveur web AgentWatch.

Le serveur fournit :
  • le tableau de bord avec filtres secteur/pays/entreprise
  • le panneau de tendances actualisé en arrière-plan
  • la génération de rapports et leurs exports PDF / Notion

Examples:
  # Démarrer sur le port par défaut (8080)
  agentwatch serve

  # Démarrer sur un port spécifique
  agentwatch serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, templateDir)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "Template directory (default from config)")

	return cmd
}

func runServe(ctx context.Context, port int, host, templateDir string) error {
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}
	if templateDir != "" {
		serverCfg.TemplateDir = templateDir
	}

	p := buildPipeline(cfg)

	// Background refresh runs for the lifetime of the server and stops with
	// it.
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	p.watcher.Start(refreshCtx)

	srv, err := server.New(serverCfg, p.assembler, p.watcher, p.pdf, p.notion)
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case sig := <-done:
		log.Info("Received shutdown signal", "signal", sig.String())
	}

	cancelRefresh()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

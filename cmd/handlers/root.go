// Package handlers defines the agentwatch CLI commands.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mnafierce/agentwatch/internal/config"
)

var cfgFile string

// NewRootCmd creates the agentwatch root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agentwatch",
		Short: "Veille stratégique sur les agents IA autonomes",
		Long: `AgentWatch – Veille Stratégique IA

Agrège les avancées en agents IA autonomes dans les secteurs stratégiques :
préprints arXiv, actualités Google News (SerpAPI), tendances par secteur,
rapports exportables en PDF ou vers un workspace Notion.

Examples:
  # Démarrer le tableau de bord web
  agentwatch serve

  # Générer un rapport en ligne de commande
  agentwatch report --sector Santé --company Pfizer

  # Actualiser les tendances une fois
  agentwatch refresh`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .agentwatch.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewReportCmd())
	rootCmd.AddCommand(NewRefreshCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

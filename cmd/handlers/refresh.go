package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mnafierce/agentwatch/internal/config"
	"github.com/Mnafierce/agentwatch/internal/render"
	"github.com/Mnafierce/agentwatch/internal/trendwatch"
)

// NewRefreshCmd creates the refresh command for a one-shot trends update.
func NewRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Actualiser les tendances une fois et afficher le résultat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd.Context())
		},
	}
	return cmd
}

func runRefresh(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p := buildPipeline(cfg)
	p.watcher.RefreshNow(ctx)

	snapshot := p.watcher.Snapshot()
	fmt.Printf("Tendances actualisées le %s\n", render.Timestamp(snapshot.LastUpdate))
	for _, sector := range trendwatch.TrackedSectors() {
		fmt.Printf("  %s : %d résultats\n", sector, len(snapshot.Sectors[sector]))
	}
	return nil
}

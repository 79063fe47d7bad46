package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mnafierce/agentwatch/internal/config"
	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/render"
)

const serverShutdownTimeout = 10 * time.Second

// NewReportCmd creates the report command for one-shot report generation.
func NewReportCmd() *cobra.Command {
	var (
		sector    string
		country   string
		company   string
		keyword   string
		toPDF     bool
		toNotion  bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Générer un rapport stratégique en ligne de commande",
		Long: `Assemble un rapport stratégique pour la sélection donnée et l'écrit en
markdown dans le répertoire de sortie. Les options --pdf et --notion
déclenchent en plus les exports correspondants.

Examples:
  agentwatch report --sector Santé --company Pfizer
  agentwatch report --sector Finance --pdf
  agentwatch report --company "JP Morgan" --notion`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := core.FilterSelection{Sector: sector, Country: country, Company: company, Keyword: keyword}
			return runReport(cmd.Context(), sel, toPDF, toNotion, outputDir)
		},
	}

	cmd.Flags().StringVar(&sector, "sector", core.AllSectors, "Secteur d'activité")
	cmd.Flags().StringVar(&country, "country", core.AllCountries, "Pays")
	cmd.Flags().StringVar(&company, "company", core.AllCompanies, "Entreprise")
	cmd.Flags().StringVar(&keyword, "keyword", core.DefaultKeyword, "Mot-clé de recherche libre")
	cmd.Flags().BoolVar(&toPDF, "pdf", false, "Exporter aussi le rapport en PDF")
	cmd.Flags().BoolVar(&toNotion, "notion", false, "Enregistrer aussi le rapport dans Notion")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Répertoire de sortie (default from config)")

	return cmd
}

func runReport(ctx context.Context, sel core.FilterSelection, toPDF, toNotion bool, outputDir string) error {
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	p := buildPipeline(cfg)
	rep := p.assembler.Assemble(ctx, sel)

	path, err := render.ReportMarkdown(rep, outputDir)
	if err != nil {
		return err
	}
	log.Info("Report written", "path", path, "report_id", rep.ID)
	fmt.Printf("Rapport généré : %s\n", path)

	if toPDF {
		htmlDoc, err := render.ReportHTML(rep)
		if err != nil {
			return err
		}
		pdf, err := p.pdf.Render(ctx, htmlDoc)
		if err != nil {
			return fmt.Errorf("export PDF impossible: %w", err)
		}
		pdfPath := path[:len(path)-len(".md")] + ".pdf"
		if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
			return fmt.Errorf("failed to write PDF to %s: %w", pdfPath, err)
		}
		fmt.Printf("PDF généré : %s\n", pdfPath)
	}

	if toNotion {
		if err := p.notion.SaveReport(ctx, rep); err != nil {
			return fmt.Errorf("export Notion impossible: %w", err)
		}
		fmt.Println("Rapport enregistré dans Notion.")
	}

	return nil
}

package handlers

import (
	"context"
	"time"

	"github.com/Mnafierce/agentwatch/internal/config"
	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/export"
	"github.com/Mnafierce/agentwatch/internal/report"
	"github.com/Mnafierce/agentwatch/internal/sources/arxiv"
	"github.com/Mnafierce/agentwatch/internal/sources/news"
	"github.com/Mnafierce/agentwatch/internal/trendwatch"
)

// pipeline bundles the wired aggregation components shared by the commands.
type pipeline struct {
	assembler *report.Assembler
	watcher   *trendwatch.Watcher
	pdf       *export.PDFRenderer
	notion    *export.NotionClient
}

// windowedPreprints binds the configured recency window to the preprint
// client so every consumer sees only recent entries.
type windowedPreprints struct {
	client     *arxiv.Client
	windowDays int
}

func (w windowedPreprints) Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error) {
	return w.client.SearchSince(ctx, query, maxResults, w.windowDays)
}

// buildPipeline wires adapters, assembler and watcher from the loaded
// configuration.
func buildPipeline(cfg *config.Config) *pipeline {
	arxivClient := arxiv.New(cfg.Arxiv.BaseURL, config.Duration(cfg.Arxiv.Timeout, 10*time.Second))
	newsClient := news.New(cfg.News.APIKey, cfg.News.BaseURL, config.Duration(cfg.News.Timeout, 10*time.Second))
	preprints := windowedPreprints{client: arxivClient, windowDays: cfg.Arxiv.WindowDays}

	assembler := report.NewAssembler(preprints, newsClient, cfg.Arxiv.MaxResults)
	watcher := trendwatch.New(preprints, newsClient,
		config.Duration(cfg.Refresh.Interval, trendwatch.DefaultInterval), cfg.News.MaxResults)

	return &pipeline{
		assembler: assembler,
		watcher:   watcher,
		pdf:       export.NewPDFRenderer(),
		notion:    export.NewNotionClient(cfg.Notion.Token, cfg.Notion.DatabaseID, config.Duration(cfg.Notion.Timeout, 15*time.Second)),
	}
}

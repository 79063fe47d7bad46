package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/render"
)

const (
	notionBaseURL    = "https://api.notion.com/v1"
	notionAPIVersion = "2022-06-28"
)

// ErrMissingCredentials signals that the workspace export is unconfigured
// (token or destination database absent). No network call is performed.
var ErrMissingCredentials = errors.New("export: Notion token or database ID is not configured")

// NotionClient saves condensed report snapshots as pages in a Notion
// database.
type NotionClient struct {
	token      string
	databaseID string
	baseURL    string
	http       *http.Client
}

// NewNotionClient creates a workspace client. Empty credentials are
// allowed; SaveReport then reports ErrMissingCredentials.
func NewNotionClient(token, databaseID string, timeout time.Duration) *NotionClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NotionClient{
		token:      token,
		databaseID: databaseID,
		baseURL:    notionBaseURL,
		http:       &http.Client{Timeout: timeout},
	}
}

// notionText is the {"text": {"content": ...}} leaf the API expects.
type notionText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func textValue(content string) []notionText {
	var t notionText
	t.Text.Content = content
	return []notionText{t}
}

// SaveReport creates one page for the report: title, sector, country and
// company properties plus a single paragraph block containing the condensed
// insight text.
func (c *NotionClient) SaveReport(ctx context.Context, rep core.AssembledReport) error {
	if strings.TrimSpace(c.token) == "" || strings.TrimSpace(c.databaseID) == "" {
		return ErrMissingCredentials
	}

	title := fmt.Sprintf("Veille IA – %s – %s", rep.Selection.Sector, rep.GeneratedAt.Format("2006-01-02"))

	payload := map[string]any{
		"parent": map[string]string{"database_id": c.databaseID},
		"properties": map[string]any{
			"Nom":        map[string]any{"title": textValue(title)},
			"Secteur":    map[string]any{"rich_text": textValue(rep.Selection.Sector)},
			"Pays":       map[string]any{"rich_text": textValue(rep.Selection.Country)},
			"Entreprise": map[string]any{"rich_text": textValue(rep.Selection.Company)},
			"Date":       map[string]any{"date": map[string]string{"start": rep.GeneratedAt.Format(time.RFC3339)}},
		},
		"children": []map[string]any{
			{
				"object": "block",
				"type":   "paragraph",
				"paragraph": map[string]any{
					"rich_text": textValue(render.ReportText(rep)),
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode Notion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Notion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("Notion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Notion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	logger.Info("report saved to workspace", "report_id", rep.ID, "sector", rep.Selection.Sector)
	return nil
}

// Package export hands assembled reports to external destinations: a
// headless-Chrome PDF converter and the Notion workspace API.
package export

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrConverterNotFound signals that no Chrome/Chromium binary is available
// on the host. It is a distinct, user-visible condition; the report itself
// stays viewable.
var ErrConverterNotFound = errors.New("export: no Chrome or Chromium binary found for PDF conversion")

// PDFRenderer converts an HTML document into a PDF using a headless
// Chromium instance.
type PDFRenderer struct {
	chromePath string
}

// NewPDFRenderer creates a renderer, locating the browser binary on the
// host. The returned renderer reports ErrConverterNotFound on Render when
// no binary was found.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{chromePath: detectChromePath()}
}

// Available reports whether a converter binary was located.
func (r *PDFRenderer) Available() bool {
	return r.chromePath != ""
}

// Render converts the HTML document to PDF bytes (A4 portrait).
func (r *PDFRenderer) Render(ctx context.Context, htmlDoc string) ([]byte, error) {
	if r.chromePath == "" {
		return nil, ErrConverterNotFound
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(r.chromePath),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func detectChromePath() string {
	if p := os.Getenv("AGENTWATCH_CHROME_PATH"); p != "" {
		return p
	}
	candidates := []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
	}
	for _, name := range candidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	for _, p := range []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

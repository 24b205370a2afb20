// Package snapshot captures screenshots of rendered portfolio pages in a headless browser.
package snapshot

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Defaults for Options
const (
	DefaultWidth   = 1280
	DefaultHeight  = 800
	DefaultTimeout = 30 * time.Second
)

// browserNames are the executables chromedp can drive, in lookup order
var browserNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// ErrNoBrowser is returned when no Chrome or Chromium executable is installed
var ErrNoBrowser = errors.New("no Chrome or Chromium executable found")

// Options controls the viewport and time limit of a capture
type Options struct {
	Width   int
	Height  int
	Timeout time.Duration
	Logger  *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// FindBrowser returns the path of the first installed browser executable
func FindBrowser() (string, error) {
	for _, name := range browserNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBrowser
}

// DataURL encodes a complete HTML document as a navigable data URL
func DataURL(html string) string {
	return "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

// Capture loads the HTML document in a headless browser and returns a full-page PNG.
// Requires Chrome/Chromium to be installed on the system.
func Capture(ctx context.Context, html string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	browser, err := FindBrowser()
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("starting headless browser",
		zap.String("browser", browser),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(browser),
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(opts.Width, opts.Height),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(DataURL(html)),
		chromedp.WaitReady("body"),
		// quality 100 produces PNG
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("browser capture failed: %w", err)
	}

	opts.Logger.Debug("captured snapshot", zap.Int("bytes", len(png)))
	return png, nil
}

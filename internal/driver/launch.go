package driver

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
	"github.com/themizzi/shopflow/internal/config"
)

// Browser owns the playwright process, the browser and its single context
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// Install downloads the Chromium build used by playwright-go
func Install() error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("failed to install playwright browsers: %w", err)
	}
	return nil
}

// Launch starts playwright and opens one browser context configured from cfg
func Launch(cfg *config.BrowserConfig) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     cfg.Args,
	}
	if cfg.Channel != "" {
		launchOptions.Channel = playwright.String(cfg.Channel)
	}
	if cfg.SlowMo > 0 {
		launchOptions.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}

	browser, err := pw.Chromium.Launch(launchOptions)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// No fixed viewport: the window is started maximized instead
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL:    playwright.String(cfg.BaseURL.String()),
		NoViewport: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	context.SetDefaultTimeout(float64(cfg.ActionTimeout.Milliseconds()))
	context.SetDefaultNavigationTimeout(float64(cfg.NavigationTimeout.Milliseconds()))

	return &Browser{
		pw:      pw,
		browser: browser,
		context: context,
	}, nil
}

// NewPage opens a tab in the shared context
func (b *Browser) NewPage() (Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return NewPage(page), nil
}

// Close tears down the context, the browser and the playwright driver
func (b *Browser) Close() error {
	if err := b.context.Close(); err != nil {
		log.Printf("Warning: failed to close browser context: %v", err)
	}
	if err := b.browser.Close(); err != nil {
		log.Printf("Warning: failed to close browser: %v", err)
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

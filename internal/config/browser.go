package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Defaults mirror the settings the suite was tuned against.
const (
	DefaultBaseURL           = "https://www.wildberries.ru"
	DefaultChannel           = "chrome"
	DefaultActionTimeout     = 15 * time.Second
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSettleDelay       = 2 * time.Second
)

// DefaultLaunchArgs are passed to every Chromium launch.
var DefaultLaunchArgs = []string{
	"--start-maximized",
	"--disable-blink-features=AutomationControlled",
}

// BrowserConfig holds configuration for the automated browser
type BrowserConfig struct {
	BaseURL           *url.URL
	Channel           string
	Headless          bool
	SlowMo            time.Duration
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	// SettleDelay is the pause after every navigation, reserved for a bot challenge to show up.
	SettleDelay time.Duration
	Args        []string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Channel:           getenv("SHOPFLOW_CHANNEL"),
		ActionTimeout:     DefaultActionTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		SettleDelay:       DefaultSettleDelay,
		Args:              append([]string(nil), DefaultLaunchArgs...),
	}

	rawBase := getenv("SHOPFLOW_BASE_URL")
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	base, err := ParseBaseURL(rawBase)
	if err != nil {
		return nil, err
	}
	config.BaseURL = base

	// "none" launches the bundled Chromium instead of a branded channel
	switch config.Channel {
	case "":
		config.Channel = DefaultChannel
	case "none":
		config.Channel = ""
	}

	if v := getenv("SHOPFLOW_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPFLOW_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SHOPFLOW_ACTION_TIMEOUT", &config.ActionTimeout},
		{"SHOPFLOW_NAVIGATION_TIMEOUT", &config.NavigationTimeout},
		{"SHOPFLOW_SETTLE_DELAY", &config.SettleDelay},
		{"SHOPFLOW_SLOW_MO", &config.SlowMo},
	}
	for _, d := range durations {
		if err := parseDuration(getenv, d.key, d.dst); err != nil {
			return nil, err
		}
	}

	if config.ActionTimeout <= 0 {
		return nil, fmt.Errorf("SHOPFLOW_ACTION_TIMEOUT must be positive")
	}
	if config.NavigationTimeout <= 0 {
		return nil, fmt.Errorf("SHOPFLOW_NAVIGATION_TIMEOUT must be positive")
	}

	return config, nil
}

// ParseBaseURL validates that raw is an absolute http(s) URL
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", raw)
	}
	return u, nil
}

// parseDuration overwrites dst when key is set; negative values are rejected
func parseDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d < 0 {
		return fmt.Errorf("%s must not be negative", key)
	}
	*dst = d
	return nil
}

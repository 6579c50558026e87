package config

import (
	"testing"
	"time"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadBrowserConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c *BrowserConfig)
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c *BrowserConfig) {
				if c.BaseURL.String() != DefaultBaseURL {
					t.Errorf("BaseURL = %s", c.BaseURL)
				}
				if c.Channel != DefaultChannel {
					t.Errorf("Channel = %q", c.Channel)
				}
				if c.Headless {
					t.Error("Headless should default to false")
				}
				if c.ActionTimeout != DefaultActionTimeout || c.NavigationTimeout != DefaultNavigationTimeout {
					t.Errorf("timeouts = %s / %s", c.ActionTimeout, c.NavigationTimeout)
				}
				if c.SettleDelay != DefaultSettleDelay {
					t.Errorf("SettleDelay = %s", c.SettleDelay)
				}
				if len(c.Args) != len(DefaultLaunchArgs) {
					t.Errorf("Args = %v", c.Args)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"SHOPFLOW_BASE_URL":       "http://127.0.0.1:8080",
				"SHOPFLOW_CHANNEL":        "none",
				"SHOPFLOW_HEADLESS":       "true",
				"SHOPFLOW_SETTLE_DELAY":   "0s",
				"SHOPFLOW_SLOW_MO":        "250ms",
				"SHOPFLOW_ACTION_TIMEOUT": "5s",
			},
			check: func(t *testing.T, c *BrowserConfig) {
				if c.BaseURL.Host != "127.0.0.1:8080" {
					t.Errorf("BaseURL = %s", c.BaseURL)
				}
				if c.Channel != "" {
					t.Errorf("Channel = %q, want bundled chromium", c.Channel)
				}
				if !c.Headless {
					t.Error("Headless = false")
				}
				if c.SettleDelay != 0 {
					t.Errorf("SettleDelay = %s", c.SettleDelay)
				}
				if c.SlowMo != 250*time.Millisecond {
					t.Errorf("SlowMo = %s", c.SlowMo)
				}
				if c.ActionTimeout != 5*time.Second {
					t.Errorf("ActionTimeout = %s", c.ActionTimeout)
				}
			},
		},
		{name: "relative base url", env: map[string]string{"SHOPFLOW_BASE_URL": "/catalog"}, wantErr: true},
		{name: "ftp base url", env: map[string]string{"SHOPFLOW_BASE_URL": "ftp://shop.test"}, wantErr: true},
		{name: "bad headless", env: map[string]string{"SHOPFLOW_HEADLESS": "sometimes"}, wantErr: true},
		{name: "bad duration", env: map[string]string{"SHOPFLOW_SETTLE_DELAY": "soon"}, wantErr: true},
		{name: "negative duration", env: map[string]string{"SHOPFLOW_SLOW_MO": "-1s"}, wantErr: true},
		{name: "zero action timeout", env: map[string]string{"SHOPFLOW_ACTION_TIMEOUT": "0s"}, wantErr: true},
		{name: "zero navigation timeout", env: map[string]string{"SHOPFLOW_NAVIGATION_TIMEOUT": "0s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadBrowserConfig(envFrom(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error = %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoadRunnerConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantRetries int
		wantTimeout time.Duration
		wantErr     bool
	}{
		{name: "local defaults", env: map[string]string{}, wantRetries: 0, wantTimeout: DefaultScenarioTimeout},
		{name: "ci retries", env: map[string]string{"CI": "true"}, wantRetries: 2, wantTimeout: DefaultScenarioTimeout},
		{name: "explicit retries win", env: map[string]string{"CI": "true", "SHOPFLOW_RETRIES": "1"}, wantRetries: 1, wantTimeout: DefaultScenarioTimeout},
		{name: "custom timeout", env: map[string]string{"SHOPFLOW_SCENARIO_TIMEOUT": "90s"}, wantTimeout: 90 * time.Second},
		{name: "bad retries", env: map[string]string{"SHOPFLOW_RETRIES": "many"}, wantErr: true},
		{name: "negative retries", env: map[string]string{"SHOPFLOW_RETRIES": "-1"}, wantErr: true},
		{name: "zero timeout", env: map[string]string{"SHOPFLOW_SCENARIO_TIMEOUT": "0s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadRunnerConfig(envFrom(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error = %v", err)
			}
			if c.Retries != tt.wantRetries {
				t.Errorf("Retries = %d, want %d", c.Retries, tt.wantRetries)
			}
			if c.ScenarioTimeout != tt.wantTimeout {
				t.Errorf("ScenarioTimeout = %s, want %s", c.ScenarioTimeout, tt.wantTimeout)
			}
		})
	}
}

func TestLoadPostgresConfig(t *testing.T) {
	complete := map[string]string{
		"POSTGRES_USER":     "shop",
		"POSTGRES_PASSWORD": "secret",
		"POSTGRES_DB":       "catalog",
		"POSTGRES_HOSTNAME": "db",
	}

	c, err := LoadPostgresConfig(envFrom(complete))
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	want := "host=db port=5432 user=shop dbname=catalog sslmode=disable password=secret"
	if got := c.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}

	for _, missing := range []string{"POSTGRES_USER", "POSTGRES_DB", "POSTGRES_HOSTNAME"} {
		t.Run("missing "+missing, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range complete {
				env[k] = v
			}
			delete(env, missing)
			if _, err := LoadPostgresConfig(envFrom(env)); err == nil {
				t.Errorf("expected error without %s", missing)
			}
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	c := LoadServerConfig(envFrom(map[string]string{}))
	if c.Port != "8080" || c.TemplateDir != "templates" || c.StaticDir != "static" {
		t.Errorf("defaults = %+v", c)
	}

	c = LoadServerConfig(envFrom(map[string]string{"PORT": "9000", "SHOPFLOW_TEMPLATE_DIR": "/srv/tpl"}))
	if c.Port != "9000" {
		t.Errorf("Port = %q", c.Port)
	}
	if got := c.Template("home.html"); got != "/srv/tpl/home.html" {
		t.Errorf("Template() = %q", got)
	}
}

package config

import "path/filepath"

// ServerConfig holds configuration for the fixture storefront server
type ServerConfig struct {
	Port        string
	TemplateDir string
	StaticDir   string
}

// LoadServerConfig loads fixture server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	templateDir := getenv("SHOPFLOW_TEMPLATE_DIR")
	if templateDir == "" {
		templateDir = "templates"
	}

	staticDir := getenv("SHOPFLOW_STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	return ServerConfig{
		Port:        port,
		TemplateDir: templateDir,
		StaticDir:   staticDir,
	}
}

// Template returns the path of a named template inside TemplateDir
func (c ServerConfig) Template(name string) string {
	return filepath.Join(c.TemplateDir, name)
}

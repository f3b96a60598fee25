// Package config provides configuration management for the openshelf CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	DatabasePath  string `koanf:"database"`
	SeedsDir      string `koanf:"seeds_dir"`
	ExportDir     string `koanf:"export_dir"`
	IndexPath     string `koanf:"index_path"`
	Port          int    `koanf:"port"`
	SessionSecret string `koanf:"session_secret"`
	FooterYear    int    `koanf:"footer_year"`
	TemplatesDir  string `koanf:"templates_dir"`
	Watch         bool   `koanf:"watch"`
	Verbose       bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultDatabase   = "openshelf.db"
	DefaultSeedsDir   = "seeds"
	DefaultExportDir  = "export"
	DefaultIndexPath  = "openshelf.bleve"
	DefaultPort       = 8065
	DefaultFooterYear = 2026
)

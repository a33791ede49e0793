package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evjen/blogbuilder/internal/validate"
)

// Config represents the application configuration. It is treated as
// immutable after Load returns; components receive it at construction.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
}

// SiteConfig describes site-wide metadata used in templates and feeds.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	BaseURL     string `yaml:"base_url"`
}

// ContentConfig describes where source content lives and how it is organized.
type ContentConfig struct {
	Directory string `yaml:"directory"`
	// Categories always rendered in navigation, even when empty.
	Categories []string `yaml:"categories,omitempty"`
	// RobotsFile, when set, is copied verbatim instead of generating robots.txt.
	RobotsFile string `yaml:"robots_file,omitempty"`
	// TemplatesDir overrides the embedded page templates when set.
	TemplatesDir string `yaml:"templates_dir,omitempty"`
	// AssetsDir overrides the embedded css/js assets when set.
	AssetsDir string `yaml:"assets_dir,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// BuildConfig holds tunables for the build pipeline.
type BuildConfig struct {
	FeaturedLimit  int `yaml:"featured_limit,omitempty"`  // featured posts shown on the home page
	RecentLimit    int `yaml:"recent_limit,omitempty"`    // recent posts shown on the home page
	HomeCardLimit  int `yaml:"home_card_limit,omitempty"` // posts per category card on the home page
	WordsPerMinute int `yaml:"words_per_minute,omitempty"`
}

// Defaults applied when the config file leaves fields unset.
const (
	DefaultFeaturedLimit  = 3
	DefaultRecentLimit    = 12
	DefaultHomeCardLimit  = 8
	DefaultWordsPerMinute = 238
)

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "A Blog"
	}
	if c.Content.Directory == "" {
		c.Content.Directory = "./content"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./public"
	}
	// Default to clean output directory
	c.Output.Clean = true

	if c.Build.FeaturedLimit <= 0 {
		c.Build.FeaturedLimit = DefaultFeaturedLimit
	}
	if c.Build.RecentLimit <= 0 {
		c.Build.RecentLimit = DefaultRecentLimit
	}
	if c.Build.HomeCardLimit <= 0 {
		c.Build.HomeCardLimit = DefaultHomeCardLimit
	}
	if c.Build.WordsPerMinute <= 0 {
		c.Build.WordsPerMinute = DefaultWordsPerMinute
	}
}

// Validate checks invariants that would otherwise surface as confusing
// failures deep in the build.
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site.base_url must be an absolute URL, got %q", c.Site.BaseURL)
	}
	for _, cat := range c.Content.Categories {
		if !validate.Category(cat) {
			return fmt.Errorf("content.categories entry %q must be lowercase letters, digits, hyphens or underscores", cat)
		}
	}
	return nil
}

// BaseURL returns the site base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/")
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const exampleConfig = `# blogbuilder configuration
site:
  title: "My Blog"
  description: "Notes on things I am building"
  author: "Your Name"
  base_url: "https://example.com"

content:
  directory: "./content"
  categories:
    - programming
    - projects
    - notes

output:
  directory: "./public"

build:
  featured_limit: 3
  recent_limit: 12
  home_card_limit: 8
`

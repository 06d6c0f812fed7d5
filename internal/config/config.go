// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength      = 2048
	MaxSelectorLength = 1000
	MaxTitleLength    = 200
	MaxKeywordLength  = 100
	MaxTemplateLength = 64 << 10
	MaxCSSLength      = 256 << 10
	MaxListLength     = 500
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-docs2pdf"

// Config mirrors the CLI flags. Zero values mean "not set".
type Config struct {
	Crawl      CrawlConfig   `yaml:"crawl"`
	Browser    BrowserConfig `yaml:"browser"`
	Output     OutputConfig  `yaml:"output"`
	Style      StyleConfig   `yaml:"style"`
	Cover      CoverConfig   `yaml:"cover"`
	TOC        TOCConfig     `yaml:"toc"`
	Page       PageConfig    `yaml:"page"`
	OpenDetail *bool         `yaml:"openDetail"`
	Preface    string        `yaml:"preface"` // Markdown file path
}

// CrawlConfig selects and orders pages.
type CrawlConfig struct {
	EntryPoints        []string `yaml:"entryPoints"`
	ContentSelector    string   `yaml:"contentSelector"`
	PaginationSelector string   `yaml:"paginationSelector"`
	ExcludeSelectors   []string `yaml:"excludeSelectors"`
	ExcludeURLs        []string `yaml:"excludeURLs"`
	ExcludePaths       []string `yaml:"excludePaths"`
	RestrictPaths      bool     `yaml:"restrictPaths"`
	StrictEntryPoints  bool     `yaml:"strictEntryPoints"`
	FilterKeyword      string   `yaml:"filterKeyword"`
	BaseURL            string   `yaml:"baseUrl"`
}

// BrowserConfig tunes the headless browser. Durations use Go syntax ("90s").
type BrowserConfig struct {
	Args            []string `yaml:"args"`
	ProtocolTimeout string   `yaml:"protocolTimeout"`
	WaitForRender   string   `yaml:"waitForRender"`
}

// OutputConfig names the produced files.
type OutputConfig struct {
	PDF  string `yaml:"pdf"`
	HTML string `yaml:"html"`
}

// StyleConfig controls presentation.
type StyleConfig struct {
	CSS       string `yaml:"css"` // inline CSS appended to the stylesheet
	Highlight string `yaml:"highlight"`
	AssetPath string `yaml:"assetPath"`
}

// CoverConfig holds cover page content.
type CoverConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Image    string `yaml:"image"`
}

// TOCConfig controls the table of contents.
type TOCConfig struct {
	Disabled bool   `yaml:"disabled"`
	Title    string `yaml:"title"`
}

// PageConfig controls page geometry and running header/footer.
type PageConfig struct {
	Format         string `yaml:"format"`
	Margin         string `yaml:"margin"`
	HeaderTemplate string `yaml:"headerTemplate"`
	FooterTemplate string `yaml:"footerTemplate"`
}

// Validate checks lengths, URLs and durations. LoadConfig calls it.
func (c *Config) Validate() error {
	cr := c.Crawl
	if err := validateList("crawl.entryPoints", cr.EntryPoints, MaxURLLength); err != nil {
		return err
	}
	for i, ep := range cr.EntryPoints {
		if strings.TrimSpace(ep) == "" {
			return fmt.Errorf("%w: crawl.entryPoints[%d] is empty", ErrInvalidValue, i)
		}
	}
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"crawl.contentSelector", cr.ContentSelector, MaxSelectorLength},
		{"crawl.paginationSelector", cr.PaginationSelector, MaxSelectorLength},
		{"crawl.filterKeyword", cr.FilterKeyword, MaxKeywordLength},
		{"crawl.baseUrl", cr.BaseURL, MaxURLLength},
		{"output.pdf", c.Output.PDF, MaxURLLength},
		{"output.html", c.Output.HTML, MaxURLLength},
		{"style.css", c.Style.CSS, MaxCSSLength},
		{"style.highlight", c.Style.Highlight, MaxKeywordLength},
		{"style.assetPath", c.Style.AssetPath, MaxURLLength},
		{"cover.title", c.Cover.Title, MaxTitleLength},
		{"cover.subtitle", c.Cover.Subtitle, MaxTitleLength},
		{"cover.image", c.Cover.Image, MaxURLLength},
		{"toc.title", c.TOC.Title, MaxTitleLength},
		{"page.format", c.Page.Format, MaxKeywordLength},
		{"page.margin", c.Page.Margin, MaxKeywordLength},
		{"page.headerTemplate", c.Page.HeaderTemplate, MaxTemplateLength},
		{"page.footerTemplate", c.Page.FooterTemplate, MaxTemplateLength},
		{"preface", c.Preface, MaxURLLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}
	for field, list := range map[string][]string{
		"crawl.excludeSelectors": cr.ExcludeSelectors,
		"crawl.excludeURLs":      cr.ExcludeURLs,
		"crawl.excludePaths":     cr.ExcludePaths,
		"browser.args":           c.Browser.Args,
	} {
		if err := validateList(field, list, MaxSelectorLength); err != nil {
			return err
		}
	}

	if cr.BaseURL != "" && !isHTTPURL(cr.BaseURL) {
		return fmt.Errorf("%w: crawl.baseUrl %q must be an http(s) URL", ErrInvalidValue, cr.BaseURL)
	}
	if _, err := c.ProtocolTimeout(); err != nil {
		return err
	}
	if _, err := c.WaitForRender(); err != nil {
		return err
	}
	return nil
}

// ProtocolTimeout parses browser.protocolTimeout; zero when unset.
func (c *Config) ProtocolTimeout() (time.Duration, error) {
	return parseDuration("browser.protocolTimeout", c.Browser.ProtocolTimeout)
}

// WaitForRender parses browser.waitForRender; zero when unset.
func (c *Config) WaitForRender() (time.Duration, error) {
	return parseDuration("browser.waitForRender", c.Browser.WaitForRender)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, field)
	}
	return d, nil
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func validateFieldLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), maxLength)
	}
	return nil
}

func validateList(field string, values []string, maxItem int) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %s (%d items, max %d)", ErrFieldTooLong, field, len(values), MaxListLength)
	}
	for i, v := range values {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", field, i), v, maxItem); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads a config file. A value containing a path separator is a
// path; anything else is a name searched as name.yaml and name.yml in the
// working directory, then in the user config directory under AppDir.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !strings.ContainsAny(nameOrPath, `/\`) {
		found, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-selected config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the files tried for a config name, in order.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

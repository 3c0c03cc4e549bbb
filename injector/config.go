package injector

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/errgo.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEnvVar         = "APPS_SCRIPT_URL"
	DefaultToken          = "%%APPS_SCRIPT_URL%%"
	DefaultSource         = "index.html"
	DefaultOutDir         = "dist"
	DefaultOutFile        = "index.html"
	DefaultPattern        = `^https://script\.google\.com/macros/s/.+/exec$`
	DefaultExpectedFormat = "https://script.google.com/macros/s/<ID>/exec"
	DefaultPreviewLength  = 48
)

// Config describes a single injection: which variable is read, which token
// it replaces, and where the source and the rendered document live.
//
// EnvVar, Token, Pattern and ExpectedFormat are fixed for a build and can
// only be changed programmatically; config files set paths and the preview
// length, and a file naming one of the fixed fields is rejected.
type Config struct {
	// EnvVar is the name of the environment variable holding the value.
	EnvVar string `yaml:"-" toml:"-"`
	// Token is the literal placeholder replaced in the source document.
	Token string `yaml:"-" toml:"-"`
	// Source is the path of the document to read.
	Source string `yaml:"source" toml:"source"`
	// OutDir is the directory the rendered document is written to. It is
	// created if it does not exist.
	OutDir string `yaml:"outDir" toml:"outDir"`
	// OutFile is the name of the rendered document inside OutDir.
	OutFile string `yaml:"outFile" toml:"outFile"`
	// Pattern is the regular expression the whole value must match.
	Pattern string `yaml:"-" toml:"-"`
	// ExpectedFormat is shown to the user when the value does not match
	// Pattern.
	ExpectedFormat string `yaml:"-" toml:"-"`
	// PreviewLength is how many characters of the value are echoed on
	// success.
	PreviewLength int `yaml:"previewLength" toml:"previewLength"`
	// EnvFile is an optional dotenv file consulted after the process
	// environment.
	EnvFile string `yaml:"envFile" toml:"envFile"`
}

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		EnvVar:         DefaultEnvVar,
		Token:          DefaultToken,
		Source:         DefaultSource,
		OutDir:         DefaultOutDir,
		OutFile:        DefaultOutFile,
		Pattern:        DefaultPattern,
		ExpectedFormat: DefaultExpectedFormat,
		PreviewLength:  DefaultPreviewLength,
	}
}

// LoadConfig loads a config file on top of DefaultConfig. The decoder is
// picked from the file extension: .yaml and .yml for YAML, .toml for TOML.
// Fields missing from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errgo.Notef(err, "cannot read config file")
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF, which leaves the defaults.
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("config file %s corrupted: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config file %s corrupted: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first field that would make an injection impossible.
func (c *Config) Validate() error {
	switch {
	case c.EnvVar == "":
		return fmt.Errorf("envVar must not be empty")
	case c.Token == "":
		return fmt.Errorf("token must not be empty")
	case c.Source == "":
		return fmt.Errorf("source must not be empty")
	case c.OutDir == "":
		return fmt.Errorf("outDir must not be empty")
	case c.OutFile == "":
		return fmt.Errorf("outFile must not be empty")
	case c.PreviewLength <= 0:
		return fmt.Errorf("previewLength must be positive, got %d", c.PreviewLength)
	}
	if _, err := regexp.Compile(c.Pattern); err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	return nil
}

// OutputPath is the path of the rendered document, as shown to the user.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutDir, c.OutFile)
}

// Hint returns a remediation line for a failed build, or "" if there is
// nothing more useful to say than the error itself.
func (c *Config) Hint(err error) string {
	switch errgo.Cause(err) {
	case ErrMissingConfiguration:
		if c.EnvFile != "" {
			return fmt.Sprintf("Export %s, add it to %s, or set it in Vercel -> Project Settings -> Environment Variables.", c.EnvVar, c.EnvFile)
		}
		return "Add it in Vercel -> Project Settings -> Environment Variables."
	case ErrInvalidConfiguration:
		return "Expected format: " + c.ExpectedFormat
	}
	return ""
}

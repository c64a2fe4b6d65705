package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/svgkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "svgkit.json"

	// DefaultPort is the default development server port.
	DefaultPort = 4000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultEntry is the default bundle entry point.
	DefaultEntry = "app/main.js"

	// ExportComponent makes bare SVG imports resolve to components.
	ExportComponent = "component"

	// ExportURL makes bare SVG imports resolve to URL references.
	ExportURL = "url"
)

// Config represents the complete svgkit.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// DefaultExport is what a query-less SVG import produces:
	// "component" or "url". Query overrides always win.
	DefaultExport string `json:"defaultExport,omitempty"`

	// Entry is the bundle entry point, relative to the project root.
	Entry string `json:"entry,omitempty"`

	// Svgo contains optimizer configuration.
	Svgo SvgoConfig `json:"svgo,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Build contains production build configuration.
	Build BuildConfig `json:"build,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SvgoConfig contains SVG optimizer settings.
type SvgoConfig struct {
	// Enabled controls whether SVG sources are optimized before
	// compilation. Disabled means markup passes through unchanged.
	Enabled bool `json:"enabled,omitempty"`

	// Config is the path to a project-level svgo config file.
	// When empty, conventional names (svgo.config.js, svgo.config.mjs)
	// are probed in the project root.
	Config string `json:"config,omitempty"`

	// Binary overrides the svgo executable path. When empty, "svgo"
	// from PATH is used, falling back to npx.
	Binary string `json:"binary,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// HotReload enables hot reload in development.
	HotReload bool `json:"hotReload,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains patterns to ignore during watch.
	Ignore []string `json:"ignore,omitempty"`
}

// BuildConfig contains production build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty"`

	// Minify enables minification of the bundle.
	Minify bool `json:"minify,omitempty"`

	// SourceMaps enables source map emission for the bundle.
	SourceMaps bool `json:"sourceMaps,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version:       "0.1.0",
		DefaultExport: ExportComponent,
		Entry:         DefaultEntry,
		Svgo: SvgoConfig{
			Enabled: true,
		},
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
			Watch:     []string{"app", "public"},
		},
		Build: BuildConfig{
			Output:     DefaultOutput,
			Minify:     true,
			SourceMaps: true,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for svgkit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No svgkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create svgkit.json in the project root")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse svgkit.json: " + err.Error()).
			WithSuggestion("Check that svgkit.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E102").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E102").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.DefaultExport == "" {
		c.DefaultExport = ExportComponent
	}
	if c.Entry == "" {
		c.Entry = DefaultEntry
	}

	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{"app", "public"}
	}

	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DefaultExport != ExportComponent && c.DefaultExport != ExportURL {
		return errors.New("E103").
			WithDetail("defaultExport must be \"component\" or \"url\", got " + strconv.Quote(c.DefaultExport))
	}
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E103").
			WithDetail("Port must be between 0 and 65535")
	}
	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	return filepath.Join(c.Dir(), c.Build.Output)
}

// EntryPath returns the absolute path to the bundle entry point.
func (c *Config) EntryPath() string {
	if filepath.IsAbs(c.Entry) {
		return c.Entry
	}
	return filepath.Join(c.Dir(), c.Entry)
}

// SvgoConfigPath returns the path to the project svgo config file, or ""
// when the project has none. An explicitly configured path wins over the
// conventional names.
func (c *Config) SvgoConfigPath() string {
	if c.Svgo.Config != "" {
		if filepath.IsAbs(c.Svgo.Config) {
			return c.Svgo.Config
		}
		return filepath.Join(c.Dir(), c.Svgo.Config)
	}
	for _, name := range []string{"svgo.config.js", "svgo.config.mjs", "svgo.config.cjs"} {
		path := filepath.Join(c.Dir(), name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing svgkit.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No svgkit.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

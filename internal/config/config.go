package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgets/internal/errors"
	rtconfig "github.com/vango-dev/widgets/pkg/config"
)

const (
	// ConfigFileName is the JSON project file name.
	ConfigFileName = "widgets.json"

	// YAMLConfigFileName is the YAML project file name.
	YAMLConfigFileName = "widgets.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "widgets"
)

// Config represents a widgets project file.
type Config struct {
	Request RequestConfig `json:"request" yaml:"request"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
	Scripts ScriptsConfig `json:"scripts,omitempty" yaml:"scripts,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	configPath string
}

// RequestConfig holds the request client defaults.
type RequestConfig struct {
	// Type is the default response type (json, text, arraybuffer, blob, document).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Timeout is the default timeout in milliseconds.
	Timeout int `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// BaseURL resolves relative request URLs.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Document is the HTML file the frame is mounted into.
	Document string `json:"document,omitempty" yaml:"document,omitempty"`

	// Page is the id of the page shown first.
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Ignore contains glob patterns skipped by the watcher.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// ScriptsConfig lists scripts the preview document loads.
type ScriptsConfig struct {
	URLs       []string `json:"urls,omitempty" yaml:"urls,omitempty"`
	S3Region   string   `json:"s3Region,omitempty" yaml:"s3Region,omitempty"`
	S3Endpoint string   `json:"s3Endpoint,omitempty" yaml:"s3Endpoint,omitempty"`
}

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Disabled  bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New returns a configuration holding the defaults.
func New() *Config {
	return &Config{
		Request: RequestConfig{
			Type:    "json",
			Timeout: 10000,
		},
		Serve: ServeConfig{
			Port:   DefaultPort,
			Host:   DefaultHost,
			Watch:  []string{"."},
			Ignore: []string{".git", "*.tmp", "*~"},
		},
		Scripts: ScriptsConfig{
			S3Region: "us-east-1",
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads the project file in dir, preferring widgets.json over
// widgets.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C002").
		WithDetail("No widgets.json or widgets.yaml found in " + dir).
		WithSuggestion("Create widgets.json or run 'widgets serve' with flags")
}

// LoadFile reads the project file at path. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C002").WithDetail("No project file at " + path)
		}
		return nil, errors.New("C001").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C001").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension
// selects.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C001").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
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

func (c *Config) applyDefaults() {
	if c.Request.Type == "" {
		c.Request.Type = "json"
	}
	if c.Request.Timeout == 0 {
		c.Request.Timeout = 10000
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Watch == nil {
		c.Serve.Watch = []string{"."}
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

var responseTypes = map[string]bool{
	"json": true, "text": true, "arraybuffer": true, "blob": true, "document": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("C003").WithDetail("Port must be between 0 and 65535")
	}
	if !responseTypes[c.Request.Type] {
		return errors.New("C003").
			WithDetail("Unknown request type " + strconv.Quote(c.Request.Type)).
			WithSuggestion("Use json, text, arraybuffer, blob or document")
	}
	return nil
}

// Apply copies the request defaults into the runtime configuration map.
func (c *Config) Apply() {
	rtconfig.Set(rtconfig.KeyRequestType, c.Request.Type)
	rtconfig.Set(rtconfig.KeyRequestTimeout, c.Request.Timeout)
}

// ServeAddress returns the address the preview server listens on.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ServeURL returns the preview server URL.
func (c *Config) ServeURL() string {
	return "http://" + c.ServeAddress()
}

// DocumentPath returns the absolute path of the preview document, or ""
// when none is configured.
func (c *Config) DocumentPath() string {
	if c.Serve.Document == "" || filepath.IsAbs(c.Serve.Document) {
		return c.Serve.Document
	}
	return filepath.Join(c.Dir(), c.Serve.Document)
}

// WatchPaths returns the watch paths resolved against the project dir.
func (c *Config) WatchPaths() []string {
	out := make([]string, 0, len(c.Serve.Watch))
	for _, p := range c.Serve.Watch {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir(), p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// Exists checks if a project file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
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
			return "", errors.New("C002").
				WithDetail("No project file found in " + startDir + " or any parent directory")
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

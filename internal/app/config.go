package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigVersion is the only config file version this build reads.
const ConfigVersion = 1

var validate = validator.New()

// PublishConfig selects the socket.io endpoint for the publish command.
type PublishConfig struct {
	URL                string        `yaml:"url" validate:"required,url"`
	Namespace          string        `yaml:"namespace"`
	Event              string        `yaml:"event" validate:"required"`
	AckEvent           string        `yaml:"ack_event"`
	Timeout            time.Duration `yaml:"timeout" validate:"min=0"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths   []string          `yaml:"graph" validate:"required,min=1,dive,required"`
	Namespaces   map[string]string `yaml:"namespaces" validate:"dive,keys,required,endkeys,required"`
	OutputDir    string            `yaml:"output" validate:"required"`
	TemplatePath string            `yaml:"template"`

	LogFormat       string        `yaml:"log_format" validate:"oneof=text json"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Workers         int           `yaml:"workers" validate:"min=1"`
	HealthcheckPort int           `yaml:"healthcheck_port" validate:"min=0,max=65535"`
	Debounce        time.Duration `yaml:"debounce" validate:"min=0"`

	// Publish is checked only when publishing.
	Publish PublishConfig `yaml:"publish" validate:"-"`
}

// DefaultConfig returns the values used for anything neither the config file
// nor the command line sets.
func DefaultConfig() Config {
	return Config{
		OutputDir: "features",
		LogFormat: "text",
		LogLevel:  "info",
		Workers:   4,
		Debounce:  200 * time.Millisecond,
		Publish: PublishConfig{
			Namespace: "/",
			Event:     "feature",
			Timeout:   10 * time.Second,
		},
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, configError(err)
	}
	return &cfg, nil
}

// ValidatePublish checks the publish section.
func (c *Config) ValidatePublish() error {
	if err := validate.Struct(c.Publish); err != nil {
		return configError(err)
	}
	return nil
}

func configError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed '%s' check", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

type configFile struct {
	Version int `yaml:"version"`
	Config  `yaml:",inline"`
}

// LoadConfigFile overlays the YAML file at path onto base. Relative paths in
// the file are taken relative to the file's directory. The result is not
// validated, so command line flags can still fill in gaps.
func LoadConfigFile(path string, base Config) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config file: %w", err)
	}

	file := configFile{Config: base}
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return base, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	if file.Version != ConfigVersion {
		return base, fmt.Errorf("config file %q: unsupported version %d, expected %d", path, file.Version, ConfigVersion)
	}

	dir := filepath.Dir(path)
	cfg := file.Config
	cfg.GraphPaths = slices.Clone(cfg.GraphPaths)
	for i, p := range cfg.GraphPaths {
		cfg.GraphPaths[i] = relativeTo(dir, p)
	}
	cfg.OutputDir = relativeTo(dir, cfg.OutputDir)
	cfg.TemplatePath = relativeTo(dir, cfg.TemplatePath)
	return cfg, nil
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Package config loads docdrift configuration: a .docdrift.yaml file at the
// cookbook root describing the upstream docs repo and the tracked version
// keys, plus environment variables for the bits CI injects (token, output
// file, timeout).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the per-cookbook configuration file, looked up at the root.
const FileName = ".docdrift.yaml"

// Upstream locates the docs repository that is the source of truth.
type Upstream struct {
	Owner         string `yaml:"owner"`
	Repo          string `yaml:"repo"`
	Branch        string `yaml:"branch"`
	VariablesPath string `yaml:"variables_path"`
}

// KeyMapping binds a local version key to its dotted path in the upstream
// variables file.
type KeyMapping struct {
	Key          string `yaml:"key"`
	UpstreamPath string `yaml:"upstream_path"`
}

// Env holds the CI-injected settings.
type Env struct {
	GithubToken string        `env:"GITHUB_TOKEN"`
	Timeout     time.Duration `env:"DOCDRIFT_TIMEOUT" envDefault:"30s"`
}

// Config is the merged file + environment configuration.
type Config struct {
	Upstream     Upstream     `yaml:"upstream"`
	DocsDir      string       `yaml:"docs_dir"`
	RecipesDir   string       `yaml:"recipes_dir"`
	VersionsFile string       `yaml:"versions_file"`
	Keys         []KeyMapping `yaml:"keys"`

	Env Env `yaml:"-"`
}

// Load reads .docdrift.yaml relative to root and overlays the environment.
// A missing file is not an error: defaults apply, which is enough for the
// read-only commands.
func Load(root string) (*Config, error) {
	c := &Config{}
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	}
	c.applyDefaults()
	if err := env.Parse(&c.Env); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Upstream.Owner == "" {
		c.Upstream.Owner = "polkadot-developers"
	}
	if c.Upstream.Repo == "" {
		c.Upstream.Repo = "polkadot-docs"
	}
	if c.Upstream.Branch == "" {
		c.Upstream.Branch = "master"
	}
	if c.Upstream.VariablesPath == "" {
		c.Upstream.VariablesPath = "variables.yml"
	}
	if c.DocsDir == "" {
		c.DocsDir = "docs"
	}
	if c.RecipesDir == "" {
		c.RecipesDir = "recipes"
	}
	if c.VersionsFile == "" {
		c.VersionsFile = "versions.yml"
	}
}

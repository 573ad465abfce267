// Package config loads the YAML configuration of the command line tools and the server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gridsearch/chase"
	"gridsearch/engine"
	"gridsearch/experiments/metrics"
	"gridsearch/game"
	"gridsearch/searcher"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Log    Log    `yaml:"log"`
	Search Search `yaml:"search"`
	Game   Game   `yaml:"game"`
	Server Server `yaml:"server"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"` // console writer instead of JSON lines
}

type Search struct {
	Algorithm  string        `yaml:"algorithm"` // minimax, alphabeta, expectimax or reflex
	Depth      int           `yaml:"depth"`
	MaxDepth   int           `yaml:"maxDepth"` // deepest search a server request may ask for
	Evaluation string        `yaml:"evaluation"`
	Timeout    time.Duration `yaml:"timeout"` // per move; deepens iteratively when set
}

type Game struct {
	Name     string `yaml:"name"`
	Layout   string `yaml:"layout"` // inline layout, or a file path relative to the config file
	Seed     uint64 `yaml:"seed"`
	MaxTurns int    `yaml:"maxTurns"`
}

type Server struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release or test
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Game.Layout, err = resolveLayout(cfg.Game.Layout, filepath.Dir(path)); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem found, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if !c.Search.isReflex() {
		if _, err := searcher.New(c.Search.Algorithm, searcher.Config{Depth: c.Search.Depth, Evaluate: game.EvaluateScore}); err != nil {
			errs = append(errs, fmt.Errorf("search: %w", err))
		}
	}
	if _, err := game.LookupEvaluation(c.Search.Evaluation); err != nil {
		errs = append(errs, fmt.Errorf("search.evaluation: %w", err))
	}
	if c.Search.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("search.maxDepth: %d is not positive", c.Search.MaxDepth))
	} else if c.Search.Depth > c.Search.MaxDepth {
		errs = append(errs, fmt.Errorf("search.depth: %d exceeds maxDepth %d", c.Search.Depth, c.Search.MaxDepth))
	}
	if c.Search.Timeout < 0 {
		errs = append(errs, fmt.Errorf("search.timeout: %s is negative", c.Search.Timeout))
	}

	if _, err := chase.Parse(c.Game.Layout); err != nil {
		errs = append(errs, fmt.Errorf("game.layout: %w", err))
	}
	if c.Game.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("game.maxTurns: %d is not positive", c.Game.MaxTurns))
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode: unknown mode %q", c.Server.Mode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Agent describes how agent 0 is played.
func (c Config) Agent() metrics.AgentConfig {
	return metrics.AgentConfig{
		Algorithm:  c.Search.Algorithm,
		Depth:      c.Search.Depth,
		Evaluation: c.Search.Evaluation,
		Timeout:    c.Search.Timeout,
	}
}

// State parses the configured layout into a fresh game.
func (c Config) State() (*chase.State, error) {
	return chase.Parse(c.Game.Layout)
}

func (s Search) isReflex() bool {
	return strings.EqualFold(s.Algorithm, engine.ReflexName)
}

// resolveLayout returns the contents of the file layout names, or layout itself when it
// spans several lines or names no file.
func resolveLayout(layout, dir string) (string, error) {
	if layout == "" || strings.Contains(layout, "\n") {
		return layout, nil
	}
	path := layout
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layout, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read layout: %w", err)
	}
	return string(data), nil
}

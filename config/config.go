// Package config loads the six simulation parameters from a flat key/value
// source. Keys missing from the source keep their built-in defaults.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"liftsim/data"
	"liftsim/model"
)

var (
	// ErrInvalidValue marks a key whose value cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidConfig marks a parsed configuration the simulation cannot run.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config carries the simulation parameters.
type Config struct {
	Structure          model.Structure `json:"structures" yaml:"structures"`
	Floors             int             `json:"floors" yaml:"floors"`
	ArrivalProbability float64         `json:"passengers" yaml:"passengers"`
	Elevators          int             `json:"elevators" yaml:"elevators"`
	ElevatorCapacity   int             `json:"elevatorCapacity" yaml:"elevatorCapacity"`
	Duration           int             `json:"duration" yaml:"duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := Apply(Config{}, data.DefaultProperties)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults: %v", err))
	}
	return cfg
}

// TopFloor is the highest floor index.
func (c Config) TopFloor() int { return c.Floors - 1 }

// Apply parses every known key present in props onto base. Unknown keys are
// ignored. Values are trimmed before parsing.
func Apply(base Config, props map[string]string) (Config, error) {
	cfg := base
	for key, raw := range props {
		v := strings.TrimSpace(raw)
		var err error
		switch key {
		case "structures":
			cfg.Structure, err = model.ParseStructure(v)
		case "floors":
			cfg.Floors, err = strconv.Atoi(v)
		case "passengers":
			cfg.ArrivalProbability, err = strconv.ParseFloat(v, 64)
		case "elevators":
			cfg.Elevators, err = strconv.Atoi(v)
		case "elevatorCapacity":
			cfg.ElevatorCapacity, err = strconv.Atoi(v)
		case "duration":
			cfg.Duration, err = strconv.Atoi(v)
		default:
			continue
		}
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, key, raw, err)
		}
	}
	return cfg, nil
}

// Properties renders the configuration back into key/value form.
func (c Config) Properties() map[string]string {
	return map[string]string{
		"structures":       string(c.Structure),
		"floors":           strconv.Itoa(c.Floors),
		"passengers":       strconv.FormatFloat(c.ArrivalProbability, 'g', -1, 64),
		"elevators":        strconv.Itoa(c.Elevators),
		"elevatorCapacity": strconv.Itoa(c.ElevatorCapacity),
		"duration":         strconv.Itoa(c.Duration),
	}
}

// String lists the parameters as key=value pairs in documentation order.
func (c Config) String() string {
	props := c.Properties()
	pairs := make([]string, len(data.Keys))
	for i, k := range data.Keys {
		pairs[i] = k + "=" + props[k]
	}
	return strings.Join(pairs, " ")
}

// Validate reports parameter combinations the simulation cannot run.
func (c Config) Validate() error {
	switch {
	case c.Structure != model.Linked && c.Structure != model.Array:
		return fmt.Errorf("%w: unknown structure %q", ErrInvalidConfig, c.Structure)
	case c.Floors < 2:
		// destinations are resampled until they differ from the origin
		return fmt.Errorf("%w: floors must be at least 2, got %d", ErrInvalidConfig, c.Floors)
	case c.ArrivalProbability < 0 || c.ArrivalProbability > 1:
		return fmt.Errorf("%w: passengers must be within [0,1], got %g", ErrInvalidConfig, c.ArrivalProbability)
	case c.Elevators < 1:
		return fmt.Errorf("%w: elevators must be at least 1, got %d", ErrInvalidConfig, c.Elevators)
	case c.ElevatorCapacity < 1:
		return fmt.Errorf("%w: elevatorCapacity must be at least 1, got %d", ErrInvalidConfig, c.ElevatorCapacity)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative, got %d", ErrInvalidConfig, c.Duration)
	}
	return nil
}

// Load reads a configuration file. An empty path yields the defaults. A file
// that is missing or cannot be parsed as a whole is logged and replaced by the
// defaults; a single value that cannot be parsed is returned as an error.
func Load(path string, log zerolog.Logger) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	props, err := readProperties(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("configuration source unusable, using defaults")
		return cfg, nil
	}
	cfg, err = Apply(cfg, props)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Stringer("config", cfg).Msg("configuration loaded")
	return cfg, nil
}

func readProperties(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAML(path)
	case ".env":
		return godotenv.Read(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	normalized, err := normalizeProperties(f)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	return godotenv.Unmarshal(normalized)
}

// normalizeProperties rewrites Java properties syntax into key=value lines:
// '!' comments are dropped, continuation lines are joined and a key may be
// separated from its value by '=', ':' or whitespace.
func normalizeProperties(r io.Reader) (string, error) {
	var b strings.Builder
	var pending string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimLeft(sc.Text(), " \t\f")
		if pending == "" && (line == "" || line[0] == '#' || line[0] == '!') {
			continue
		}
		line = pending + line
		if trailingBackslashes(line)%2 == 1 {
			pending = line[:len(line)-1]
			continue
		}
		pending = ""
		writeProperty(&b, line)
	}
	if pending != "" {
		writeProperty(&b, pending)
	}
	return b.String(), sc.Err()
}

func writeProperty(b *strings.Builder, line string) {
	end := strings.IndexAny(line, "=: \t\f")
	if end < 0 {
		fmt.Fprintf(b, "%s=\n", line)
		return
	}
	key, rest := line[:end], strings.TrimLeft(line[end:], " \t\f")
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = strings.TrimLeft(rest[1:], " \t\f")
	}
	fmt.Fprintf(b, "%s=%s\n", key, rest)
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func readYAML(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var raw map[string]any
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	props := make(map[string]string, len(raw))
	for k, v := range raw {
		props[k] = fmt.Sprint(v)
	}
	return props, nil
}

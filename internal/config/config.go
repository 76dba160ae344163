package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/minapi/minapi/internal/compact"
)

type Config struct {
	Spec             string   `koanf:"spec"`
	Output           string   `koanf:"output"`
	Refs             string   `koanf:"refs"`
	DescriptionLimit int      `koanf:"description-limit"`
	SeedSchemas      []string `koanf:"seed-schemas"`
	Validate         bool     `koanf:"validate"`
}

// BindFlags binds the compact command's flags.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("config", "c", "", "Config file path (default: minapi.yaml)")
	flags.StringP("spec", "s", "", "API description file path, or - for stdin")
	flags.StringP("output", "o", "", "Output file path (default: stdout)")
	flags.String("refs", "", "Reference collection policy: direct, transitive")
	flags.Int("description-limit", 0, "Character cap for endpoint descriptions")
	flags.StringSlice("seed-schemas", nil, "Schema names always included when defined")
	flags.Bool("validate", false, "Validate the document with libopenapi before compacting")
}

// Load merges defaults, an optional config file and command flags, in that
// order (later wins).
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := compact.DefaultOptions()
	if err := k.Load(confmap.Provider(map[string]any{
		"refs":              string(defaults.RefPolicy),
		"description-limit": defaults.DescriptionLimit,
		"seed-schemas":      defaults.SeedSchemas,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat("minapi.yaml"); err == nil {
			configFile = "minapi.yaml"
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	if v, err := cmd.Flags().GetString("spec"); err == nil && v != "" {
		m["spec"] = v
	}
	if v, err := cmd.Flags().GetString("output"); err == nil && v != "" {
		m["output"] = v
	}
	if v, err := cmd.Flags().GetString("refs"); err == nil && v != "" {
		m["refs"] = v
	}
	if cmd.Flags().Changed("description-limit") {
		if v, err := cmd.Flags().GetInt("description-limit"); err == nil {
			m["description-limit"] = v
		}
	}
	if v, err := cmd.Flags().GetStringSlice("seed-schemas"); err == nil && len(v) > 0 {
		m["seed-schemas"] = v
	}
	if cmd.Flags().Changed("validate") {
		if v, err := cmd.Flags().GetBool("validate"); err == nil {
			m["validate"] = v
		}
	}

	return m
}

func (c *Config) Check() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}

	validPolicies := map[string]bool{
		string(compact.RefsDirect):     true,
		string(compact.RefsTransitive): true,
	}
	if !validPolicies[c.Refs] {
		return fmt.Errorf("invalid refs policy: %s (valid: direct, transitive)", c.Refs)
	}

	if c.DescriptionLimit <= 0 {
		return fmt.Errorf("description limit must be positive, got %d", c.DescriptionLimit)
	}

	return nil
}

// Options lowers the configuration into engine options.
func (c *Config) Options() compact.Options {
	return compact.Options{
		DescriptionLimit: c.DescriptionLimit,
		SeedSchemas:      c.SeedSchemas,
		RefPolicy:        compact.RefPolicy(c.Refs),
	}
}

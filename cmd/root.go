package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
	"github.com/wastenot/brik/store"
)

// Config represents the structure of the config.json file
// Example at project root: config.json
//
//	{
//	  "store_driver": "badger",
//	  "store_path": "/home/me/.local/share/brik",
//	  "label_aliases": {"veg": "Vegetable peels", ...}
//	}
//
// Add fields here as config grows.
type Config struct {
	StoreDriver  string            `json:"store_driver"`
	StorePath    string            `json:"store_path"`
	LabelAliases map[string]string `json:"label_aliases"`
}

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// cfgFile is set from the --config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "brik",
	Short: "Brik estimates bio-brick output and landfill savings from collected waste",
	Long: `Brik tracks how much categorized waste material you have on hand and
works out how many composite bio bricks it converts into, how much
landfill volume that diversion saves, and what fraction of a landfill
cell you avoid filling.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply color preference as early as possible, but only disable if the flag is set
		if noColor {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg != nil {
			return nil
		}
		// Determine path: explicit flag takes precedence; else try merge from standard locations
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
			Cfg = cfg

			return nil
		}

		cfg, err := LoadMergedConfig()
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
		// Config is optional; only set if any file existed
		if cfg != nil {
			Cfg = cfg
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openEngine opens the configured store, builds an engine on it and
// hydrates it from persisted state. The returned cleanup closes the
// store and must be called when the command is done.
func openEngine() (*engine.Engine, func(), error) {
	driver, path := storeLocation()

	if path == "" {
		// Nowhere to put a database; run in-memory only. Mutating
		// commands still work for the session, they just don't stick.
		return engine.New(nil), func() {}, nil
	}

	if driver == "" || driver == store.DriverBadger {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create store directory: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create store directory: %w", err)
	}

	st, err := store.Open(driver, path)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(st)
	if err := eng.Load(); err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return eng, func() { _ = st.Close() }, nil
}

// storeLocation resolves the store driver and path from config, with a
// default Badger directory under the user's data dir.
func storeLocation() (driver, path string) {
	if Cfg != nil {
		driver = Cfg.StoreDriver
		path = Cfg.StorePath
	}
	if path != "" {
		return driver, path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return driver, ""
	}
	if driver == store.DriverSQLite {
		return driver, filepath.Join(home, ".local", "share", "brik", "brik.db")
	}
	return driver, filepath.Join(home, ".local", "share", "brik", "store")
}

// LoadConfig reads and parses JSON config from the given path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json config parsing error: %w", err)
	}

	return &c, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

//nolint:gochecknoinits
func init() {
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (config.json)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.config/brik/config.json
//  2. $XDG_CONFIG_HOME/brik/config.json
//  3. ./config.json (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*Config, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &Config{}

	for _, p := range paths {
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "brik", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "brik", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values and maps from src into dst.
// Maps are merged by keys; src keys override dst.
func mergeInto(dst, src *Config) {
	if src == nil || dst == nil {
		return
	}

	if src.StoreDriver != "" {
		dst.StoreDriver = src.StoreDriver
	}

	if src.StorePath != "" {
		dst.StorePath = src.StorePath
	}
	// maps
	if src.LabelAliases != nil {
		if dst.LabelAliases == nil {
			dst.LabelAliases = map[string]string{}
		}

		for k, v := range src.LabelAliases {
			dst.LabelAliases[k] = v
		}
	}
}

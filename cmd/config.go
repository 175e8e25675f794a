package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tabboard/internal/clierr"
	"github.com/twiced-technology-gmbh/tabboard/internal/config"
	"github.com/twiced-technology-gmbh/tabboard/internal/logging"
	"github.com/twiced-technology-gmbh/tabboard/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"path": {
			get: func(c *config.Config) any { return c.Path() },
		},
		"board.file": {
			get:      func(c *config.Config) any { return c.BoardFile() },
			set:      func(c *config.Config, v string) error { c.Board.File = v; return nil },
			writable: true,
		},
		"tui.columns_offset": {
			get: func(c *config.Config) any { return c.ColumnsOffset() },
			set: func(c *config.Config, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid tui.columns_offset %q: must be an integer", v)
				}
				c.TUI.ColumnsOffset = n
				return nil // validation handles range check
			},
			writable: true,
		},
		"tui.markdown": {
			get:      func(c *config.Config) any { return c.Markdown() },
			set:      boolSetter("tui.markdown", func(c *config.Config, b bool) { c.TUI.Markdown = &b }),
			writable: true,
		},
		"tui.clipboard": {
			get:      func(c *config.Config) any { return c.Clipboard() },
			set:      boolSetter("tui.clipboard", func(c *config.Config, b bool) { c.TUI.Clipboard = &b }),
			writable: true,
		},
		"log.level": {
			get: func(c *config.Config) any { return c.Log.Level },
			set: func(c *config.Config, v string) error {
				if _, err := logging.ParseLevel(v); err != nil {
					return clierr.Newf(clierr.InvalidInput, "invalid log.level %q: %v", v, err)
				}
				c.Log.Level = v
				return nil
			},
			writable: true,
		},
		"log.file": {
			get:      func(c *config.Config) any { return c.LogPath() },
			set:      func(c *config.Config, v string) error { c.Log.File = v; return nil },
			writable: true,
		},
	}
}

func boolSetter(key string, assign func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be true or false", key, v)
		}
		assign(c, b)
		return nil
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"path",
		"board.file",
		"tui.columns_offset",
		"tui.markdown",
		"tui.clipboard",
		"log.level",
		"log.file",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, val)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	// Environment overrides must not leak into the saved file.
	cfg, err := config.Load(path)
	if err != nil {
		return clierr.Wrap(clierr.InvalidConfig, err)
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidInput, err)
	}

	if err := cfg.Save(); err != nil {
		return clierr.Wrap(clierr.IOFailure, fmt.Errorf("saving config: %w", err))
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}

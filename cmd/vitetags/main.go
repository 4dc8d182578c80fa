package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/vitetags/internal/app"
	"github.com/quantmind-br/vitetags/internal/config"
	"github.com/quantmind-br/vitetags/internal/utils"
	"github.com/quantmind-br/vitetags/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli holds the global flags shared by every subcommand
type cli struct {
	cfgFile  string
	envFiles []string
	name     string
	format   string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "vitetags",
		Short: "Resolve bundler entry points into HTML tags",
		Long: `vitetags turns entry points of a front-end build into the script, style
and preload tags a server-rendered page needs.

In development the tags point at the running dev server. In production they
are read from the build manifest, with every statically imported chunk and
stylesheet resolved and deduplicated.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml or ~/.vitetags/config.yaml)")
	rootCmd.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	rootCmd.PersistentFlags().StringVarP(&c.name, "name", "n", "", "configuration name (default from config)")
	rootCmd.PersistentFlags().StringVarP(&c.format, "format", "f", "html", "output format: html or urls")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		c.tagsCmd(),
		c.tagCmd(),
		c.stylesCmd(),
		c.clientCmd(),
		c.reactRefreshCmd(),
		c.assetCmd(),
		c.urlsCmd(),
		c.manifestCmd(),
		c.doctorCmd(),
		c.warmCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: c.cfgFile, EnvFiles: c.envFiles})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (c *cli) logger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: c.verbose,
	})
}

// withVite loads the configuration, builds the facade and runs fn with it
func (c *cli) withVite(fn func(v *app.Vite) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	v, err := app.New(app.Options{
		Config: cfg,
		Logger: c.logger(cfg),
		Format: c.format,
	})
	if err != nil {
		return err
	}
	defer v.Close()

	return fn(v)
}

func printLine(cmd *cobra.Command, s string) {
	if s != "" {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
}

func (c *cli) tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags [entry...]",
		Short: "Print every tag needed by the entries (all configured entries by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.Tags(cmd.Context(), c.name, args...)
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) tagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <entry>",
		Short: "Print the tag of one entry and its own stylesheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.Tag(cmd.Context(), c.name, args[0])
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles <entry>",
		Short: "Print the style tags of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.StyleTags(cmd.Context(), c.name, args[0])
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) clientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Print the dev server client tag (nothing in production)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.ClientScriptTag(cmd.Context(), c.name)
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) reactRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "react-refresh",
		Short: "Print the React refresh preamble (nothing in production)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.ReactRefreshTag(cmd.Context(), c.name)
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) assetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asset <path>",
		Short: "Print the public URL of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				out, err := v.AssetURL(cmd.Context(), c.name, args[0])
				if err != nil {
					return err
				}
				printLine(cmd, out)
				return nil
			})
		},
	}
}

func (c *cli) urlsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "urls [entry...]",
		Short: "Print the URLs needed by the entries, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				urls, err := v.URLs(cmd.Context(), c.name, args...)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, urls)
				}
				printLine(cmd, strings.Join(urls, "\n"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	return cmd
}

type manifestEntry struct {
	Key            string   `json:"key"`
	File           string   `json:"file"`
	Src            string   `json:"src,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Imports        []string `json:"imports,omitempty"`
}

func (c *cli) manifestCmd() *cobra.Command {
	var (
		asJSON      bool
		entriesOnly bool
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "List the entries of the build manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withVite(func(v *app.Vite) error {
				m, err := v.Manifest(cmd.Context(), c.name)
				if err != nil {
					return err
				}

				keys := m.Keys()
				if entriesOnly {
					keys = m.EntryPoints()
				}

				entries := make([]manifestEntry, 0, len(keys))
				for _, k := range keys {
					e, _ := m.Lookup(k)
					entries = append(entries, manifestEntry{
						Key:            k,
						File:           e.File,
						Src:            e.Src,
						IsEntry:        e.IsEntry,
						IsDynamicEntry: e.IsDynamicEntry,
						CSS:            e.CSS,
						Imports:        e.Imports,
					})
				}

				if asJSON {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%d entries, sha256 %s)\n", m.Path(), m.Len(), shortDigest(m.Digest()))
				for _, e := range entries {
					marker := " "
					if e.IsEntry {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s -> %s\n", marker, e.Key, e.File)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&entriesOnly, "entries", false, "only list entry points")
	return cmd
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writeJSON(cmd, version.Get())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

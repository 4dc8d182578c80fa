package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/vitetags/internal/app"
	"github.com/quantmind-br/vitetags/internal/config"
	"github.com/quantmind-br/vitetags/internal/devserver"
	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// pingerFactory is replaced in tests
var pingerFactory = func(cfg *config.Configuration) domain.Pinger {
	return devserver.NewHTTPPinger(devserver.PingerOptions{
		Timeout: cfg.DevServer.PingTimeout,
		Retries: cfg.DevServer.PingRetries,
	})
}

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check every configuration",
		Long:  "Verifies build paths, manifests and dev server reachability of every loaded configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprint(out, "Config file: ")
			cfg, err := c.loadConfig()
			if err != nil {
				fmt.Fprintln(out, "FAILED")
				return err
			}
			fmt.Fprintln(out, "OK")

			v, err := app.New(app.Options{Config: cfg, Logger: utils.NewNopLogger(), Format: c.format})
			if err != nil {
				return err
			}
			defer v.Close()

			allPassed := true
			for _, name := range cfg.Names() {
				conf, _ := cfg.Get(name)
				if !checkConfiguration(cmd.Context(), out, v, conf) {
					allPassed = false
				}
			}

			fmt.Fprint(out, "Cache directory: ")
			if !cfg.Cache.Enabled {
				fmt.Fprintln(out, "disabled")
			} else if cfg.Cache.Backend == config.CacheBackendMemory {
				fmt.Fprintln(out, "OK (memory)")
			} else if utils.IsDir(utils.ExpandPath(cfg.Cache.Directory)) {
				fmt.Fprintf(out, "OK (%s)\n", cfg.Cache.Directory)
			} else {
				fmt.Fprintln(out, "WARN (will be created on first use)")
			}

			fmt.Fprintln(out)
			if !allPassed {
				return errors.New("some checks failed")
			}
			fmt.Fprintln(out, "All checks passed!")
			return nil
		},
	}
}

func checkConfiguration(ctx context.Context, out io.Writer, v *app.Vite, cfg *config.Configuration) bool {
	fmt.Fprintf(out, "Configuration %q (%s):\n", cfg.Name, cfg.Mode)
	passed := true

	if cfg.IsDevelopment() {
		fmt.Fprintf(out, "  Dev server %s: ", cfg.DevServer.URL)
		if err := pingerFactory(cfg).Ping(ctx, cfg.DevServer.URL); err != nil {
			if cfg.DevServer.PingBeforeUsingManifest {
				fmt.Fprintln(out, "UNREACHABLE (falling back to the manifest)")
			} else {
				fmt.Fprintln(out, "UNREACHABLE")
				passed = false
			}
		} else {
			fmt.Fprintln(out, "OK")
		}
	}

	fmt.Fprint(out, "  Build path: ")
	base, err := cfg.BasePath()
	if err != nil {
		if cfg.IsDevelopment() {
			fmt.Fprintln(out, "not set")
			return passed
		}
		fmt.Fprintf(out, "FAILED (%v)\n", err)
		return false
	}
	fmt.Fprintf(out, "OK (%s)\n", base)

	fmt.Fprint(out, "  Manifest: ")
	m, err := v.Manifest(ctx, cfg.Name)
	switch {
	case err == nil:
		fmt.Fprintf(out, "OK (%s, %d entries)\n", m.Path(), m.Len())
	case cfg.IsDevelopment():
		fmt.Fprintf(out, "WARN (%v)\n", err)
	default:
		fmt.Fprintf(out, "FAILED (%v)\n", err)
		return false
	}

	if m == nil || cfg.IsDevelopment() {
		return passed
	}
	for _, entry := range cfg.Entrypoints.Paths {
		fmt.Fprintf(out, "  Entry %s: ", entry)
		if _, _, err := m.Resolve(entry); err != nil {
			fmt.Fprintln(out, "MISSING")
			passed = false
		} else {
			fmt.Fprintln(out, "OK")
		}
	}
	return passed
}

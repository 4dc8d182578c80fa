package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/vitetags/internal/app"
	"github.com/quantmind-br/vitetags/internal/utils"
)

func (c *cli) warmCmd() *cobra.Command {
	var (
		workers int
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Pre-render the tags of every configuration into the cache",
		Long: `Resolves the configured entry points of every production configuration
and stores the rendered output in the cache. Useful with the badger backend,
which keeps the output across runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Cache.Enabled {
				return errors.New("cache is disabled, set cache.enabled to true")
			}

			v, err := app.New(app.Options{Config: cfg, Logger: c.logger(cfg), Format: c.format})
			if err != nil {
				return err
			}
			defer v.Close()

			progress := func(app.WarmResult) {}
			if !quiet {
				bar := utils.NewProgressBar(cmd.ErrOrStderr(), len(cfg.Names()), utils.DescWarming)
				defer bar.Finish()
				progress = func(app.WarmResult) { _ = bar.Add(1) }
			}

			results := v.Warm(cmd.Context(), workers, progress)

			out := cmd.OutOrStdout()
			var errs []error
			for _, r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(out, "%s: FAILED (%v)\n", r.Name, r.Err)
					errs = append(errs, r.Err)
				case r.Skipped:
					fmt.Fprintf(out, "%s: skipped (dev server)\n", r.Name)
				default:
					fmt.Fprintf(out, "%s: %d tags\n", r.Name, r.Tags)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "number of configurations warmed concurrently")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

package app

import (
	"context"
	"sync"

	"github.com/quantmind-br/vitetags/internal/cache"
	"github.com/quantmind-br/vitetags/internal/tags"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// WarmResult is the outcome of warming one configuration
type WarmResult struct {
	Name string
	// Skipped is set for configurations served by the dev server
	Skipped bool
	Tags    int
	Err     error
}

// Warm renders the configured entry points of every configuration, in the
// facade's format and as URLs, so that later calls hit the output cache.
// Configurations resolving against the dev server are skipped. When not nil,
// progress is called once per configuration as it completes.
func (v *Vite) Warm(ctx context.Context, workers int, progress func(WarmResult)) []WarmResult {
	names := v.config.Names()
	results := make([]WarmResult, len(names))
	for i, name := range names {
		results[i].Name = name
	}

	var mu sync.Mutex
	indexes := make([]int, len(names))
	for i := range indexes {
		indexes[i] = i
	}

	errs := utils.ParallelForEach(ctx, indexes, workers, func(ctx context.Context, i int) error {
		res := v.warm(ctx, names[i])
		if progress != nil {
			mu.Lock()
			progress(res)
			mu.Unlock()
		}
		results[i] = res
		return res.Err
	})

	for i, err := range errs {
		if results[i].Err == nil && err != nil {
			results[i].Err = err
		}
	}
	return results
}

func (v *Vite) warm(ctx context.Context, name string) WarmResult {
	res := WarmResult{Name: name}
	logger := v.logger.WithConfiguration(name)

	rs, err := v.resolverSet(name)
	if err != nil {
		res.Err = err
		return res
	}
	if v.useDevServer(ctx, rs) {
		res.Skipped = true
		logger.Debug().Msg("Served by the dev server, nothing to warm")
		return res
	}

	lines, err := v.entryLines(ctx, rs, rs.renderer, cache.PrefixTags, v.format, nil)
	if err != nil {
		res.Err = err
		logger.Warn().Err(err).Msg("Warm failed")
		return res
	}
	if _, err := v.entryLines(ctx, rs, tags.URLRenderer{}, cache.PrefixURLs, tags.FormatURLs, nil); err != nil {
		res.Err = err
		return res
	}

	res.Tags = len(lines)
	logger.Debug().Int("tags", res.Tags).Msg("Warmed")
	return res
}

package devserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// PingerOptions contains options for creating an HTTPPinger
type PingerOptions struct {
	Timeout         time.Duration
	Retries         int
	InitialInterval time.Duration
	Client          *http.Client
	Logger          *utils.Logger
}

// DefaultPingerOptions returns default pinger options
func DefaultPingerOptions() PingerOptions {
	return PingerOptions{
		Timeout:         time.Second,
		Retries:         0,
		InitialInterval: 100 * time.Millisecond,
	}
}

// HTTPPinger checks dev server reachability with a plain GET. Any HTTP
// response counts as reachable; only transport failures do not.
type HTTPPinger struct {
	client          *http.Client
	timeout         time.Duration
	retries         int
	initialInterval time.Duration
	logger          *utils.Logger
}

var _ domain.Pinger = (*HTTPPinger)(nil)

// NewHTTPPinger creates a pinger
func NewHTTPPinger(opts PingerOptions) *HTTPPinger {
	defaults := DefaultPingerOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaults.InitialInterval
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}

	return &HTTPPinger{
		client:          opts.Client,
		timeout:         opts.Timeout,
		retries:         opts.Retries,
		initialInterval: opts.InitialInterval,
		logger:          utils.OrNop(opts.Logger).WithComponent("devserver"),
	}
}

func (p *HTTPPinger) newBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialInterval
	b.MaxInterval = 10 * p.initialInterval
	b.RandomizationFactor = 0.2
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.retries)), ctx)
}

// Ping returns nil when url answered within the timeout
func (p *HTTPPinger) Ping(ctx context.Context, url string) error {
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		return p.ping(ctx, url)
	}, p.newBackoff(ctx))

	if err != nil {
		p.logger.Debug().
			Str("url", url).
			Int("attempts", attempt).
			Err(err).
			Msg("Dev server ping failed")
		return fmt.Errorf("%w: %s: %v", domain.ErrDevServerUnreachable, url, err)
	}

	p.logger.Debug().Str("url", url).Int("attempts", attempt).Msg("Dev server reachable")
	return nil
}

func (p *HTTPPinger) ping(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.Body.Close()
}

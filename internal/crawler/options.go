package crawler

import (
	"github.com/apiforge/modelgen/internal/generator"
	"github.com/apiforge/modelgen/internal/logger"
	"github.com/apiforge/modelgen/internal/output"
)

// Option is a functional option for configuring the Crawler.
type Option func(*Crawler) error

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(c *Crawler) error {
		c.config = config
		return nil
	}
}

// WithLogger sets a custom logger. Without it the crawler stays silent.
func WithLogger(l *logger.Logger) Option {
	return func(c *Crawler) error {
		c.log = l
		return nil
	}
}

// WithFetcher sets a custom page fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Crawler) error {
		c.fetcher = f
		return nil
	}
}

// WithEmitter sets the code emitter.
func WithEmitter(e generator.Emitter) Option {
	return func(c *Crawler) error {
		c.emitter = e
		return nil
	}
}

// WithWriter sets the output writer.
func WithWriter(w output.Writer) Option {
	return func(c *Crawler) error {
		c.writer = w
		return nil
	}
}

// WithStream selects streaming emission: each file is written right after
// its own detail parse instead of after the whole crawl.
func WithStream(stream bool) Option {
	return func(c *Crawler) error {
		c.config.Stream = stream
		return nil
	}
}

// WithKeepMinimal keeps the index-only minimal model for resources whose
// detail fetch failed instead of dropping them.
func WithKeepMinimal(keep bool) Option {
	return func(c *Crawler) error {
		c.config.KeepMinimalOnError = keep
		return nil
	}
}

// WithConcurrency sets the detail batch size.
func WithConcurrency(n int) Option {
	return func(c *Crawler) error {
		if n < 1 {
			n = 1
		}
		c.config.Concurrency = n
		return nil
	}
}

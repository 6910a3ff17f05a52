// Package crawler orchestrates the documentation-to-model pipeline:
// fetch index, parse index, fetch detail pages in polite concurrent
// batches, parse details, generate one model file per resource.
//
// Only an index fetch failure aborts a run. Everything downstream
// degrades per resource: failed detail fetches, unparseable markup and
// generation errors are logged and reflected as lower counts, never as a
// run-level failure.
package crawler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apiforge/modelgen/internal/fetch"
	"github.com/apiforge/modelgen/internal/generator"
	"github.com/apiforge/modelgen/internal/logger"
	"github.com/apiforge/modelgen/internal/model"
	"github.com/apiforge/modelgen/internal/output"
	"github.com/apiforge/modelgen/internal/parser"
)

// Fetcher is the HTTP capability the crawler depends on. Pages returns
// bodies for only the URLs that succeeded, keyed by URL, and settles
// every request before returning.
type Fetcher interface {
	Page(ctx context.Context, url string) (string, error)
	Pages(ctx context.Context, urls []string, concurrency int) map[string]string
}

// Crawler runs the documentation-to-model pipeline.
type Crawler struct {
	config  *Config
	log     *logger.Logger
	fetcher Fetcher
	emitter generator.Emitter
	writer  output.Writer
	parser  *parser.Parser
}

// New creates a crawler. Every collaborator has a default: a real HTTP
// client, the Go emitter, a file-system writer and a no-op logger.
func New(opts ...Option) (*Crawler, error) {
	c := &Crawler{
		config: DefaultConfig(),
		log:    logger.Nop(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.config == nil {
		c.config = DefaultConfig()
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.fetcher == nil {
		fetchCfg := fetch.DefaultConfig()
		fetchCfg.Timeout = c.config.Timeout
		c.fetcher = fetch.NewClient(fetchCfg, c.log)
	}
	if c.emitter == nil {
		c.emitter = generator.NewGo()
	}
	if c.writer == nil {
		c.writer = output.NewFileWriter()
	}
	c.parser = parser.New(c.config.DocsBase, c.log)

	return c, nil
}

// Run executes one crawl. The returned result is complete even when err
// is non-nil; err is only set for the fatal index-fetch failure.
func (c *Crawler) Run(ctx context.Context) (*model.CrawlResult, error) {
	result := &model.CrawlResult{Success: true}

	c.log.Infof("fetching index page %s", c.config.IndexURL)
	body, err := c.fetcher.Page(ctx, c.config.IndexURL)
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		result.Stats.Errors++
		return result, fmt.Errorf("index fetch failed: %w", err)
	}

	resources := c.parser.ParseIndex(body)
	result.Resources = resources
	result.Stats.ResourcesDiscovered = len(resources)

	passthrough, withDetail := partition(resources)
	c.log.Infof("discovered %d resources (%d with detail pages)", len(resources), len(withDetail))

	// Resources without a detail page skip the crawl and generate from
	// their index-only minimal model. Streaming emits them right away;
	// batch mode holds every write until the crawl has settled so an
	// interrupted run leaves no partial output.
	if c.config.Stream {
		for _, r := range passthrough {
			c.generateResource(r, result)
		}
	}

	handle := func(r model.Resource) {
		result.DetailedResources = append(result.DetailedResources, r)
		if c.config.Stream {
			c.generateResource(r, result)
		}
	}
	c.crawlDetails(ctx, withDetail, result, handle)

	if !c.config.Stream {
		for _, r := range passthrough {
			c.generateResource(r, result)
		}
		for _, r := range result.DetailedResources {
			c.generateResource(r, result)
		}
	}

	result.Stats.ResourcesDetailed = len(result.DetailedResources)
	c.log.Infof("generated %d of %d resources", result.Stats.FilesGenerated, result.Stats.ResourcesDiscovered)
	return result, nil
}

// partition splits resources into those generated directly from index
// data and those queued for a detail fetch. A detail URL that is not an
// http(s) origin cannot be fetched, so its resource passes through with
// the index-only minimal model.
func partition(resources []model.Resource) (passthrough, withDetail []model.Resource) {
	for _, r := range resources {
		if r.DetailURL == "" || !fetch.IsDocsURL(r.DetailURL) {
			passthrough = append(passthrough, r)
			continue
		}
		withDetail = append(withDetail, r)
	}
	return passthrough, withDetail
}

// crawlDetails fetches detail pages in fixed-size concurrent batches with
// a politeness pause between batches. Within a batch, results associate
// by URL, so the handler sees resources in input order regardless of
// network completion order. The handler runs on the control goroutine
// only.
func (c *Crawler) crawlDetails(ctx context.Context, resources []model.Resource, result *model.CrawlResult, handle func(model.Resource)) {
	size := c.config.Concurrency
	if size < 1 {
		size = 1
	}

	for start := 0; start < len(resources); start += size {
		if start > 0 && c.config.BatchDelay > 0 {
			select {
			case <-time.After(c.config.BatchDelay):
			case <-ctx.Done():
				c.log.Warn("crawl cancelled between batches")
				return
			}
		}

		end := start + size
		if end > len(resources) {
			end = len(resources)
		}
		batch := resources[start:end]

		pages := c.fetcher.Pages(ctx, distinctURLs(batch), size)

		for _, r := range batch {
			body, ok := pages[r.DetailURL]
			if !ok {
				result.Stats.Errors++
				c.log.WithURL(r.DetailURL).Warnf("detail fetch failed for %s", r.Name)
				if c.config.KeepMinimalOnError {
					handle(r)
				}
				continue
			}

			detail := c.parser.ParseDetail(body)
			handle(r.WithDetail(detail))
		}
	}
}

// distinctURLs returns each detail URL of a batch once, in input order.
func distinctURLs(batch []model.Resource) []string {
	seen := make(map[string]struct{}, len(batch))
	urls := make([]string, 0, len(batch))
	for _, r := range batch {
		if _, ok := seen[r.DetailURL]; ok {
			continue
		}
		seen[r.DetailURL] = struct{}{}
		urls = append(urls, r.DetailURL)
	}
	return urls
}

// generateResource emits and writes one model file. Any failure stays
// local to the resource: it is counted, logged and skipped.
func (c *Crawler) generateResource(resource model.Resource, result *model.CrawlResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Stats.Errors++
			c.log.Errorf("generation panicked for %s: %v", resource.Name, r)
		}
	}()

	content, err := c.emitter.Emit(resource)
	if err != nil {
		result.Stats.Errors++
		c.log.WithError(err).Warnf("generation failed for %s", resource.Name)
		return
	}

	rel := c.emitter.FileName(resource)
	path := filepath.Join(c.config.OutputDir, rel)
	if err := c.writer.WriteFile(path, []byte(content)); err != nil {
		result.Stats.Errors++
		c.log.WithError(err).Errorf("write failed for %s", path)
		return
	}

	result.GeneratedFiles = append(result.GeneratedFiles, rel)
	result.Stats.FilesGenerated++
	c.log.Debugf("generated %s", rel)
}

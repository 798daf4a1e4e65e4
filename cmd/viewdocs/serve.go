package main

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fwojciec/viewdocs"
	"github.com/fwojciec/viewdocs/fs"
	"github.com/fwojciec/viewdocs/fsnotify"
	"github.com/fwojciec/viewdocs/goldmark"
	"github.com/fwojciec/viewdocs/goquery"
	vdhttp "github.com/fwojciec/viewdocs/http"
	vdslog "github.com/fwojciec/viewdocs/slog"
	"github.com/fwojciec/viewdocs/sqlite"
)

// CacheRetention is how long persisted renders are kept.
const CacheRetention = 30 * 24 * time.Hour

// Run resolves the target, starts the server and blocks until the context
// is cancelled.
func (c *CLI) Run(deps *Dependencies) error {
	ctx, logger := deps.Ctx, deps.Logger

	target, err := fs.Resolve(c.Path)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(c.Config, target.Root)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, key := range cfg.Undecoded {
		logger.Warn("unknown config key", "key", key, "path", cfg.Path)
	}

	if cfg.Default != "" && target.Mode == viewdocs.ModeDirectory {
		target.DefaultFile = path.Clean(filepath.ToSlash(cfg.Default))
		if !fileExists(filepath.Join(target.Root, filepath.FromSlash(target.DefaultFile))) {
			logger.Warn("default document does not exist", "default", target.DefaultFile)
		}
	}

	exclude := c.ExcludeSet(cfg)
	style := firstNonEmpty(c.Style, cfg.Style, goldmark.DefaultStyle)
	projectName := firstNonEmpty(cfg.Title, viewdocs.ProjectName(target.Root))

	md := goldmark.NewRenderer(goldmark.WithStyle(style))
	renderer := vdslog.NewLoggingRenderer(goquery.NewRenderer(md), logger)

	documents := fs.NewDocumentService(target, fs.ScanOptions{
		Shallow: c.Shallow,
		Exclude: exclude,
	}, renderer)
	documents.CacheVersion = md.Version()

	if c.Cache != "" {
		db := sqlite.NewDB(c.Cache)
		if err := db.Open(); err != nil {
			return fmt.Errorf("open render cache %q: %w", c.Cache, err)
		}
		defer db.Close()

		cache := sqlite.NewRenderCache(db)
		if n, err := cache.Prune(ctx, time.Now().Add(-CacheRetention)); err != nil {
			logger.Warn("prune render cache", "err", err)
		} else if n > 0 {
			logger.Debug("pruned render cache", "removed", n)
		}
		documents.Cache = cache
	}

	if err := documents.Refresh(ctx); err != nil {
		return err
	}
	docs, err := documents.FindDocuments(ctx)
	if err != nil {
		return err
	}

	css, err := md.Stylesheet()
	if err != nil {
		return err
	}

	server := vdhttp.NewServer()
	server.Host = c.Host
	server.Port = c.Port
	server.Target = target
	server.ProjectName = projectName
	server.Exclude = exclude
	server.Stylesheet = css
	server.Logger = logger
	server.DocumentService = vdslog.NewLoggingDocumentService(documents, logger)
	if err := server.Open(); err != nil {
		return err
	}

	printBanner(deps.Stdout, bannerInfo{
		Project:   projectName,
		Target:    target,
		Documents: len(docs),
		Exclude:   exclude,
		URL:       server.URL(),
		Requested: c.Port,
		Bound:     server.BoundPort(),
	})

	var wg sync.WaitGroup
	defer wg.Wait()

	if !c.NoWarm {
		wg.Add(1)
		go func() {
			defer wg.Done()
			begin := time.Now()
			if err := documents.Warm(ctx, runtime.NumCPU()); err != nil && ctx.Err() == nil {
				logger.Warn("warm-up failed", "err", err)
				return
			}
			logger.Debug("warm-up complete", "count", len(docs), "duration", time.Since(begin))
		}()
	}

	if !c.NoWatch {
		watcher := fsnotify.NewWatcher(target.Root, documents)
		watcher.Exclude = exclude
		watcher.Shallow = c.Shallow || target.Mode == viewdocs.ModeFile
		watcher.Logger = logger
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("file watching disabled", "err", err)
			}
		}()
	}

	if deps.Ready != nil {
		deps.Ready(server)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	return server.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/manifest"
	"github.com/specialistvlad/modelmanifest/internal/watch"
)

// Run executes the application. Without watch mode it builds the manifest
// once and returns. In watch mode it keeps rebuilding until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "asset_root", a.config.Manifest.AssetRoot, "watch", a.config.Watch)

	if !a.config.Watch {
		if a.config.HealthcheckPort > 0 {
			a.logger.Warn("Health check server not started: only available in watch mode")
		}
		return a.build(ctx)
	}
	return a.watch(ctx)
}

// build runs one manifest build and prints the report line.
func (a *App) build(ctx context.Context) error {
	res, err := manifest.Build(ctx, a.config.Manifest)
	a.record(res, err)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Generated model list with %d entries.\n", res.Count)
	return nil
}

func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	// The first build must succeed, otherwise there is nothing to watch.
	if err := a.build(ctx); err != nil {
		return err
	}

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(ctx, a.config.HealthcheckPort); err != nil {
			return err
		}
		defer a.closeHealthcheckServer(ctx)
	}

	w, err := watch.New(ctx, a.config.Manifest.AssetRoot, a.config.Debounce, a.config.Manifest.OutputPath())
	if err != nil {
		return fmt.Errorf("failed to watch asset root %s: %w", a.config.Manifest.AssetRoot, err)
	}
	defer w.Close()

	logger.Info("👀 Watching asset root for changes...", "asset_root", a.config.Manifest.AssetRoot)
	for {
		select {
		case <-ctx.Done():
			logger.Info("🏁 Watch mode finished.")
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if err := a.build(ctx); err != nil {
				logger.Error("Manifest rebuild failed.", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher reported an error.", "error", err)
		}
	}
}

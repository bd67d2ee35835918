package manifest

import (
	"context"

	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
)

// Result describes a written manifest.
type Result struct {
	Models ModelList
	Count  int
	Path   string
}

// Build scans the asset root and writes the manifest. Nothing is written if
// the asset root cannot be read.
func Build(ctx context.Context, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	models, err := Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	path := opts.OutputPath()
	if err := Write(path, models, opts.Format); err != nil {
		return nil, err
	}
	logger.Info("Manifest written.", "path", path, "count", len(models), "layout", opts.Layout, "format", opts.Format)

	return &Result{
		Models: models,
		Count:  len(models),
		Path:   path,
	}, nil
}

package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/fsutil"
)

// ModelList is the ordered list of model identifiers written to a manifest.
type ModelList []string

// Scan lists the asset root once and returns the qualifying model
// identifiers. Entries that do not qualify are skipped and only reported at
// debug level. The returned list is never nil.
func Scan(ctx context.Context, opts Options) (ModelList, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest options: %w", err)
	}
	logger := ctxlog.FromContext(ctx).With("asset_root", opts.AssetRoot)

	entries, err := fsutil.ReadDirUnordered(opts.AssetRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset root %s: %w", opts.AssetRoot, err)
	}
	logger.Debug("Asset root listed.", "entries", len(entries))

	ext := fsutil.NormalizeExtension(opts.Extension)
	outputPath := absPath(opts.OutputPath())

	models := make(ModelList, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		entryPath := filepath.Join(opts.AssetRoot, name)

		if opts.excluded(name) {
			logger.Debug("Entry excluded by pattern.", "entry", name)
			continue
		}
		if absPath(entryPath) == outputPath {
			continue
		}

		switch opts.Layout {
		case LayoutFlat:
			if fsutil.IsDir(opts.AssetRoot, entry) || !fsutil.HasExtension(name, ext) || !fsutil.IsRegularFile(entryPath) {
				logger.Debug("Entry skipped: not a model file.", "entry", name)
				continue
			}
		default:
			if !fsutil.IsDir(opts.AssetRoot, entry) {
				logger.Debug("Entry skipped: not a directory.", "entry", name)
				continue
			}
			modelFile := filepath.Join(entryPath, name+ext)
			if !fsutil.IsRegularFile(modelFile) {
				logger.Debug("Folder skipped: no matching model file.", "entry", name, "expected", modelFile)
				continue
			}
		}
		models = append(models, name)
	}

	if opts.Sort {
		slices.Sort(models)
	}
	return models, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/manifest"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded configuration file.
type File struct {
	Manifest *ManifestBlock `hcl:"manifest,block"`
	Watch    *WatchBlock    `hcl:"watch,block"`
}

// ManifestBlock holds the `manifest` block. Nil fields were not set.
type ManifestBlock struct {
	AssetRoot *string  `hcl:"asset_root,optional"`
	Extension *string  `hcl:"extension,optional"`
	Output    *string  `hcl:"output,optional"`
	Format    *string  `hcl:"format,optional"`
	Layout    *string  `hcl:"layout,optional"`
	Sort      *bool    `hcl:"sort,optional"`
	Exclude   []string `hcl:"exclude,optional"`
}

// WatchBlock holds the `watch` block.
type WatchBlock struct {
	Enabled         *bool   `hcl:"enabled,optional"`
	Debounce        *string `hcl:"debounce,optional"`
	HealthcheckPort *int    `hcl:"healthcheck_port,optional"`

	// DebounceDuration is Debounce parsed by Load. Zero when unset.
	DebounceDuration time.Duration
}

// Load reads and decodes the configuration file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx).With("config_path", path)
	logger.Debug("Loading config file.")

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	evalCtx, err := newEvalContext(path)
	if err != nil {
		return nil, err
	}

	var file File
	if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	if file.Watch != nil && file.Watch.Debounce != nil {
		d, err := time.ParseDuration(*file.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch debounce in %s: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid watch debounce in %s: must be positive", path)
		}
		file.Watch.DebounceDuration = d
	}

	logger.Debug("Config file loaded.", "has_manifest_block", file.Manifest != nil, "has_watch_block", file.Watch != nil)
	return &file, nil
}

// ApplyTo copies every manifest setting present in the file onto opts.
func (f *File) ApplyTo(opts *manifest.Options) {
	m := f.Manifest
	if m == nil {
		return
	}
	if m.AssetRoot != nil {
		opts.AssetRoot = *m.AssetRoot
	}
	if m.Extension != nil {
		opts.Extension = *m.Extension
	}
	if m.Output != nil {
		opts.Output = *m.Output
	}
	if m.Format != nil {
		opts.Format = manifest.Format(*m.Format)
	}
	if m.Layout != nil {
		opts.Layout = manifest.Layout(*m.Layout)
	}
	if m.Sort != nil {
		opts.Sort = *m.Sort
	}
	if m.Exclude != nil {
		opts.Exclude = append([]string(nil), m.Exclude...)
	}
}

func newEvalContext(path string) (*hcl.EvalContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"cwd":        cty.StringVal(filepath.ToSlash(cwd)),
				"config_dir": cty.StringVal(filepath.ToSlash(filepath.Dir(absPath))),
			}),
		},
	}, nil
}

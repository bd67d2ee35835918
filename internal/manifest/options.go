package manifest

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/modelmanifest/internal/fsutil"
)

const (
	DefaultAssetRoot  = "FBXs"
	DefaultExtension  = "fbx"
	DefaultOutputName = "modelList.json"
)

// Layout selects how model files are arranged under the asset root.
type Layout string

const (
	// LayoutFolder expects <root>/<id>/<id>.<ext>.
	LayoutFolder Layout = "folder"
	// LayoutFlat expects <root>/<name>.<ext>.
	LayoutFlat Layout = "flat"
)

// Format is the serialization used for the manifest file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options controls a single manifest build.
type Options struct {
	// AssetRoot is the directory that is scanned.
	AssetRoot string
	// Extension is the model file extension, with or without a leading dot.
	Extension string
	// Output is the manifest path. Relative paths are resolved against AssetRoot.
	Output string
	Format Format
	Layout Layout
	// Sort orders the model list lexicographically instead of keeping the
	// directory enumeration order.
	Sort bool
	// Exclude holds doublestar patterns matched against entry names.
	Exclude []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		AssetRoot: DefaultAssetRoot,
		Extension: DefaultExtension,
		Output:    DefaultOutputName,
		Format:    FormatJSON,
		Layout:    LayoutFolder,
	}
}

// Validate checks that the options describe a buildable manifest.
func (o Options) Validate() error {
	var errs []error
	if o.AssetRoot == "" {
		errs = append(errs, errors.New("asset root must not be empty"))
	}
	if fsutil.NormalizeExtension(o.Extension) == "" {
		errs = append(errs, fmt.Errorf("invalid model extension %q", o.Extension))
	}
	if o.Output == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	switch o.Format {
	case FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("unsupported format %q: must be 'json' or 'yaml'", o.Format))
	}
	switch o.Layout {
	case LayoutFolder, LayoutFlat:
	default:
		errs = append(errs, fmt.Errorf("unsupported layout %q: must be 'folder' or 'flat'", o.Layout))
	}
	for _, pattern := range o.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}
	return errors.Join(errs...)
}

// OutputPath returns the manifest location on disk.
func (o Options) OutputPath() string {
	if filepath.IsAbs(o.Output) {
		return filepath.Clean(o.Output)
	}
	return filepath.Join(o.AssetRoot, o.Output)
}

// excluded reports whether name matches any exclude pattern.
func (o Options) excluded(name string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

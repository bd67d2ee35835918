package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/modelmanifest/internal/app"
	"github.com/specialistvlad/modelmanifest/internal/config"
	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/manifest"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Settings are layered: built-in defaults, then the config file given by
// -config, then flags that were explicitly set on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("modelmanifest", flag.ContinueOnError)
	flagSet.SetOutput(output)

	defaults := app.DefaultConfig()

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
modelmanifest - Lists model folders of an asset root into a JSON manifest.

Usage:
  modelmanifest [options] [ASSET_ROOT]

Arguments:
  ASSET_ROOT
    Directory containing one folder per model (default "FBXs").
    A folder <id> is listed when it contains <id>.<ext>.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file.")
	rootFlag := flagSet.String("root", defaults.Manifest.AssetRoot, "Asset root directory to scan.")
	extFlag := flagSet.String("ext", defaults.Manifest.Extension, "Model file extension.")
	outputFlag := flagSet.String("output", defaults.Manifest.Output, "Manifest file name, relative to the asset root unless absolute.")
	formatFlag := flagSet.String("format", string(defaults.Manifest.Format), "Manifest format. Options: 'json' or 'yaml'.")
	layoutFlag := flagSet.String("layout", string(defaults.Manifest.Layout), "Asset layout. Options: 'folder' (<id>/<id>.<ext>) or 'flat' (<name>.<ext>).")
	sortFlag := flagSet.Bool("sort", defaults.Manifest.Sort, "Sort the model list instead of keeping directory order.")
	var excludeFlag stringList
	flagSet.Var(&excludeFlag, "exclude", "Glob pattern of entry names to skip. Repeatable.")
	watchFlag := flagSet.Bool("watch", defaults.Watch, "Rebuild the manifest whenever the asset root changes.")
	debounceFlag := flagSet.Duration("debounce", 0, "Quiet period before a rebuild in watch mode. 0 uses the default.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one asset root, got %d", flagSet.NArg())}
	}

	cfg := defaults
	if *configFlag != "" {
		file, err := config.Load(ctxlog.WithLogger(context.Background(), slog.Default()), *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		applyFile(&cfg, file)
		cfg.ConfigPath = *configFlag
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.Manifest.AssetRoot = *rootFlag
		case "ext":
			cfg.Manifest.Extension = *extFlag
		case "output":
			cfg.Manifest.Output = *outputFlag
		case "format":
			cfg.Manifest.Format = manifest.Format(strings.ToLower(*formatFlag))
		case "layout":
			cfg.Manifest.Layout = manifest.Layout(strings.ToLower(*layoutFlag))
		case "sort":
			cfg.Manifest.Sort = *sortFlag
		case "exclude":
			cfg.Manifest.Exclude = append([]string(nil), excludeFlag...)
		case "watch":
			cfg.Watch = *watchFlag
		case "debounce":
			cfg.Debounce = *debounceFlag
		case "healthcheck-port":
			cfg.HealthcheckPort = *healthPortFlag
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		}
	})
	if flagSet.NArg() == 1 {
		cfg.Manifest.AssetRoot = flagSet.Arg(0)
	}
	slog.Debug("Asset root determined.", "path", cfg.Manifest.AssetRoot)

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

// applyFile overlays the settings present in the config file onto cfg.
func applyFile(cfg *app.Config, file *config.File) {
	file.ApplyTo(&cfg.Manifest)

	w := file.Watch
	if w == nil {
		return
	}
	if w.Enabled != nil {
		cfg.Watch = *w.Enabled
	}
	if w.DebounceDuration > 0 {
		cfg.Debounce = w.DebounceDuration
	}
	if w.HealthcheckPort != nil {
		cfg.HealthcheckPort = *w.HealthcheckPort
	}
}

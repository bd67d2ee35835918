package app

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/modelmanifest/internal/manifest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	httpServer *http.Server

	mu   sync.Mutex
	last *BuildStatus
}

// BuildStatus summarises the most recent manifest build.
type BuildStatus struct {
	Models  []string  `json:"models"`
	Count   int       `json:"count"`
	Path    string    `json:"path"`
	BuiltAt time.Time `json:"built_at"`
	Error   string    `json:"error,omitempty"`
}

// NewApp is the constructor for the main application. Reports go to outW
// and log records to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// LastBuild returns a copy of the most recent build status, or nil if no
// build has run yet.
func (a *App) LastBuild() *BuildStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return nil
	}
	status := *a.last
	status.Models = append([]string(nil), a.last.Models...)
	return &status
}

func (a *App) record(res *manifest.Result, err error) {
	status := &BuildStatus{
		Path:    a.config.Manifest.OutputPath(),
		Models:  []string{},
		BuiltAt: time.Now(),
	}
	if err != nil {
		status.Error = err.Error()
	} else {
		status.Models = append(status.Models, res.Models...)
		status.Count = res.Count
		status.Path = res.Path
	}

	a.mu.Lock()
	a.last = status
	a.mu.Unlock()
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/overhangs/internal/config"
	"github.com/specialistvlad/overhangs/internal/ctxlog"
	"github.com/specialistvlad/overhangs/internal/digest"
	"github.com/specialistvlad/overhangs/internal/msa"
)

// ErrNotFound is returned when a requested assembly or plasmid is not
// declared in the configuration.
var ErrNotFound = errors.New("not found")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	model    *config.Model
	enzymes  *digest.Registry
	assigner *digest.Assigner
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. Load must be called before any Run method.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		loader:   loader,
		assigner: digest.NewAssigner(digest.Restriction{}),
	}
}

// withLogger attaches the app logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads every configuration path into the model and registers the
// user-declared enzymes on top of the built-in table.
func (a *App) Load(ctx context.Context) error {
	ctx = a.withLogger(ctx)

	model, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.")

	extra := make([]digest.Enzyme, 0, len(model.Enzymes))
	for _, name := range model.EnzymeNames() {
		e := model.Enzymes[name]
		extra = append(extra, digest.Enzyme{
			Name:        e.Name,
			Site:        e.Site,
			Skip:        e.Skip,
			OverhangLen: e.OverhangLength,
		})
	}
	enzymes, err := digest.NewRegistry(extra...)
	if err != nil {
		return fmt.Errorf("failed to register enzymes: %w", err)
	}

	a.model = model
	a.enzymes = enzymes
	a.logger.Info("Configuration loaded.",
		"assemblies", len(model.Assemblies),
		"syntaxes", len(model.Syntaxes),
		"plasmids", len(model.Plasmids),
		"custom_enzymes", len(extra),
	)
	return nil
}

// maxPathsOption resolves the path cap: the command line wins over the
// `settings` block, which wins over the library default.
func (a *App) maxPathsOption() msa.Option {
	switch {
	case a.config.MaxPaths != 0:
		return msa.WithMaxPaths(a.config.MaxPaths)
	case a.model != nil && a.model.Settings.MaxPaths != nil:
		return msa.WithMaxPaths(*a.model.Settings.MaxPaths)
	default:
		return msa.WithMaxPaths(msa.DefaultMaxPaths)
	}
}

// selectNames returns requested, or every name in all when requested is
// empty. Unknown names are an error wrapping ErrNotFound.
func selectNames(kind string, requested, all []string) ([]string, error) {
	if len(requested) == 0 {
		return all, nil
	}
	known := make(map[string]struct{}, len(all))
	for _, n := range all {
		known[n] = struct{}{}
	}
	for _, n := range requested {
		if _, ok := known[n]; !ok {
			return nil, fmt.Errorf("%s '%s': %w", kind, n, ErrNotFound)
		}
	}
	return requested, nil
}

package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/overhangs/internal/app"
	"github.com/specialistvlad/overhangs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that stand in for flags,
// e.g. OVHG_LOG_LEVEL for --log-level.
const EnvPrefix = "OVHG"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks a bad invocation: exit code 2.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Execute parses args, loads the configuration with loader and runs the
// selected command. Results go to outW, logs and help to errW. Invalid
// invocations are reported as an *ExitError with code 2.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader config.Loader) error {
	slog.Debug("CLI parser started.")
	c := &command{outW: outW, errW: errW, loader: loader, v: newViper()}
	root := c.root()
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if !c.invoked {
		// cobra failed before any command ran: unknown command, bad args.
		return usageError(err)
	}
	return err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

type command struct {
	outW    io.Writer
	errW    io.Writer
	loader  config.Loader
	v       *viper.Viper
	invoked bool
}

func (c *command) root() *cobra.Command {
	root := &cobra.Command{
		Use:   "ovhg",
		Short: "Align Golden Gate assembly paths and assign plasmid fragments to syntax parts",
		Long: `ovhg reads .hcl files declaring assemblies, syntaxes, enzymes and plasmids.

  align    lays the paths of each assembly out as a gap-aligned matrix
  assign   digests each plasmid and names the syntax parts its fragments can fill
  enzymes  lists the known Type IIS enzymes

Every flag can also be set through the environment, e.g. OVHG_LOG_LEVEL=debug.`,
		Version:           "0.1.0",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringSliceP("config", "c", []string{"."}, "Path to a .hcl file or a directory containing .hcl files. Repeatable.")
	flags.StringP("output", "o", app.OutputText, "Result format. Options: 'text' or 'json'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("max-paths", 0, "Maximum assembly paths to enumerate. 0 uses the settings block, negative removes the cap.")
	flags.Int("workers", 4, "Number of plasmids assigned concurrently.")
	c.bind(flags)

	root.AddCommand(
		&cobra.Command{
			Use:                        "align [assembly]...",
			Short:                      "Align the paths of the named assemblies, or of all of them",
			SuggestionsMinimumDistance: 3,
			RunE: c.run(func(ctx context.Context, a *app.App, args []string) error {
				return a.RunAlign(ctx, args)
			}),
		},
		&cobra.Command{
			Use:                        "assign [plasmid]...",
			Short:                      "Assign the fragments of the named plasmids, or of all of them, to syntax parts",
			SuggestionsMinimumDistance: 3,
			RunE: c.run(func(ctx context.Context, a *app.App, args []string) error {
				return a.RunAssign(ctx, args)
			}),
		},
		&cobra.Command{
			Use:   "enzymes",
			Short: "List the built-in and configured enzymes",
			Args:  cobra.NoArgs,
			RunE: c.run(func(ctx context.Context, a *app.App, _ []string) error {
				return a.RunEnzymes(ctx)
			}),
		},
	)
	return root
}

func (c *command) bind(flags *pflag.FlagSet) {
	// BindPFlags only fails on a nil flag.
	_ = c.v.BindPFlags(flags)
}

// preRun validates the global flags before any subcommand runs.
func (c *command) preRun(_ *cobra.Command, _ []string) error {
	logFormat := strings.ToLower(c.v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return usageError(errors.New("invalid log-format: must be 'text' or 'json'"))
	}

	logLevel := strings.ToLower(c.v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return usageError(errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'"))
	}
	slog.Debug("CLI parameter validation complete.")
	return nil
}

// appConfig builds the app configuration from flags and environment.
func (c *command) appConfig() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: c.v.GetStringSlice("config"),
		Output:      strings.ToLower(c.v.GetString("output")),
		LogFormat:   strings.ToLower(c.v.GetString("log-format")),
		LogLevel:    strings.ToLower(c.v.GetString("log-level")),
		MaxPaths:    c.v.GetInt("max-paths"),
		Workers:     c.v.GetInt("workers"),
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

type runFunc func(ctx context.Context, a *app.App, args []string) error

// run wraps fn with config validation and loading.
func (c *command) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.invoked = true
		cfg, err := c.appConfig()
		if err != nil {
			return err
		}
		slog.Debug("CLI parser finished successfully.", "config", cfg)

		a := app.NewApp(c.outW, c.errW, cfg, c.loader)
		if err := a.Load(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd.Context(), a, args)
	}
}

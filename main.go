package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"studyguide/internal/config"
	"studyguide/internal/export"
	"studyguide/internal/state"
	"studyguide/internal/ui"
)

var version = "dev"

// initializeAppContext loads configuration and wires the environment after
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("section") {
		env.Cfg.UI.InitialSection = cmd.String("section")
	}
	if err = env.Prepare(); err != nil {
		return ctx, err
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	return env.Close()
}

var errWasHandled bool

// called before the environment is closed so errors from commands still
// reach the log. When the log does not reach the terminal (not prepared yet or
// console level "none") the error goes to stderr as well.
func exitErrHandler(ctx context.Context, cmd *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
	}
	if !env.ConsoleLogging() {
		fmt.Fprintf(cmd.Root().ErrWriter, "Program ended with error: %v\n", err)
	}
	errWasHandled = true
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            config.AppName,
		Usage:           "interactive study guide for ADV 382J",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Action:          runGuide,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "section", Aliases: []string{"s"}, Usage: "open guide on section `ID`"},
		},
		Commands: []*cli.Command{
			{
				Name:         "export",
				Usage:        "Writes reviewed and favorited terms to a JSON file",
				OnUsageError: usageErrorHandler,
				Action:       exportProgress,
				ArgsUsage:    "[DIRECTORY]",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

func runGuide(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() > 0 {
		env.Log.Warn("Unexpected arguments, ignoring", zap.Strings("args", cmd.Args().Slice()))
	}

	model := ui.InitialModel(ui.Deps{
		Guide:          env.Guide,
		Progress:       env.Progress,
		Exporter:       env.Exporter,
		Printer:        env.Printer,
		Clipboard:      ui.SystemClipboard{},
		Log:            env.Log.Named("ui"),
		InitialSection: env.Cfg.UI.InitialSection,
		Sidebar:        env.Cfg.UI.Sidebar,
		WrapWidth:      env.Cfg.UI.WrapWidth,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run study guide: %w", err)
	}
	return nil
}

func exportProgress(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	exporter := env.Exporter
	if dir := cmd.Args().Get(0); len(dir) > 0 {
		exporter = export.NewService(env.Progress, export.DirSaver{Dir: dir}, export.SystemClock)
	}
	path, err := exporter.Export()
	if err != nil {
		return err
	}
	env.Log.Info("Progress exported", zap.String("file", path))
	fmt.Fprintln(cmd.Root().Writer, path)
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
		kind string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

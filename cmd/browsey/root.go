package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/browsey/browsey/pkg/config"
	"github.com/browsey/browsey/pkg/engine"
	"github.com/browsey/browsey/pkg/events"
	"github.com/browsey/browsey/pkg/logging"
	"github.com/browsey/browsey/pkg/process"
	"github.com/browsey/browsey/pkg/rclone"
	"github.com/browsey/browsey/pkg/runtime"
	"github.com/browsey/browsey/pkg/staging"
	"github.com/browsey/browsey/pkg/trash"
	"github.com/browsey/browsey/pkg/transfer"
)

// rootConfiguration holds flags shared by every subcommand, mirroring the
// way mutagen's root command bundles --version/--legal alongside ordinary
// flags rather than giving every subcommand its own copy.
var rootConfiguration struct {
	json     bool
	logLevel string
}

var rootCommand = &cobra.Command{
	Use:   "browsey",
	Short: "Browsey drives filesystem mutations for the Browsey file manager.",
	Run: func(command *cobra.Command, arguments []string) {
		command.Help()
	},
}

// stdoutIsTerminal decides the --json flag's default: a human at an
// interactive terminal gets readable color output, while anything piped
// (scripts, the future GUI shell spawning this binary) gets JSON lines
// unless told otherwise.
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.BoolVar(&rootConfiguration.json, "json", !stdoutIsTerminal(), "Emit machine-readable JSON instead of colored human output")
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "warn", "Log level (disabled, error, warn, info, debug)")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""

	rootCommand.AddCommand(
		pasteCommand,
		renameCommand,
		renameManyCommand,
		setHiddenCommand,
		trashCommand,
		dropModeCommand,
		undoCommand,
		redoCommand,
		cancelCommand,
		cloudCommand,
		searchCommand,
		settingsCommand,
	)
}

// environment bundles every long-lived collaborator a subcommand needs. It's
// built once in main and threaded through via a package-level pointer
// (app) rather than cobra.Command.Context(), since every subcommand in this
// binary runs to completion in a single invocation — there's no nested
// command tree needing per-branch contexts.
type environment struct {
	engine    *engine.Engine
	lifecycle *runtime.Lifecycle
	cancels   *runtime.CancelRegistry
	sink      *events.JSONLinesSink
	logger    *logging.Logger
}

var app *environment

// buildEnvironment constructs the full dependency graph: settings reader,
// staging area, transfer/trash engines, rclone broker (resolved from the
// configured or PATH-discovered binary), and the Engine that wires them
// into the command surface. This is the only place in the module that
// constructs an rclone.Broker — pkg/engine itself never does, so it stays
// agnostic of how the binary was located.
func buildEnvironment() (*environment, error) {
	level, ok := logging.NameToLevel(rootConfiguration.logLevel)
	if !ok {
		level = logging.LevelWarn
	}
	logger := logging.NewRoot(level, rootConfiguration.json)

	settingsPath, err := config.DefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	reader, err := config.LoadTOMLReader(settingsPath, logger)
	if err != nil {
		return nil, err
	}

	tunablesPath, err := config.DefaultTunablesPath()
	if err != nil {
		return nil, err
	}
	tunables, err := config.LoadTunables(tunablesPath)
	if err != nil {
		return nil, err
	}

	area, err := staging.New(logger)
	if err != nil {
		return nil, err
	}
	if err := area.Cleanup(); err != nil {
		return nil, err
	}

	lifecycle := runtime.NewLifecycle(logger)
	sink := events.NewJSONLinesSink(os.Stdout)
	emitter := events.NewEmitter(sink, lifecycle)

	resolver := process.NewResolver()
	rclonePath, ok := resolver.ResolveExplicit(reader.RclonePath())
	if !ok {
		rclonePath, _ = resolver.Resolve("rclone")
	}
	broker := rclone.New(rclonePath, logger)

	transferEngine := transfer.New(area, logger)
	trashCoordinator := trash.New(area, logger, emitter)
	cancels := runtime.NewCancelRegistry()

	e := engine.New(engine.Dependencies{
		Transfer:  transferEngine,
		Trash:     trashCoordinator,
		Broker:    broker,
		Config:    reader,
		Tunables:  tunables,
		Cancels:   cancels,
		Lifecycle: lifecycle,
		Emitter:   emitter,
		Logger:    logger,
	})

	return &environment{
		engine:    e,
		lifecycle: lifecycle,
		cancels:   cancels,
		sink:      sink,
		logger:    logger,
	}, nil
}

func main() {
	env, err := buildEnvironment()
	if err != nil {
		fatal(err)
	}
	app = env

	shutdown := runtime.NewShutdownSignal()
	go func() {
		<-shutdown.Done()
		app.lifecycle.BeginShutdown()
		app.cancels.CancelAll()
	}()
	defer shutdown.Stop()

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/piwi3910/PlateCut/internal/project"
	"github.com/piwi3910/PlateCut/internal/telemetry"
)

// Version is set at build time with -ldflags "-X .../commands.Version=...".
var Version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	appConfig  model.AppConfig
	logger     *slog.Logger
	shutdown   func(context.Context) error
}

func newApp() *app {
	return &app{
		v:         viper.New(),
		appConfig: model.DefaultAppConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func Execute() {
	a := newApp()
	err := a.rootCmd().ExecuteContext(context.Background())
	a.close(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "platecut",
		Short: "Plate cutting and weight partition optimizer",
		Long: `PlateCut - arranges rectangular pieces on fixed-size plates at the lowest
material and energy cost, and splits weighted items into two balanced groups.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ~/.platecut/config.json)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("log-json", false, "Log as JSON instead of text")
	pf.Bool("trace-stdout", false, "Print solver spans to stderr")
	pf.String("otel-endpoint", "", "OTLP/HTTP endpoint for solver spans")

	pf.Int("plate-height", 0, "Usable plate height")
	pf.Int("plate-width", 0, "Usable plate width")
	pf.Float64("plate-cost", 0, "Material cost per plate")
	pf.Float64("energy-factor", 0, "Energy units to currency")
	pf.Duration("time-limit", 0, "Search time limit, 0 for none")
	pf.Bool("no-seed", false, "Start branch-and-bound from the input order instead of best-fit")
	pf.Int64("genetic-seed", 0, "Random seed for the genetic search")
	pf.String("gcode-profile", "", "G-code profile name")

	_ = a.v.BindPFlags(pf)
	a.v.SetEnvPrefix("PLATECUT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	root.AddCommand(
		a.solveCmd(),
		a.partitionCmd(),
		a.compareCmd(),
		a.benchCmd(),
		a.estimateCmd(),
		a.exportCmd(),
		a.configCmd(),
		a.profilesCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.initConfig(); err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if a.v.GetBool("verbose") {
		opts.Level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if a.v.GetBool("log-json") {
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	a.logger = slog.New(h)
	slog.SetDefault(a.logger)

	topts := telemetry.Options{
		ServiceName:    "platecut",
		ServiceVersion: Version,
		Endpoint:       a.v.GetString("otel-endpoint"),
	}
	if a.v.GetBool("trace-stdout") {
		topts.Stdout = cmd.ErrOrStderr()
	}
	shutdown, err := telemetry.Init(cmd.Context(), topts)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	a.shutdown = shutdown
	return nil
}

// initConfig reads the JSON config file through viper. A missing file leaves
// the built-in defaults in place.
func (a *app) initConfig() error {
	a.configPath = a.v.GetString("config")
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	a.appConfig = model.DefaultAppConfig()

	if _, err := os.Stat(a.configPath); err != nil {
		return nil
	}
	a.v.SetConfigFile(a.configPath)
	a.v.SetConfigType("json")
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := a.v.Unmarshal(&a.appConfig); err != nil {
		return fmt.Errorf("decoding config %s: %w", a.configPath, err)
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.shutdown == nil {
		return
	}
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("flushing traces failed", "error", err)
	}
	a.shutdown = nil
}

// settings layers the config file defaults and then flags or PLATECUT_*
// variables over DefaultSettings.
func (a *app) settings() (model.Settings, error) {
	s := model.DefaultSettings()
	a.appConfig.ApplyToSettings(&s)

	if a.v.IsSet("plate-height") {
		s.PlateHeight = a.v.GetInt("plate-height")
	}
	if a.v.IsSet("plate-width") {
		s.PlateWidth = a.v.GetInt("plate-width")
	}
	if a.v.IsSet("plate-cost") {
		s.PlateCost = a.v.GetFloat64("plate-cost")
	}
	if a.v.IsSet("energy-factor") {
		s.EnergyFactor = a.v.GetFloat64("energy-factor")
	}
	if a.v.IsSet("time-limit") {
		s.TimeLimit = a.v.GetDuration("time-limit")
	}
	if a.v.GetBool("no-seed") {
		s.SeedWithHeuristic = false
	}
	if a.v.IsSet("genetic-seed") {
		s.GeneticSeed = a.v.GetInt64("genetic-seed")
	}
	if a.v.IsSet("gcode-profile") {
		s.Machine.GCodeProfile = a.v.GetString("gcode-profile")
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// withAlgorithm overrides the configured algorithm when name is set.
func withAlgorithm(s model.Settings, name string) (model.Settings, error) {
	if name == "" {
		return s, nil
	}
	alg, err := model.ParseAlgorithm(name)
	if err != nil {
		return s, err
	}
	s.Algorithm = alg
	return s, nil
}

func (a *app) solverOptions() []engine.Option {
	return []engine.Option{engine.WithLogger(a.logger)}
}

func renderHelp(cmd *cobra.Command) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, titleStyle.Render("PLATECUT "+Version))
	fmt.Fprintln(w, cmd.Short)
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("USAGE"))
	fmt.Fprintf(w, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(w, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" && f.DefValue != "[]" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(w, flagStyle.Render(line))
	})
	fmt.Fprintln(w)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99"))
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
)

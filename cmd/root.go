package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dtkav/binview/internal/config"
	"github.com/dtkav/binview/internal/logger"
	"github.com/dtkav/binview/internal/ui"
)

var (
	configPath  string
	printOnce   bool
	left, right float64
	flagCfg     = config.Default()
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	configPath, printOnce, flagCfg = "", false, config.Default()
	left, right = 0, 0

	cmd := &cobra.Command{
		Use:   "binview",
		Short: "Live histogram of numbers read from stdin",
		Long: `binview reads one number per line from stdin (extra tab-separated
columns are ignored) and draws a histogram of them in the terminal.

Hover bars with the mouse or the arrow keys and click or press Enter to
mark them.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.Float64Var(&left, "left", 0, "Left edge of the range; set with --right, or leave both unset to derive the range from data")
	f.Float64Var(&right, "right", 0, "Right edge of the range, exclusive")
	f.Float64Var(&flagCfg.BinWidth, "bin-width", flagCfg.BinWidth, "Bin width (0: split the range into --bins bins)")
	f.IntVar(&flagCfg.Bins, "bins", flagCfg.Bins, "Number of bins when no bin width is set")
	f.BoolVar(&flagCfg.Strict, "strict", flagCfg.Strict, "Fail on samples outside the range instead of dropping them")
	f.IntVar(&flagCfg.MaxBins, "max-bins", flagCfg.MaxBins, "Largest number of bins allowed")
	f.IntVar(&flagCfg.BarHeight, "bar-height", flagCfg.BarHeight, "Height of the tallest bar in rows")
	f.StringVar(&flagCfg.LogPath, "log-file", logger.DefaultLogPath, "Log file")
	f.BoolVar(&flagCfg.Debug, "debug", flagCfg.Debug, "Enable debug logging")
	f.BoolVar(&printOnce, "print", false, "Read all of stdin, print the histogram once and exit")
	return cmd
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// resolveConfig loads the config file, if any, and applies the flags the
// user set explicitly on top of it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	cfg, err := loadConfig(f.Changed)
	if err != nil {
		return cfg, err
	}
	if f.Changed("left") {
		v := left
		cfg.Left = &v
	}
	if f.Changed("right") {
		v := right
		cfg.Right = &v
	}
	return cfg, cfg.Validate()
}

// loadConfig returns the flag settings, or the config file with the flags
// the user set applied over it.
func loadConfig(changed func(name string) bool) (config.Config, error) {
	if configPath == "" {
		return flagCfg, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if changed("bin-width") {
		cfg.BinWidth = flagCfg.BinWidth
	}
	if changed("bins") {
		cfg.Bins = flagCfg.Bins
	}
	if changed("strict") {
		cfg.Strict = flagCfg.Strict
	}
	if changed("max-bins") {
		cfg.MaxBins = flagCfg.MaxBins
	}
	if changed("bar-height") {
		cfg.BarHeight = flagCfg.BarHeight
	}
	if changed("log-file") || cfg.LogPath == "" {
		cfg.LogPath = flagCfg.LogPath
	}
	if changed("debug") {
		cfg.Debug = flagCfg.Debug
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)
	logger.Info("starting: range %s width %g bins %d strict %t",
		cfg.RangeString(), cfg.BinWidth, cfg.Bins, cfg.Strict)

	if printOnce {
		return printHistogram(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	p := tea.NewProgram(ui.New(cfg, cmd.InOrStdin()), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// printHistogram reads every sample from in and writes a single chart to out.
func printHistogram(cfg config.Config, in io.Reader, out io.Writer) error {
	samples, skipped, err := ui.ReadSamples(in)
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}
	if skipped > 0 {
		logger.Warn("skipped %d non-numeric lines", skipped)
	}
	chart, err := ui.Render(cfg, samples)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, chart)
	return err
}

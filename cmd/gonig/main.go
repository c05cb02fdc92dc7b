// Command gonig searches files with gonigmo patterns.
//
//	gonig search '(?<year>\d{4})-\d\d' access.log.zst
//	gonig match -i 'hello' 'Hello, world'
//	gonig graph 'a(b|c)*d' -o prog.svg
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/gonigmo"
)

// errNoMatch makes the command exit with status 1 without printing
// anything, the way grep does.
var errNoMatch = errors.New("no match")

type app struct {
	v       *viper.Viper
	cfgFile string
	log     zerolog.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		log:    zerolog.Nop(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gonig",
		Short: "Search text with Onigmo-style regular expressions",
		Long: `gonig compiles a pattern with Ruby syntax (line anchors, named groups,
POSIX brackets) and searches stdin or files with it. Files ending in .zst or
.gz are decompressed on the fly.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/gonig/config.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	defaults := gonigmo.DefaultConfig()
	a.v.SetDefault("engine.max_backtrack_bits", defaults.MaxBacktrackBits)
	a.v.SetDefault("engine.match_step_limit", defaults.MatchStepLimit)
	a.v.SetDefault("engine.prefilter", defaults.EnablePrefilter)
	a.v.SetDefault("output.color", false)

	root.AddCommand(a.searchCmd())
	root.AddCommand(a.matchCmd())
	root.AddCommand(a.graphCmd())
	root.AddCommand(a.versionCmd())
	return root
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := newApp(os.Stdin, os.Stdout, os.Stderr).rootCmd().ExecuteContext(ctx)
	cancel()

	if errors.Is(err, errNoMatch) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gonig:", err)
		os.Exit(2)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(fmt.Sprintf("%s/.config/gonig", home))
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("GONIG")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := a.setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func (a *app) setupLogging() error {
	level, err := zerolog.ParseLevel(a.v.GetString("logging.level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", a.v.GetString("logging.level"))
	}

	var w io.Writer
	switch format := a.v.GetString("logging.format"); format {
	case "console":
		w = zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.RFC3339}
	case "json":
		w = a.stderr
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	a.log = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return nil
}

// engineConfig builds the engine configuration from the engine.* keys.
func (a *app) engineConfig() (gonigmo.Config, error) {
	config := gonigmo.DefaultConfig()
	config.MaxBacktrackBits = a.v.GetInt("engine.max_backtrack_bits")
	config.MatchStepLimit = a.v.GetInt("engine.match_step_limit")
	config.EnablePrefilter = a.v.GetBool("engine.prefilter")
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

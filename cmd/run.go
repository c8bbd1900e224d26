package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/ticker/internal/config"
	"github.com/fakeyudi/ticker/internal/host"
	"github.com/fakeyudi/ticker/internal/tui"
	"github.com/fakeyudi/ticker/internal/widget"
)

var (
	runTarget     string
	runIn         time.Duration
	runSegments   string
	runDirection  string
	runInterval   time.Duration
	runFor        time.Duration
	runConfigFile string
	runWatch      bool
	plainOutput   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show a countdown, or a stopwatch when no target is set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := GetConfig()
		if runConfigFile != "" {
			fileCfg, err := config.LoadFile(runConfigFile)
			if err != nil {
				return err
			}
			base = base.Override(*fileCfg)
		}
		flags := flagConfig(time.Now())
		c := base.Override(flags)

		r := &runner{flags: flags}
		if runWatch {
			// A reload replaces the watched layer, so the base excludes it.
			r.watchPath = runConfigFile
			r.reloadBase = GetConfig()
			if r.watchPath == "" {
				r.watchPath = config.ProjectPath()
				r.reloadBase = GetGlobalConfig()
			}
			if r.watchPath == "" {
				return errors.New("--watch needs --config or a project config file in the current directory")
			}
		}

		plain := plainOutput || !term.IsTerminal(os.Stdout.Fd())
		// Bubble Tea owns the terminal, so the TUI only logs to a file.
		var fallback io.Writer = cmd.ErrOrStderr()
		if !plain {
			fallback = io.Discard
		}
		logger, closeLog, err := newLogger(c.LogLevel, fallback)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if runFor > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runFor)
			defer cancel()
		}

		r.logger = logger

		if plain {
			return r.plain(ctx, cmd.OutOrStdout(), c)
		}
		return r.tui(ctx, c)
	},
}

// flagConfig collects the config values given on the command line. --in is
// resolved against now.
func flagConfig(now time.Time) config.Config {
	var c config.Config
	c.Target = runTarget
	if runIn != 0 {
		c.Target = now.Add(runIn).Format(time.RFC3339Nano)
	}
	if runSegments != "" {
		c.Segments = strings.FieldsFunc(runSegments, func(r rune) bool {
			return r == ',' || r == ' '
		})
	}
	c.Direction = runDirection
	c.IntervalMillis = int(runInterval / time.Millisecond)
	return c
}

// runner drives one widget until its context ends.
type runner struct {
	flags  config.Config
	logger *slog.Logger

	watchPath  string
	reloadBase config.Config // every layer below the watched file
}

// reload computes the attributes after the watched file changed. The file
// replaces its own layer, so a value removed from it falls back to the layers
// below. Flags keep precedence over the file.
func (r *runner) reload(fileCfg *config.Config) map[string]string {
	return r.reloadBase.Override(*fileCfg).Override(r.flags).Attributes()
}

// watch starts the config watcher, if any, and hands every successful reload
// to deliver.
func (r *runner) watch(ctx context.Context, deliver func(attrs map[string]string)) {
	if r.watchPath == "" {
		return
	}
	r.logger.Info("watching config", "path", r.watchPath)
	go func() {
		err := config.Watch(ctx, r.watchPath, func(c *config.Config, err error) {
			if err != nil {
				r.logger.Warn("config reload failed", "path", r.watchPath, "error", err)
				return
			}
			r.logger.Info("config reloaded", "path", r.watchPath)
			deliver(r.reload(c))
		})
		if err != nil {
			r.logger.Error("config watcher stopped", "path", r.watchPath, "error", err)
		}
	}()
}

// plain prints one line per tick on a host.Loop until ctx is done.
func (r *runner) plain(ctx context.Context, w io.Writer, c config.Config) error {
	loop := host.NewLoop()
	if c.FrameMillis > 0 {
		loop.FrameInterval = time.Duration(c.FrameMillis) * time.Millisecond
	}
	out := tui.NewPlainTarget(w)
	ctrl := widget.NewController(loop, out, widget.NewAttributes(c.Attributes()), widget.Options{
		Interval: time.Duration(c.IntervalMillis) * time.Millisecond,
		Logger:   r.logger,
	})

	loop.Post(ctrl.Mounted)
	r.watch(ctx, func(attrs map[string]string) {
		loop.Post(func() {
			for _, name := range widget.ObservedAttributes {
				ctrl.SetAttribute(name, attrs[name])
			}
		})
	})

	if err := loop.Run(ctx); err != nil {
		return err
	}
	// The loop has returned, so nothing else touches the controller.
	ctrl.Unmounted()
	return out.Err()
}

// tui runs the full-screen Bubble Tea widget until quit or ctx is done.
func (r *runner) tui(ctx context.Context, c config.Config) error {
	m := tui.New(widget.NewAttributes(c.Attributes()), tui.Options{
		Interval:      time.Duration(c.IntervalMillis) * time.Millisecond,
		FrameInterval: time.Duration(c.FrameMillis) * time.Millisecond,
		Logger:        r.logger,
	})
	p := tui.NewProgram(m, tea.WithContext(ctx))

	r.watch(ctx, func(attrs map[string]string) {
		for _, name := range widget.ObservedAttributes {
			p.Send(tui.AttributeMsg{Name: name, Value: attrs[name]})
		}
	})

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runTarget, "target", "", "target date-time, e.g. 2026-12-31T23:59:59Z")
	runCmd.Flags().DurationVar(&runIn, "in", 0, "count down to now plus this duration")
	runCmd.Flags().StringVar(&runSegments, "segments", "", "comma-separated segments to show (days,hours,minutes,seconds)")
	runCmd.Flags().StringVar(&runDirection, "direction", "", `countdown direction: "down" or "up"`)
	runCmd.Flags().DurationVar(&runInterval, "interval", 0, "tick interval (default from config, 1s)")
	runCmd.Flags().DurationVar(&runFor, "for", 0, "exit after this long")
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "extra config file (JSON or YAML)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "apply config file changes while running")
	runCmd.Flags().BoolVar(&plainOutput, "plain", false, "print one line per tick instead of the TUI")
	runCmd.MarkFlagsMutuallyExclusive("target", "in")
	rootCmd.AddCommand(runCmd)
}

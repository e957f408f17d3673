package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/flipclock/internal/anim"
	"github.com/five82/flipclock/internal/clock"
	"github.com/five82/flipclock/internal/config"
	"github.com/five82/flipclock/internal/countdown"
	"github.com/five82/flipclock/internal/httpapi"
	"github.com/five82/flipclock/internal/logger"
	"github.com/five82/flipclock/internal/metrics"
	"github.com/five82/flipclock/internal/notify"
	"github.com/five82/flipclock/internal/prefs"
	"github.com/five82/flipclock/internal/state"
	"github.com/five82/flipclock/internal/ui"
)

// Options configure the flipclock application. Non-empty string fields
// override the matching config file values.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/flipclock/prefs.toml

	Target   string
	Schedule string
	Caption  string
	Labels   string
	Policy   string
	HTTPAddr string
	Headless bool

	// Stdout receives headless summaries; nil uses os.Stdout.
	Stdout io.Writer
	// Clock overrides the wall clock, mainly for tests.
	Clock clock.Clock
	// Send overrides notification delivery, mainly for tests.
	Send notify.SendFunc
}

// Run boots flipclock and blocks until the countdown expires (headless),
// the user quits (TUI) or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := opts.override(&cfg); err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile, opts.Headless); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Close() }()
	logger.SetLevel(cfg.LogLevel)

	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	countdownOpts, err := countdown.ParseInput(cfg.Input(), clk.Now())
	if err != nil {
		logger.Errorf("Rejected countdown input: %v", err)
		return err
	}

	store := &state.Store{}
	m := metrics.New(prometheus.NewRegistry())

	notifier := notify.New(cfg.Notify)
	notifier.Observe = m.ObserveNotification
	if opts.Send != nil {
		notifier.WithSender(opts.Send)
	}

	// Background work that must finish before Run returns. Waits after
	// cancel below has run.
	var wg sync.WaitGroup
	defer wg.Wait()

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.HTTPAddr != "" {
		srv := httpapi.New(store, m.Handler())
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(serveCtx, cfg.HTTPAddr); err != nil {
				logger.Errorf("HTTP API stopped: %v", err)
			}
		}()
	}

	started := func(s countdown.Snapshot) {
		store.Update(state.FromCountdown(s))
		m.ObserveStart(s)
	}

	hooks := countdown.Hooks{
		OnTick: func(s countdown.Snapshot) {
			store.Update(state.FromCountdown(s))
			m.ObserveTick(s)
		},
		OnFlip: func(slot countdown.Slot, ch byte) {
			logger.Debugf("Flip %s to %c", slot, ch)
			m.ObserveFlip(slot)
		},
		OnExpire: func(s countdown.Snapshot) {
			snap := state.FromCountdown(s)
			store.Update(snap)
			m.ObserveExpire()
			logger.Infof("Countdown %s expired at %s", s.ID, s.At.Format("2006-01-02 15:04:05"))
			if !notifier.Enabled() {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				// Delivery outlives serveCtx.
				_ = notifier.Expired(ctx, snap)
			}()
		},
	}

	if opts.Headless {
		return runHeadless(ctx, headlessOptions{
			Countdown: countdownOpts,
			Clock:     clk,
			Tick:      cfg.Tick,
			Hooks:     hooks,
			OnStart:   started,
			Out:       opts.Stdout,
		})
	}

	hooks.OnSummary = func(summary string) {
		logger.Debugf("Summary: %s", summary)
	}

	curve, _ := anim.CurveByName(cfg.Curve)
	builder := ui.NewBuilder(clk, cfg.FlipDuration, curve)
	cd, err := countdown.New(countdownOpts, clk.Now(), builder, hooks)
	if err != nil {
		logger.Errorf("Rejected countdown input: %v", err)
		return err
	}
	started(cd.Snapshot())
	logger.Infof("Countdown %s started, target %s", cd.ID(), cd.Target().Format("2006-01-02 15:04:05 MST"))

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warnf("Using default preferences: %v", err)
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Countdown:    cd,
		Builder:      builder,
		Clock:        clk,
		Tick:         cfg.Tick,
		ExitOnExpire: cfg.ExitOnExpire,
		ThemeName:    userPrefs.Theme,
		HideSummary:  userPrefs.HideSummary,
		PrefsPath:    prefsPath,
	})
}

// override applies command line values on top of cfg.
func (o Options) override(cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	if strings.TrimSpace(o.Schedule) != "" && strings.TrimSpace(o.Target) == "" {
		// A schedule flag replaces a target from the file.
		cfg.Target = ""
	}
	set(&cfg.Target, o.Target)
	set(&cfg.Schedule, o.Schedule)
	set(&cfg.Caption, o.Caption)
	set(&cfg.Labels, o.Labels)
	set(&cfg.HTTPAddr, o.HTTPAddr)

	if p := strings.TrimSpace(o.Policy); p != "" {
		policy, err := countdown.ParsePolicy(strings.ToLower(p))
		if err != nil {
			return fmt.Errorf("invalid policy: %w", err)
		}
		cfg.Policy = policy
	}
	return nil
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

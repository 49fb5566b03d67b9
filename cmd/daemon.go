package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/chimekit/chime/cmd/common"
	"github.com/chimekit/chime/internal/api"
	"github.com/chimekit/chime/internal/config"
	"github.com/chimekit/chime/internal/notify"
	"github.com/chimekit/chime/internal/scheduler"
	"github.com/chimekit/chime/internal/server"
	"github.com/chimekit/chime/internal/sounds"
	"github.com/chimekit/chime/internal/store"
	"github.com/chimekit/chime/internal/timeutil"
	"github.com/chimekit/chime/pkg/logger"
)

var (
	configPath string

	daemonFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to the config file",
			Destination: &configPath,
		},
	}
)

func daemon(ctx *cli.Context) error {
	l := logger.NewStandardLogger(log.Default())

	cfg, err := config.Load(configPath)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "load_config", err)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o700); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "data_dir", err)
		return nil
	}

	st, err := store.OpenAlarmStore(cfg.DatabasePath)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "open_store", err)
		return nil
	}
	defer st.Close()

	catalog := sounds.NewCatalog(nil, cfg.SoundsDir)
	sink := notify.NewMultiSink(
		notify.NewExecSink(l, catalog, cfg.PlayerCommand, cfg.NotifyCommand),
		notify.NewLogSink(l),
	)
	notifier := server.NewRPCNotifier(l)
	clock := timeutil.Real()

	alarms := scheduler.NewAlarmScheduler(l, st, sink, notifier, clock, scheduler.AlarmOptions{
		SnoozeFor:        time.Duration(cfg.SnoozeMinutes) * time.Minute,
		AutoDismissAfter: time.Duration(cfg.AutoDismissMinutes) * time.Minute,
		DefaultSound:     cfg.DefaultSound,
		DefaultVolume:    cfg.DefaultVolume,
	})
	timers := scheduler.NewTimerScheduler(l, store.NewTimerStore(), sink, notifier, clock, scheduler.TimerOptions{
		DefaultSound:  cfg.DefaultSound,
		DefaultVolume: cfg.DefaultVolume,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := alarms.Start(runCtx); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "start_alarms", err)
		return nil
	}
	defer alarms.Shutdown()
	timers.Start(runCtx)
	defer timers.Shutdown()

	a := api.NewApi(l, alarms, timers,
		currentBuildArgs.Version, currentBuildArgs.Commit, currentBuildArgs.BuildType)

	if cfg.WebAddr != "" {
		web := server.NewWebServer(l, cfg.WebAddr, cfg.WebSecret, a.RPCMethods(), notifier)
		go func() {
			if err := web.Start(); err != nil {
				l.Error("web server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := web.Shutdown(shutdownCtx); err != nil {
				l.Error("web shutdown: %v", err)
			}
		}()
	}

	srv := server.NewServer(l, cfg.SocketPath, cfg.TCPPort)
	a.RegisterHandlers(srv)
	return srv.Start(runCtx)
}

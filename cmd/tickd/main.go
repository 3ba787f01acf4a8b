// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// tickd runs a single repeating timer, logging every tick and optionally
// exposing prometheus metrics.  It is mostly useful for observing timer behavior.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xmidt-org/timeaux/timer"
	"github.com/xmidt-org/timeaux/timer/timermetrics"
)

type options struct {
	configPath    string
	name          string
	interval      time.Duration
	duration      time.Duration
	recoverPanics bool
	logLevel      string
	metricsAddr   string
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger, nil
}

func (o options) timerConfig() (timer.Config, error) {
	if len(o.configPath) > 0 {
		return timer.LoadConfig(o.configPath)
	}

	c := timer.Config{
		Name:          o.name,
		Interval:      o.interval,
		RecoverPanics: o.recoverPanics,
	}

	return c, c.Validate()
}

func serveMetrics(logger logrus.FieldLogger, addr string, registry *prometheus.Registry) func() {
	server := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("metrics server failed")
		}
	}()

	logger.WithField("addr", addr).Info("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
}

func run(ctx context.Context, out io.Writer, o options) error {
	logger, err := newLogger(out, o.logLevel)
	if err != nil {
		return err
	}

	cfg, err := o.timerConfig()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := timermetrics.New(timermetrics.Config{
		Registerer: registry,
		Namespace:  "tickd",
	})

	if len(o.metricsAddr) > 0 {
		shutdown := serveMetrics(logger, o.metricsAddr, registry)
		defer shutdown()
	}

	if o.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.duration)
		defer cancel()
	}

	var (
		ticks   atomic.Int64
		factory = timer.NewFactory(
			timer.WithLogger(logger),
			timer.WithListeners(metrics.Listener()),
		)
	)

	cfg.AutoStart = true
	r := cfg.Create(factory, func() {
		logger.WithField("tick", ticks.Add(1)).Info("tick")
	})

	t, err := r.Get()
	if err != nil {
		return err
	}

	defer t.Dispose()
	<-ctx.Done()

	if err := t.Stop(); err != nil {
		return err
	}

	logger.WithField("ticks", ticks.Load()).Info("stopped")
	return nil
}

func newRootCommand(out io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "tickd",
		Short:        "Runs a repeating timer that logs each tick",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return run(ctx, out, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.configPath, "config", "c", "", "a YAML or TOML timer configuration file, which overrides the timer flags")
	flags.StringVarP(&o.name, "name", "n", "tickd", "the name of the timer")
	flags.DurationVarP(&o.interval, "interval", "i", time.Second, "the repetition interval")
	flags.DurationVarP(&o.duration, "duration", "d", 0, "how long to run, or 0 to run until interrupted")
	flags.BoolVar(&o.recoverPanics, "recover", false, "recover handler panics")
	flags.StringVarP(&o.logLevel, "log-level", "l", "info", "the logrus level")
	flags.StringVar(&o.metricsAddr, "metrics-addr", "", "if set, the address on which to serve prometheus metrics")

	return cmd
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

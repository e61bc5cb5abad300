// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package wifiper_main wires configuration, logging, metrics and the interactive CLI of the wifi-per tool.
package wifiper_main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simonlingoogle/go-simplelogger"

	"github.com/openthread/ot-wifi-per/cli"
	"github.com/openthread/ot-wifi-per/config"
	"github.com/openthread/ot-wifi-per/logger"
	"github.com/openthread/ot-wifi-per/percache"
	"github.com/openthread/ot-wifi-per/prng"
	"github.com/openthread/ot-wifi-per/progctx"
	. "github.com/openthread/ot-wifi-per/types"
)

type MainArgs struct {
	ConfigFile    string
	Model         string
	Seed          int64
	LogLevel      string
	LogFile       string
	Width         uint
	NoCache       bool
	MetricsListen string
	HistoryFile   string
	DumpConfig    bool
}

var (
	args MainArgs
)

func parseArgs(fs *flag.FlagSet, argv []string) error {
	fs.StringVar(&args.ConfigFile, "config", "", "load configuration from a YAML file")
	fs.StringVar(&args.Model, "model", config.DefaultModelName, "error rate model: yans, default, threshold or its type id")
	fs.Int64Var(&args.Seed, "seed", 0, "root PRNG seed for reception draws; 0 is time-based")
	fs.StringVar(&args.LogLevel, "log", "info", "set logging level: trace, debug, info, note, warn, error, off.")
	fs.StringVar(&args.LogFile, "log-file", "", "also write log output to this file")
	fs.UintVar(&args.Width, "width", config.DefaultChannelWidth, "default channel width (MHz) of CLI queries")
	fs.BoolVar(&args.NoCache, "no-cache", false, "do not cache chunk success rates")
	fs.StringVar(&args.MetricsListen, "metrics-listen", "", "serve Prometheus metrics at this address, e.g. localhost:9100")
	fs.StringVar(&args.HistoryFile, "history", "", "CLI history file")
	fs.BoolVar(&args.DumpConfig, "dump-config", false, "print the effective configuration and exit")
	return fs.Parse(argv)
}

// buildConfig loads the configuration file, if any, and applies the flags that were set explicitly.
func buildConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if args.ConfigFile != "" {
		var err error
		if cfg, err = config.LoadConfigFile(args.ConfigFile); err != nil {
			return nil, err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = args.Model
		case "seed":
			cfg.Seed = args.Seed
		case "log":
			cfg.LogLevel = args.LogLevel
		case "log-file":
			cfg.LogFile = args.LogFile
		case "width":
			if args.Width == 0 || args.Width > math.MaxUint16 {
				flagErr = errors.Errorf("invalid channel width: %d", args.Width)
				return
			}
			cfg.ChannelWidth = MHz(args.Width)
		case "no-cache":
			cfg.Cache.Enabled = !args.NoCache
		case "metrics-listen":
			cfg.MetricsListen = args.MetricsListen
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) {
	level, err := logger.ParseLevelString(cfg.LogLevel)
	logger.PanicIfError(err)
	logger.SetLevel(level)
	if level >= logger.DebugLevel {
		simplelogger.SetLevel(simplelogger.DebugLevel)
	} else {
		simplelogger.SetLevel(simplelogger.InfoLevel)
	}
	if cfg.LogFile != "" {
		logger.SetOutput([]string{"stderr", cfg.LogFile})
	}
	logger.SetStdoutCallback(cli.Cli)
}

// Main runs the tool until the CLI exits or a termination signal is received. It returns the process exit code.
func Main(ctx *progctx.ProgCtx, cliOptions *cli.CliOptions) int {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	if err := parseArgs(fs, os.Args[1:]); err != nil {
		return 2
	}

	cfg, err := buildConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.DumpConfig {
		out, err := cfg.Dump()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Print(out)
		return 0
	}

	prng.Init(cfg.Seed)
	setupLogger(cfg)

	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})
	handleSignals(ctx)

	registry := prometheus.NewRegistry()
	metrics, err := percache.NewMetrics(registry)
	logger.FatalIfError(err)
	if cfg.MetricsListen != "" {
		serveMetrics(ctx, cfg.MetricsListen, registry)
	}

	rt, err := cli.NewCmdRunner(ctx, cfg, metrics)
	if err != nil {
		logger.Errorf("create command runner: %v", err)
		return 1
	}

	if cliOptions == nil {
		cliOptions = cli.DefaultCliOptions()
	}
	if cliOptions.HistoryFile == "" {
		cliOptions.HistoryFile = args.HistoryFile
	}
	err = cli.Cli.Run(rt, cliOptions)
	ctx.Cancel(errors.Wrapf(err, "console exit"))

	logger.Debugf("waiting for wifi-per to stop gracefully ...")
	ctx.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return 1
	}
	return 0
}

func serveMetrics(ctx *progctx.ProgCtx, addr string, gatherer prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx.Defer(func() {
		_ = server.Close()
	})

	ctx.Go("metrics", func() {
		logger.Infof("serving metrics at http://%s/metrics", addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
			logger.Errorf("metrics server stopped unexpectedly: %v", err)
		}
	})
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	signal.Ignore(syscall.SIGALRM)

	ctx.Go("handleSignals", func() {
		defer logger.Debugf("handleSignals exit.")
		defer signal.Stop(c)

		for {
			select {
			case sig := <-c:
				logger.Infof("signal received: %v", sig)
				ctx.Cancel(nil)
			case <-ctx.Done():
				return
			}
		}
	})
}

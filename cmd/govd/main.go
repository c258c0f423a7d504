// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// govd runs the governance core as a standalone JSON-RPC daemon backed
// by an in-memory store. It exists for local development and testing;
// production hosts embed the core and supply their own database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/luxfi/database/corruptabledb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/governance"
	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/dispatch"
	"github.com/luxfi/governance/genesis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cmd := command()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	genesisPath  string
	configPath   string
	httpHost     string
	httpPort     uint16
	chainID      string
	paramsTarget string
}

func command() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "govd",
		Short: "Runs a governance daemon",
		RunE: func(*cobra.Command, []string) error {
			return run(f)
		},
	}
	addFlags(cmd.Flags(), f)
	return cmd
}

func addFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVar(&f.genesisPath, "genesis", "", "path to the JSON genesis")
	fs.StringVar(&f.configPath, "config", "", "path to the JSON node config; defaults apply if empty")
	fs.StringVar(&f.httpHost, "http-host", "127.0.0.1", "address to listen on")
	fs.Uint16Var(&f.httpPort, "http-port", 9750, "port to listen on")
	fs.StringVar(&f.chainID, "chain-id", "", "chain id mixed into authorization digests; derived from the genesis if empty")
	fs.StringVar(&f.paramsTarget, "params-target", "", "action target address routed to the parameter-update handler")
}

func run(f *flags) error {
	if f.genesisPath == "" {
		return errors.New("--genesis is required")
	}

	logger := log.NewLogger("govd")

	genesisBytes, err := os.ReadFile(f.genesisPath)
	if err != nil {
		return fmt.Errorf("failed to read genesis: %w", err)
	}
	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig
	if f.configPath != "" {
		configBytes, err := os.ReadFile(f.configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		cfg, err = config.ParseConfig(configBytes)
		if err != nil {
			return err
		}
	}

	chainID := ids.ID{'g', 'o', 'v', 'd'}
	if f.chainID != "" {
		chainID, err = ids.FromString(f.chainID)
		if err != nil {
			return fmt.Errorf("failed to parse chain id: %w", err)
		}
	}

	registry := dispatch.NewRegistry()
	if f.paramsTarget != "" {
		target, err := ids.ShortFromString(f.paramsTarget)
		if err != nil {
			return fmt.Errorf("failed to parse params target: %w", err)
		}
		if err := registry.RegisterHandler(target, dispatch.ParamsHandler{}); err != nil {
			return err
		}
	}

	metricsRegistry := metric.NewRegistry()
	db := corruptabledb.New(memdb.New(), logger)

	gov, err := governance.New(
		db,
		g,
		chainID,
		cfg,
		registry,
		metricsRegistry,
		logger,
	)
	if err != nil {
		return err
	}

	handlers, err := gov.CreateHandlers(context.Background())
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	for endpoint, handler := range handlers {
		if endpoint == "" {
			router.Handle("/rpc", handler)
			continue
		}
		router.Handle(endpoint, handler)
	}

	addr := net.JoinHostPort(f.httpHost, fmt.Sprintf("%d", f.httpPort))
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening",
			log.String("address", addr),
		)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return gov.Shutdown(shutdownCtx)
}

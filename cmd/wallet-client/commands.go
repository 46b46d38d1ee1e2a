package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/STTM-NSU/wallet-client/internal/config"
	"github.com/STTM-NSU/wallet-client/internal/controller"
	"github.com/STTM-NSU/wallet-client/internal/fakeapi"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/STTM-NSU/wallet-client/internal/postgres"
	"github.com/STTM-NSU/wallet-client/internal/server"
	"github.com/STTM-NSU/wallet-client/internal/session"
	"github.com/STTM-NSU/wallet-client/internal/tui"
	"github.com/STTM-NSU/wallet-client/internal/walletapi"
)

const _fakeDefaultAddr = "127.0.0.1:8080"

// checkArgs rejects bad command lines before anything is dialed or opened.
// A -fake service lives only as long as this process, so commands that need
// a wallet from an earlier run can't use it.
func checkArgs(cmd string, args []string, fake bool) error {
	switch cmd {
	case "list", "simulate", "interactive":
		if len(args) != 0 {
			return fmt.Errorf("%w: %s takes no arguments", errUsage, cmd)
		}
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("%w: create <email>", errUsage)
		}
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("%w: load <wallet-id>", errUsage)
		}
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("%w: add <symbol> <quantity> [price]", errUsage)
		}
	case "serve-fake":
		if len(args) > 1 {
			return fmt.Errorf("%w: serve-fake [addr]", errUsage)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	switch cmd {
	case "load", "add", "simulate":
		if fake {
			return fmt.Errorf("%w: -fake starts an empty service for every run, "+
				"use -fake interactive or serve-fake to keep wallets between commands", errUsage)
		}
	}
	return nil
}

func run(ctx context.Context, cfg config.ClientConfig, f flags, args []string, logger logger.Logger) error {
	cmd, args := args[0], args[1:]
	if err := checkArgs(cmd, args, f.fake); err != nil {
		return err
	}

	if cmd == "serve-fake" {
		addr := _fakeDefaultAddr
		if len(args) > 0 {
			addr = args[0]
		}
		return serveFake(ctx, addr, logger)
	}

	if f.fake {
		address, err := startFake(ctx, logger)
		if err != nil {
			return err
		}
		cfg.API.Address = address
		cfg.Session.Store = config.MemoryStore
	}

	store, closeStore, err := newSessionStore(cfg.Session, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	api := walletapi.NewWalletService(cfg.API, logger)
	defer func() {
		if err := api.Close(); err != nil {
			logger.Warnf("%s: can't close wallet api client", err)
		}
	}()

	c := controller.NewController(api, session.New(cfg.Session.Name), store, cfg.View, logger)

	// add, simulate and interactive continue from the previous run
	if cmd != "list" && cmd != "create" && cmd != "load" {
		if _, err := c.Resume(ctx); err != nil && !errors.Is(err, controller.ErrNoWallet) {
			logger.Warnf("%s: can't resume session %s", err, cfg.Session.Name)
		}
	}

	switch cmd {
	case "list":
		list, err := c.ListWallets(ctx)
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderWalletList(list))

	case "create":
		w, err := c.CreateWallet(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderWallet(w))

	case "load":
		w, err := c.LoadWallet(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderWallet(w))

	case "add":
		in := controller.AssetInput{Symbol: args[0], Quantity: args[1]}
		if len(args) == 3 {
			in.Price = args[2]
		}
		w, err := c.AddAsset(ctx, in)
		if errors.Is(err, controller.ErrNoWallet) {
			return fmt.Errorf("%w: create or load a wallet first", err)
		}
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderWallet(w))

	case "simulate":
		sim, err := c.RunSimulation(ctx)
		if controller.Skipped(err) {
			return fmt.Errorf("%w: nothing to simulate", err)
		}
		if err != nil {
			return err
		}
		fmt.Println(tui.RenderSimulation(sim))

	case "interactive":
		return tui.NewApp(c, tui.FormPrompter{}, os.Stdout, logger).Run(ctx)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	return nil
}

func newSessionStore(cfg config.SessionConfig, logger logger.Logger) (session.Store, func(), error) {
	switch cfg.Store {
	case config.MemoryStore:
		return session.NewMemoryStore(), func() {}, nil

	case config.PostgresStore:
		pgCfg, err := postgres.NewConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		db, err := postgres.NewDB(pgCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: can't open session db %s", err, pgCfg.Redacted())
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Warnf("%s: can't close session db", err)
			}
		}
		return session.NewPostgresStore(db), closeDB, nil

	default:
		return session.NewFileStore(cfg.File), func() {}, nil
	}
}

// startFake serves a fresh fake wallet service on a loopback port until ctx
// is done and returns its API address.
func startFake(ctx context.Context, logger logger.Logger) (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("%w: can't listen for fake wallet service", err)
	}

	s := server.NewHTTPServer(ctx, l.Addr().String(), fakeapi.New(fakeapi.WithPrices(fakeapi.DemoPrices())).Handler())
	go func() {
		if err := s.Run(ctx, l); err != nil {
			logger.Errorf("%s: fake wallet service stopped", err)
		}
	}()

	address := "http://" + l.Addr().String() + fakeapi.BasePath
	logger.Infof("using fake wallet service at %s", address)
	return address, nil
}

func serveFake(ctx context.Context, addr string, logger logger.Logger) error {
	s := server.NewHTTPServer(ctx, addr, fakeapi.New(fakeapi.WithPrices(fakeapi.DemoPrices())).Handler())
	logger.Infof("fake wallet service listening on %s%s", s.Addr(), fakeapi.BasePath)

	if err := s.Run(ctx, nil); err != nil {
		return fmt.Errorf("%w: can't serve fake wallet service", err)
	}
	return nil
}

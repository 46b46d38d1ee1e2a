// Command wallet-client talks to the wallet service from the terminal.
//
// Usage:
//
//	wallet-client [flags] list
//	wallet-client [flags] create <email>
//	wallet-client [flags] load <wallet-id>
//	wallet-client [flags] add <symbol> <quantity> [price]
//	wallet-client [flags] simulate
//	wallet-client [flags] interactive
//	wallet-client [flags] serve-fake [addr]
//
// The current wallet is remembered per session between runs. With -fake the
// service is in-process and starts empty, so only list, create and
// interactive make sense there; serve-fake keeps one running instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/STTM-NSU/wallet-client/internal/config"
	"github.com/STTM-NSU/wallet-client/internal/logger"
	"github.com/joho/godotenv"
)

const (
	_clientCfgFilePath = "./configs/client.yaml"
)

var errUsage = errors.New("usage")

type flags struct {
	configPath string
	session    string
	fake       bool
	logLevel   string
}

func parseFlags(args []string) (flags, []string, error) {
	var f flags
	fs := flag.NewFlagSet("wallet-client", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", _clientCfgFilePath, "path to the client config")
	fs.StringVar(&f.session, "session", "", "session name, overrides the config")
	fs.BoolVar(&f.fake, "fake", false, "run against an in-process fake wallet service")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error; overrides the config")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: wallet-client [flags] list|create|load|add|simulate|interactive|serve-fake [args]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flags{}, nil, errUsage
	}
	return f, fs.Args(), nil
}

func main() {
	f, args, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	envErr := godotenv.Load()

	clientCfg, err := config.LoadClientConfig(f.configPath)
	if err != nil {
		log.Fatalf("%s: can't load client cfg", err)
	}
	if f.logLevel != "" {
		clientCfg.LogLevel = f.logLevel
	}
	if f.session != "" {
		clientCfg.Session.Name = f.session
	}

	level, err := logger.ParseLogLevel(clientCfg.LogLevel)
	if err != nil {
		log.Fatalf("%s: bad log level", err)
	}
	zapLogger, loggerSync, err := logger.NewZapLogger(level)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}

	if envErr != nil {
		zapLogger.Debugf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err = run(ctx, clientCfg, f, args, zapLogger)
	cancel()

	if err != nil {
		if errors.Is(err, errUsage) {
			loggerSync()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		zapLogger.Errorf("%s: %s failed", err, args[0])
		loggerSync()
		os.Exit(1)
	}
	loggerSync()
}

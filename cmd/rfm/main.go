package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rfm/internal/app"
	"github.com/kk-code-lab/rfm/internal/config"
	"github.com/kk-code-lab/rfm/internal/logging"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func printHelp(w io.Writer) {
	fmt.Fprint(w, `rfm - Terminal-based file manager

USAGE:
    rfm [OPTIONS] [DIRECTORY]

OPTIONS:
    -h, --help       Show this help message and exit
    -v, --version    Print the version and exit

DIRECTORY defaults to the working directory.

ENVIRONMENT:
`)
	_ = config.Usage(w)
}

type options struct {
	help     bool
	version  bool
	startDir string
}

func parseArgs(args []string) (options, error) {
	var opts options
	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "-v" || arg == "--version":
			opts.version = true
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("unknown option %q", arg)
		case opts.startDir != "":
			return opts, errors.New("only one directory may be given")
		default:
			opts.startDir = arg
		}
	}
	return opts, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "rfm: %v\n", err)
		printHelp(stderr)
		return 2
	}
	if opts.help {
		printHelp(stdout)
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "rfm %s\n", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "rfm: %v\n", err)
		return 1
	}

	logCfg := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	}
	if cfg.Logging.File != "" {
		logCfg.OutputPaths = []string{cfg.Logging.File}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "rfm: logger: %v\n", err)
		return 1
	}

	// UTF-8 fallback keeps non-ASCII names readable on odd terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.New(apppkg.Options{
		Config:   cfg,
		Logger:   logger,
		StartDir: opts.startDir,
	})
	if err != nil {
		logger.Error("startup failed", zap.String("path", opts.startDir), zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintf(stderr, "rfm: %v\n", err)
		return 1
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	logger.Info("exited", zap.String("path", app.CurrentPath()))
	return 0
}

// Package main is the entry point for the Notebook text editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/notebook/internal/app"
	"github.com/dshills/notebook/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	logFile    string
	logLevel   string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	level, err := app.ParseLogLevel(cli.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (must be debug, info, warn, or error)\n", err)
		return 2
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if cli.logFile != "" {
		f, err := os.OpenFile(cli.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := app.NewLogger(app.LoggerConfig{Level: level, Output: logOut, Prefix: "notebook"})

	application, err := app.New(app.Options{
		ConfigPath: cli.configPath,
		File:       cli.file,
		Logger:     log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			term.Interrupt(app.ErrQuit)
		}
	}()

	log.Info("notebook %s starting", version)
	if err := application.Run(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool

	flag.StringVar(&cli.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&cli.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Notebook - a small terminal notepad\n\n")
		fmt.Fprintf(os.Stderr, "Usage: notebook [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S save  Ctrl+N new  Ctrl+Q quit  Ctrl+Z/Ctrl+Y undo/redo\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+F find  Ctrl+G replace  Ctrl+R replace one  Ctrl+A replace all\n")
		fmt.Fprintf(os.Stderr, "  Enter/Shift+Enter next/previous match  Alt+C match case  Esc close bar\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+= / Ctrl+- / Ctrl+0 zoom in/out/reset\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Notebook %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file can be opened\n")
		flag.Usage()
		os.Exit(2)
	}
	cli.file = flag.Arg(0)

	return cli
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"agentfs/internal/config"
	"agentfs/internal/tools"
)

var (
	debugMode   = flag.Bool("d", false, "Enable debug mode")
	logFile     = flag.String("log-file", "", "Log file path (logs disabled by default)")
	configFile  = flag.String("config", "config.json", "Config file path")
	describe    = flag.Bool("describe", false, "Print tool definitions as JSON and exit")
	interactive = flag.Bool("i", false, "Run an interactive REPL instead of the stdio serve loop")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Apply()

	logPath := *logFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	logger := initLogger(*debugMode, logPath)
	logger.Info().Msg("agentfs starting")

	registry := tools.NewRegistryWithLogger(logger)

	if *describe {
		printToolDefinitions(registry)
		return
	}

	// An interactive terminal on stdin means a human, not a dispatcher.
	if *interactive || term.IsTerminal(int(os.Stdin.Fd())) {
		runREPL(logger, registry)
		return
	}

	runServeMode(logger, registry)
}

func initLogger(debug bool, logFilePath string) zerolog.Logger {
	// Set log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Stdout carries the protocol channel, so logs go to a file or nowhere.
	var output io.Writer
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = file
	} else {
		output = io.Discard
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func printToolDefinitions(registry *tools.Registry) {
	data, err := json.MarshalIndent(registry.OpenAITools(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal tool definitions: %v", err)
	}
	fmt.Println(string(data))
}

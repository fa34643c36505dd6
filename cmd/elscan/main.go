/*
Package main implements the letter-sequence search server and CLI application.

elscan finds occurrences of a term whose letters appear at a constant interval
(ELS), at intervals following a derived progression (triangular, square,
Fibonacci), or along a greedily-chosen nearest-occurrence path (chain search),
inside a letter-only stream prepared from a source text. It can operate as a
MessagePack IPC server for integration with host applications, or as a CLI for
testing and debugging.

# Usage

Start the server against a source text:

	elscan -text corpus.txt

Run in CLI mode with a custom skip range:

	elscan -text corpus.txt -c -smin 1 -smax 200

# Configuration

Runtime configuration is managed through a TOML file supporting search,
chain, server and CLI sections:

	[search]
	max_skip_span = 500
	max_results = 256
	letter_class = "letters"

	[chain]
	default_window = 50
	max_window = 2000

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. A session loads a
text, then issues search actions against it:

	{"id": "t1", "action": "set_text", "text": "...", "class": "latin"}
	{"id": "s1", "action": "els", "term": "cat", "skip_min": 1, "skip_max": 100}

See the server package docs for the full action set.

# Command Line Flags

	-text string
	    Path of the source text to load
	-class string
	    Letter class: latin, hebrew or letters
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-smin / -smax int
	    Skip range for CLI searches
	-window int
	    Chain search window (0 uses the configured default)
	-limit int
	    Number of results to display
	-no-filter
	    Disable term filtering for debugging
	-config string
	    Custom config file path

The cipher collaborator bound at startup is the ordinal valuer (a=1..z=26);
hosts embedding the engine supply their own.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/internal/cli"
	"github.com/rdayan/elscan/internal/logger"
	"github.com/rdayan/elscan/pkg/cipher"
	"github.com/rdayan/elscan/pkg/config"
	"github.com/rdayan/elscan/pkg/engine"
	"github.com/rdayan/elscan/pkg/server"
	"github.com/rdayan/elscan/pkg/textprep"
)

const (
	Version = "0.3.0-beta"
	AppName = "elscan"
	gh      = "https://github.com/rdayan/elscan"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	textPath := flag.String("text", "", "Path of the source text to load")
	className := flag.String("class", defaults.Search.LetterClass, "Letter class: latin, hebrew or letters")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	skipMin := flag.Int("smin", defaults.CLI.DefaultSkipMin, "Minimum skip for CLI searches")
	skipMax := flag.Int("smax", defaults.CLI.DefaultSkipMax, "Maximum skip for CLI searches")
	window := flag.Int("window", 0, "Chain search window (0 uses the config default)")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of results to display")
	noFilter := flag.Bool("no-filter", false, "Disable term filtering (DBG only)")
	configPath := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	eng := engine.New(cipher.Ordinal{}, appConfig)

	var prep *textprep.PreparedText
	if *textPath != "" {
		raw, err := os.ReadFile(*textPath)
		if err != nil {
			log.Fatalf("Failed to read source text %s: %v", *textPath, err)
		}
		prep, err = eng.PrepareText(string(raw), *className)
		if err != nil {
			log.Fatalf("Failed to prepare text: %v", err)
		}
		log.Debugf("Prepared %d letters from %s (class=%s)", prep.Len(), *textPath, *className)
	}

	// CLI is mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		if *textPath == "" {
			log.Fatal("CLI mode needs a source text, use -text <file>")
		}
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"skipMin", *skipMin,
			"skipMax", *skipMax,
			"window", *window,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(eng, prep, *skipMin, *skipMax, *window, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(eng, activePath)

	letters := 0
	if prep != nil {
		srv.Preload(prep)
		letters = prep.Len()
	}
	showStartupInfo(*textPath, letters)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printVersion() {
	vlog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ elscan ] Equidistant and chained letter sequence search")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(textPath string, letters int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("========")
	println(" elscan ")
	println("========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("source: ( %s ), %d letters", textPath, letters)
	log.Info("status: ready")
	println("========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

/*
Package main implements the heading-link suggestion server and CLI [DBG]
application.

Headlinks indexes the headings of every markdown document in a vault and
serves ranked link suggestions for free-form typed text. It can operate as a
MessagePack IPC server for integration with text editors, or as a CLI
application for testing and debugging.

The index refreshes itself incrementally: a filesystem watcher schedules
changed documents into a debounced batch, so a burst of edits costs one
reindex instead of one per keystroke. Queries run a tiered scorer over every
indexed heading (exact, prefix, substring, multi-token, fuzzy subsequence)
and return a deterministic ranking.

# Usage

Start the server over the current directory:

	headlinks

Use a custom vault and enable debug mode:

	headlinks -vault ~/notes -d

Run in CLI mode for interactive testing:

	headlinks -vault ~/notes -c -limit 10

# Configuration

Runtime configuration is managed through a TOML file that supports matching,
indexing and server parameters:

	[suggest]
	min_chars = 3
	fuzzy = true
	min_fuzzy_score = 20
	max_phrase_words = 3
	max_suggestions = 10

	[index]
	debounce_ms = 120

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Suggestion
requests are processed synchronously with microsecond timing information
included in responses.

Send a suggestion request:

	{"id": "req1", "op": "suggest", "q": "getting sta", "l": 10}

Receive headings ranked by score:

	{"id": "req1", "s": [{"h": "Getting Started", "doc": "guides/setup.md", "r": 842, "m": "prefix"}], "c": 1, "t": 95}

Detection, selection, change notifications and config updates use the same
envelope; see pkg/server for the full message set.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Darsh-A/obsidian-auto-headers/internal/cli"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/config"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/server"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/suggest"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/vault"
)

const (
	Version = "0.3.0"
	AppName = "headlinks"
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

// main wires the vault, index, controller and the chosen front end.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	vaultDir := flag.String("vault", ".", "Vault directory containing the markdown documents")
	configPath := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return (0 = config default)")
	minChars := flag.Int("minchars", 0, "Minimum query length for suggestions (0 = config default)")
	noWatch := flag.Bool("no-watch", false, "Disable the filesystem watcher (DBG only) - index refreshes on explicit notifications")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Headlinks ] Ranked heading-link suggestions for your vault!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")

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

	// Flag overrides for the current run only
	if *limit > 0 {
		appConfig.Suggest.MaxSuggestions = *limit
	}
	if *minChars > 0 {
		appConfig.Suggest.MinChars = *minChars
	}

	v, err := vault.Open(*vaultDir, appConfig.Index.Extensions)
	if err != nil {
		log.Fatalf("Failed to open vault at %s: %v", *vaultDir, err)
	}
	log.Debugf("Using vault at: %s", v.Root())

	debounce := time.Duration(appConfig.Index.DebounceMs) * time.Millisecond
	ix := index.New(v, debounce)
	ix.RebuildAll()

	if !*noWatch {
		w, err := v.Watch(ix)
		if err != nil {
			log.Fatalf("Failed to watch vault: %v", err)
		}
		defer w.Close()
	}

	controller := suggest.NewController(ix, appConfig, nil)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(controller, appConfig.Suggest.MinChars, appConfig.Server.MaxQuery)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(v.Root(), ix)

	srv := server.NewServer(controller, ix, v, appConfig, activePath)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(vaultDir string, ix *index.Index) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	stats := ix.Stats()
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("vault: ( %s )", vaultDir)
	log.Infof("indexed: %d document(s), %d heading(s)", stats["documents"], stats["headings"])
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

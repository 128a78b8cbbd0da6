// Copyright 2025 The SpellServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spell check server and CLI application.

Note: This is a BETA release. APIs and functionality may rapidly change.

SpellServe answers two questions about any word: is it spelled right,
and if not, what was probably meant. A Bloom filter rejects most
non-words without touching the tree, and a BK-tree over edit distance
confirms real words and enumerates nearby corrections. It can operate
as a MessagePack IPC server for integration with text editors, or as a
CLI application for interactive and batch checking.

The word list is a plain text file, one word per line with an optional
frequency column. The same list feeds the engine and the prefix
completion trie, so corrections and completions always agree on what
counts as a word.

# Usage

Start the server with default settings:

	spellserve

Run in CLI mode for interactive correction:

	spellserve -c

Check a file and exit nonzero when misspellings are found:

	spellserve -f draft.txt
	cat draft.txt | spellserve

Use a custom word list and a wider search radius:

	spellserve -dict /path/to/words.txt -radius 3 -c

# Configuration

Runtime configuration is managed through a TOML file that supports
server parameters, dictionary settings, and engine tuning:

	[server]
	max_limit = 64
	max_word_length = 64
	cache_size = 1024

	[dict]
	path = "dictionary.txt"
	max_words = 50000

	[checker]
	fp_rate = 0.01
	max_radius = 2

	[cli]
	suggest_limit = 8
	no_filter = false

The config file is automatically created with defaults if it doesn't
exist. Out-of-range values are clamped with a warning rather than
refusing to start.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests
are processed synchronously with microsecond timing information
included in responses.

Send a check request:

	{"id": "req1", "w": "teh"}

Receive the verdict with ranked corrections, nearest first:

	{"id": "req1", "w": "teh", "v": false, "s": [{"w": "the", "d": 1}], "c": 1, "t": 145}

Prefix completion reuses the same channel:

	{"id": "req2", "p": "hel", "l": 8}

Engine management requests allow runtime inspection and tuning:

	{"id": "eng1", "action": "get_info"}
	{"id": "eng2", "action": "set_options", "max_radius": 3, "persist": true}

# Server Mode

With a terminal on stdin, the default mode starts a MessagePack IPC
server that processes check and completion requests from stdin and
writes responses to stdout. This design enables integration with text
editors and other applications through process communication. An
editor spawns the process over pipes, so it passes -serve to pin
server mode:

	spellserve -serve -d

	srv := server.NewServer(checker, dict, config, configPath)
	err := srv.Start()

The server handles request parsing, validation, response formatting
and keeps a small LRU cache of recent check results for repeat
lookups.

# CLI Mode

CLI mode provides an interactive interface where each misspelled word
prompts for a replacement, picked by number or typed directly. The
corrected line is echoed back with the original casing and punctuation
preserved. Batch mode (-f) reads a file or stdin instead and prints
one line per misspelling with its position. A pipe or redirect on
stdin without -f gets the same treatment.

	session := cli.NewSession(checker, dict, config)
	err := session.Start()

# Engine

The core checking functionality is provided by the spell package. The
filter and the tree are built concurrently from the same word list and
are immutable afterwards, so checks are safe from any number of
goroutines.

	checker, err := spell.Build(words, spell.Options{FPRate: 0.01, MaxRadius: 2})
	result := checker.Check("teh")

A check consults the filter first: a definite-no skips the exact
lookup entirely and goes straight to suggestion queries of growing
radius, stopping at the first radius that produces candidates.

# Command Line Flags

The following flags control application behavior:

	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-f string
	    Check a file (or - for stdin) and exit
	-serve
	    Serve msgpack IPC even when stdin is a pipe
	-dict string
	    Word list file (default from config)
	-config string
	    Custom config file path
	-fp float
	    Target false positive rate for the filter
	-radius int
	    Maximum edit distance for suggestions
	-limit int
	    Number of suggestions to return
	-words int
	    Maximum words to load (0 for all)
	-no-filter
	    Check every token, including ones with digits
	-init-config
	    Write a fresh default config file and exit

Flags given on the command line win over the config file, which wins
over built-in defaults. The dictionary path is resolved relative to
the working directory, the executable and the config directory, in
that order.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/arlochr/spellserve/internal/cli"
	"github.com/arlochr/spellserve/internal/logger"
	"github.com/arlochr/spellserve/internal/utils"
	"github.com/arlochr/spellserve/pkg/config"
	"github.com/arlochr/spellserve/pkg/dictionary"
	"github.com/arlochr/spellserve/pkg/server"
	"github.com/arlochr/spellserve/pkg/spell"
)

const (
	Version = "0.3.1-beta"
	AppName = "spellserve"
	gh      = "https://github.com/arlochr/spellserve"
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
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- interactive correction, useful for testing and debugging")
	checkFile := flag.String("f", "", "Check a file (use - for stdin) and exit nonzero on misspellings")
	serveMode := flag.Bool("serve", false, "Serve msgpack IPC even when stdin is a pipe (for editor spawns)")
	dictPath := flag.String("dict", defaultConfig.Dict.Path, "Word list file, one word per line with optional frequency")
	configFlag := flag.String("config", "", "Custom config file path")
	fpRate := flag.Float64("fp", defaultConfig.Checker.FPRate, "Target false positive rate for the filter (0 < p < 1)")
	radius := flag.Int("radius", defaultConfig.Checker.MaxRadius, "Maximum edit distance for suggestions")
	limit := flag.Int("limit", defaultConfig.CLI.SuggestLimit, "Number of suggestions to return")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.NoFilter, "Disable input filtering (DBG only) - checks every token (numbers, symbols, etc)")
	initConfig := flag.Bool("init-config", false, "Write a fresh default config file and exit")

	flag.Parse()

	if *showVersion {
		logger := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ SpellServe ] Serves really fast spelling verdicts!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *initConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		path, _ := config.GetDefaultConfigPath()
		log.Printf("Wrote default config to %s", path)
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Explicit flags win over whatever the config file says
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			appConfig.Dict.Path = *dictPath
		case "fp":
			appConfig.Checker.FPRate = *fpRate
		case "radius":
			appConfig.Checker.MaxRadius = *radius
		case "limit":
			appConfig.CLI.SuggestLimit = *limit
		case "words":
			appConfig.Dict.MaxWords = *wordLimit
		case "no-filter":
			appConfig.CLI.NoFilter = *noFilter
		}
	})
	appConfig.Validate()

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	dictFile := pathResolver.GetDictionaryPath(appConfig.Dict.Path)
	log.Debugf("Using word list at: %s", dictFile)

	start := time.Now()
	dict, err := dictionary.Load(dictFile, appConfig.Dict.MaxWords)
	if err != nil {
		if filepath.IsAbs(appConfig.Dict.Path) {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		log.Fatalf("Failed to load dictionary: %v (searched the working directory, %s and %s)",
			err, pathResolver.GetExecutableDir(), pathResolver.GetConfigDir())
	}
	log.Debugf("Loaded %d words in %v", dict.Size(), time.Since(start))

	start = time.Now()
	checker, err := spell.Build(dict.Words(), spell.Options{
		FPRate:    appConfig.Checker.FPRate,
		MaxRadius: appConfig.Checker.MaxRadius,
	})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	log.Debugf("Engine built in %v (fp=%g, radius=%d)",
		time.Since(start), appConfig.Checker.FPRate, appConfig.Checker.MaxRadius)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		session := cli.NewSession(checker, dict, appConfig)
		if err := session.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	// A pipe or redirect on stdin gets the same batch treatment as -f -
	// unless -serve pins the process to server duty
	if *checkFile != "" || (!*serveMode && stdinIsPipe(os.Stdin)) {
		log.SetReportTimestamp(false)
		session := cli.NewSession(checker, dict, appConfig)

		var src io.Reader = os.Stdin
		if *checkFile != "" && *checkFile != "-" {
			f, err := os.Open(*checkFile)
			if err != nil {
				log.Fatalf("Failed to open %s: %v", *checkFile, err)
			}
			defer f.Close()
			src = f
		}

		found, err := session.CheckStream(src)
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		if found > 0 {
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(checker, dict, appConfig, configPath)

	showStartupInfo(dictFile, dict.Size())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// stdinIsPipe reports whether f is a pipe or redirect rather than an
// interactive terminal.
func stdinIsPipe(f *os.File) bool {
	return !isatty.IsTerminal(f.Fd())
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictFile string, wordCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" SpellServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("word list: ( %s )", dictFile)
	log.Infof("words: %s", utils.FormatWithCommas(wordCount))
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

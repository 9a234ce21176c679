// Package main is the picky command, an interactive fuzzy selector
// over lines piped on stdin or read from argument files.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/Jacobious52/picky"
	"github.com/Jacobious52/picky/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	fl := parseFlags()

	cfg, err := loadConfig(fl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	picker, err := picky.New(picky.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown. Ctrl+C normally arrives
	// as a key event since the terminal is raw; this covers SIGTERM
	// and signals sent from outside.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	res, runErr := pick(ctx, picker, fl.files)
	switch {
	case runErr == nil:
		for _, text := range res.Texts {
			fmt.Println(text)
		}
		return 0
	case errors.Is(runErr, picky.ErrCancelled), errors.Is(runErr, picky.ErrNoCandidates):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 2
	}
}

// pick chooses the candidate source: argument files are read up
// front, stdin is streamed while the session runs.
func pick(ctx context.Context, picker *picky.Picker, files []string) (picky.Result, error) {
	if len(files) > 0 {
		lines, err := readFiles(files)
		if err != nil {
			return picky.Result{}, err
		}
		return picker.Pick(ctx, lines)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return picky.Result{}, errors.New("no candidates: pipe a list into picky or name files")
	}
	return picker.PickStream(ctx, streamLines(ctx, os.Stdin))
}

func readFiles(paths []string) ([]string, error) {
	var lines []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading candidates: %w", err)
		}
		scanner := newLineScanner(f)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		closeErr := f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading candidates from %s: %w", path, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("reading candidates from %s: %w", path, closeErr)
		}
	}
	return lines, nil
}

// streamLines feeds r to the picker line by line while the session
// runs. Read failures end the stream early; the session keeps going
// with what arrived.
func streamLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string, 256)
	go func() {
		defer close(lines)
		scanner := newLineScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return scanner
}

type cliFlags struct {
	configPath string
	prompt     string
	header     string
	height     int
	multi      bool
	algo       string
	caseMode   string
	logFile    string
	logLevel   string
	files      []string
	set        map[string]bool
}

func parseFlags() cliFlags {
	var fl cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&fl.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&fl.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&fl.prompt, "prompt", "", "Prompt shown before the query")
	flag.StringVar(&fl.prompt, "p", "", "Prompt shown before the query (shorthand)")
	flag.StringVar(&fl.header, "header", "", "Header line above the list")
	flag.IntVar(&fl.height, "height", 0, "Rows to use (0 = full screen)")
	flag.BoolVar(&fl.multi, "multi", false, "Allow marking several lines with Tab")
	flag.BoolVar(&fl.multi, "m", false, "Allow marking several lines with Tab (shorthand)")
	flag.StringVar(&fl.algo, "algo", "", "Scoring strategy (align, scan, fzf)")
	flag.StringVar(&fl.caseMode, "case", "", "Case handling (smart, insensitive, sensitive)")
	flag.StringVar(&fl.logFile, "log-file", "", "Append diagnostics to this file")
	flag.StringVar(&fl.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "picky - interactive fuzzy line selector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: command | picky [options]\n")
		fmt.Fprintf(os.Stderr, "       picky [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  git branch | picky -p \"branch: \"   Pick a branch\n")
		fmt.Fprintf(os.Stderr, "  rg --files | picky -m              Mark several files with Tab\n")
		fmt.Fprintf(os.Stderr, "  picky -height 15 words.txt         Pick from a file in 15 rows\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("picky %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	fl.files = flag.Args()
	fl.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		fl.set[f.Name] = true
	})
	return fl
}

// loadConfig layers the file, the environment and the explicitly set
// flags over the defaults, in that order.
func loadConfig(fl cliFlags) (config.Config, error) {
	path := fl.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	on := func(names ...string) bool {
		for _, name := range names {
			if fl.set[name] {
				return true
			}
		}
		return false
	}
	if on("prompt", "p") {
		cfg.Prompt = fl.prompt
	}
	if on("header") {
		cfg.Header = fl.header
	}
	if on("height") {
		cfg.Height = fl.height
	}
	if on("multi", "m") {
		cfg.MultiSelect = fl.multi
	}
	if on("algo") {
		cfg.Algorithm = fl.algo
	}
	if on("case") {
		cfg.Case = fl.caseMode
	}
	if on("log-file") {
		cfg.LogFile = fl.logFile
	}
	if on("log-level") {
		cfg.LogLevel = fl.logLevel
	}
	return cfg, nil
}

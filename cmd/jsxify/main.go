package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gnana997/jsxify/pkg/converter"
	mcpserver "github.com/gnana997/jsxify/pkg/mcp"
	"github.com/gnana997/jsxify/pkg/mcplog"
	"github.com/gnana997/jsxify/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert":
		runConvert(args)
	case "watch":
		runWatch(args)
	case "serve":
		runServe(args)
	case "setup":
		runSetup(args)
	case "version":
		fmt.Printf("jsxify %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: jsxify <command> [flags] [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  convert    Convert HTML documents under a directory to JSX")
	fmt.Println("  watch      Convert, then reconvert documents as they change")
	fmt.Println("  serve      Start the MCP server on stdin/stdout")
	fmt.Println("  setup      Register the MCP server with installed AI agents")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}

// newConverter builds a Converter from config file plus command-line flags.
func newConverter(fs *flag.FlagSet, args []string) (*converter.Converter, []string, error) {
	fileCfg, err := loadProjectConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read project config: %w", err)
	}

	defaults := fileCfg.converterConfig()
	out := fs.String("out", defaults.OutputDir, "output directory")
	pattern := fs.String("pattern", "**/*.html", "input glob pattern")
	typescript := fs.Bool("typescript", defaults.TypeScript, "emit .tsx with prop type annotations")
	verify := fs.Bool("verify", defaults.Verify, "parse generated sources and warn on syntax errors")
	formatCmd := fs.String("format", defaults.FormatCommand, "formatter command (e.g. prettier)")
	minChildren := fs.Int("min-children", defaults.MinChildren, "minimum element children for repetition candidates")
	minInstances := fs.Int("min-instances", defaults.MinInstances, "minimum repetitions to form a component")
	logLevel := fs.String("log-level", string(fileCfg.logLevel()), "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", string(fileCfg.logFormat()), "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	logger := util.NewLogger(util.LoggerConfig{
		Level:  util.LogLevel(*logLevel),
		Format: util.LogFormat(*logFormat),
		Output: os.Stderr,
	})

	cfg := defaults
	cfg.OutputDir = *out
	cfg.TypeScript = *typescript
	cfg.Verify = *verify
	cfg.FormatCommand = *formatCmd
	cfg.MinChildren = *minChildren
	cfg.MinInstances = *minInstances

	c := converter.New(cfg, logger)
	rest := append([]string{*pattern}, fs.Args()...)
	return c, rest, nil
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	c, rest, err := newConverter(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	pattern := rest[0]
	root := "."
	if len(rest) > 1 {
		root = rest[1]
	}

	res, err := c.ConvertBatch(root, pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("converted %d document(s), %d component(s) extracted, %d skipped\n",
		res.Documents, res.Components, res.Skipped)
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	c, rest, err := newConverter(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	pattern := rest[0]
	root := "."
	if len(rest) > 1 {
		root = rest[1]
	}

	// Initial pass, then follow changes.
	if _, err := c.ConvertBatch(root, pattern); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}

	w, err := converter.NewWatcher(c, converter.DefaultWatchOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	if err := w.Start(root); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Block until interrupted.
	select {}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	logPath := fs.String("log", "", "JSONL tool-call log file (empty disables)")
	c, _, err := newConverter(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	toolLog, err := mcplog.NewLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		os.Exit(1)
	}
	if toolLog != nil {
		defer toolLog.Close()
	}

	srv := mcpserver.NewServer(c, toolLog)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

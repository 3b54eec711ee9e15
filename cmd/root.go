// Package cmd implements the CLI command structure for tarefas.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tarefas/internal/batch"
	"github.com/nibzard/tarefas/internal/config"
	"github.com/nibzard/tarefas/internal/logging"
	"github.com/nibzard/tarefas/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tarefas CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tarefas", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "batch":
		return batchCommand(ctx, cfg, remainingArgs)
	case "logs":
		return logsCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tarefas tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a terminal; use 'tarefas batch' for scripted input")
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.logger.Info("starting tui")
	err = ui.Run(ctx, sess.store,
		ui.WithHeader(cfg.Title, cfg.Subtitle),
		ui.WithPlaceholder(cfg.Placeholder),
		ui.WithAltScreen(cfg.AltScreen),
		ui.WithLogger(sess.logger),
	)
	sess.logger.Info("tui finished", "tasks", sess.store.Len(), "remaining", sess.store.Remaining())
	return err
}

// batchCommand applies commands from a file or stdin.
func batchCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tarefas batch", flag.ContinueOnError)
	file := fs.String("file", "-", "Command file (- for stdin)")
	fs.StringVar(file, "f", "-", "Command file (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if fs.NArg() == 1 {
		*file = fs.Arg(0)
	}

	var in io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("opening command file: %w", err)
		}
		defer f.Close()
		in = f
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.logger.Info("starting batch", "file", *file)
	if err := batch.Run(ctx, sess.store, in, os.Stdout, sess.logger); err != nil {
		sess.logger.Error("batch failed", "err", err)
		return err
	}
	return nil
}

// logsCommand prints the latest session log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tarefas logs", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List session logs instead of printing the latest")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.LogDir == "" {
		fmt.Println("Session logs are disabled (log_dir is empty).")
		return nil
	}

	if *list {
		logs, err := logging.FindLogs(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(logs) == 0 {
			fmt.Println("No log files found.")
			return nil
		}
		for _, l := range logs {
			fmt.Printf("%s  %s  %d bytes\n", l.RunID, l.ModTime.Format("2006-01-02 15:04:05"), l.Size)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No log files found.")
		return nil
	}

	fmt.Printf("Log: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// configCommand shows the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tarefas config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	printConfig(os.Stdout, cws)
	return nil
}

func printConfig(w io.Writer, cws *config.ConfigWithSources) {
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "Config files: (none)")
	} else {
		fmt.Fprintln(w, "Config files:")
		for _, f := range cws.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	fmt.Fprintln(w)

	width := 0
	for _, key := range config.Keys() {
		width = max(width, len(key))
	}
	for _, key := range config.Keys() {
		value, _ := cws.Config.Value(key)
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(w, "%-*s = %s  (%s)\n", width, key, value, cws.Sources[key])
	}
}

func versionCommand() error {
	fmt.Printf("tarefas version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tarefas - A to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tarefas [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Launch the interactive screen (default command)")
	fmt.Fprintln(w, "  batch [file]  Apply add/toggle/remove/list/count commands from a file or stdin")
	fmt.Fprintln(w, "  logs          Print the latest session log")
	fmt.Fprintln(w, "  config        Show the effective configuration and its sources")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch Options (use with 'batch' command):")
	fmt.Fprintln(w, "  -f, --file string")
	fmt.Fprintln(w, "        Command file (- for stdin, default -)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List session logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example configuration file")
}

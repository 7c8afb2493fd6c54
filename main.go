package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/smallmem/flatbench/internal/bench"
	"github.com/smallmem/flatbench/internal/config"
	"github.com/smallmem/flatbench/internal/errors"
	"github.com/smallmem/flatbench/internal/flatten"
	"github.com/smallmem/flatbench/internal/models"
	"github.com/smallmem/flatbench/internal/parser"
	"github.com/smallmem/flatbench/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	Input           string   `help:"Path to a JSON file to flatten once instead of running the suite. Piped stdin works too." short:"i" type:"path"`
	Output          string   `help:"Path to export results (suite mode) or the flat record (one-shot mode)." short:"o" type:"path"`
	Format          string   `help:"Export format for suite results." short:"f" enum:"json,csv" default:"json"`
	Counts          []int    `help:"Teamsheet sizes to benchmark." placeholder:"N"`
	Iterations      int      `help:"Runs per strategy per size."`
	Strategies      []string `help:"Subset of strategies to run (manual, eager, lazy, document, stream)." short:"s"`
	Separator       string   `help:"Path separator for one-shot flattening." default:"."`
	IndexStyle      string   `help:"Index rendering style." enum:"dotted,bracket" default:"dotted"`
	EmptyContainers string   `help:"Empty-container policy." enum:"omit,emit_empty" default:"omit"`
	Config          string   `help:"Path to a .flatbench.yml config file." short:"c" type:"path"`
	Verbose         bool     `help:"Enable progress logging." short:"v"`
	Version         bool     `help:"Show version information."`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("flatbench"),
		kong.Description("Benchmarks strategies for flattening nested sports-statistics JSON into tabular records"),
		kong.UsageOnError(),
	)

	if _, err := kongParser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("flatbench version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: flatbench --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := cfg.FlattenOptions()
	if err != nil {
		return errors.NewInputError("invalid flatten options", err)
	}

	// One-shot mode: flatten a single supplied document and print it.
	if doc, ok, err := readDocument(); ok || err != nil {
		if err != nil {
			return err
		}
		return flattenOnce(doc, opts)
	}

	return runSuite(cfg)
}

// loadConfig resolves the effective configuration: defaults, then an
// explicit or discovered config file, then CLI overrides.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("config file '%s'", path), err)
		}
		cfg = loaded
	}

	// CLI flags override the file where they were explicitly set.
	if len(CLI.Counts) > 0 {
		cfg.Counts = CLI.Counts
	}
	if CLI.Iterations > 0 {
		cfg.Iterations = CLI.Iterations
	}
	if len(CLI.Strategies) > 0 {
		cfg.Strategies = CLI.Strategies
	}
	if CLI.Separator != "." {
		cfg.Flatten.Separator = CLI.Separator
	}
	if CLI.IndexStyle != "dotted" {
		cfg.Flatten.IndexStyle = CLI.IndexStyle
	}
	if CLI.EmptyContainers != "omit" {
		cfg.Flatten.EmptyContainers = CLI.EmptyContainers
	}
	if CLI.Output != "" {
		cfg.Output.Path = CLI.Output
	}
	if CLI.Format != "json" {
		cfg.Output.Format = CLI.Format
	}
	if CLI.Verbose {
		cfg.Dev.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInputError("invalid configuration", err)
	}
	return cfg, nil
}

// readDocument reads a one-shot document from --input or piped stdin.
// ok is false when neither is present and the benchmark suite should run.
func readDocument() (models.JSONValue, bool, error) {
	if CLI.Input != "" {
		doc, err := parser.ParseFile(CLI.Input)
		return doc, true, err
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, false, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal, nothing piped: not one-shot mode.
		return nil, false, nil
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, false, errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return nil, false, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	doc, err := parser.ParseString(string(jsonData))
	return doc, true, err
}

// flattenOnce flattens one document and writes the flat record as JSON,
// to --output if given, stdout otherwise.
func flattenOnce(doc models.JSONValue, opts flatten.Options) error {
	rec, err := flatten.Flatten(doc, opts)
	if err != nil {
		return errors.NewFlattenError("failed to flatten document", err)
	}

	// encoding/json sorts map keys, so the record prints deterministically.
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.NewOutputError("failed to encode flat record", err)
	}

	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, append(out, '\n'), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Flat record written to %s\n", CLI.Output)
		return nil
	}

	_, err = fmt.Println(string(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// runSuite runs the benchmark suite and reports the results.
func runSuite(cfg *config.Config) error {
	strategies, err := bench.Lookup(cfg.Strategies)
	if err != nil {
		return err
	}

	fmt.Println("==================================================")
	fmt.Println("  flatbench: JSON flattening strategy comparison")
	fmt.Println("==================================================")
	fmt.Println()

	runner := bench.Runner{
		Counts:     cfg.Counts,
		Iterations: cfg.Iterations,
		Verbose:    cfg.Dev.Verbose,
		Log:        os.Stderr,
	}
	results := runner.Run(strategies)

	report.PrintResults(os.Stdout, results)
	report.PrintAggregate(os.Stdout, results)
	report.PrintSummary(os.Stdout, results)

	if cfg.Output.Path != "" {
		if err := report.Export(cfg.Output.Path, cfg.Output.Format, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results exported to %s\n", cfg.Output.Path)
	}
	return nil
}

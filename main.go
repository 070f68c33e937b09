package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/mcncl/strictjson/internal/config"
	"github.com/mcncl/strictjson/internal/errors"
	"github.com/mcncl/strictjson/internal/formatter"
	"github.com/mcncl/strictjson/internal/lexer"
	"github.com/mcncl/strictjson/internal/parser"
	"github.com/mcncl/strictjson/internal/token"
	"github.com/mcncl/strictjson/internal/tokenstream"
)

// CLI defines the command-line interface
var CLI struct {
	Files      []string `arg:"" optional:"" help:"Input files. If none are given, reads from stdin." type:"path"`
	Config     string   `help:"Path to a config file. Defaults to the nearest .strictjson.yml." short:"c" type:"path"`
	Output     string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Tokens     bool     `help:"Print the token stream instead of the value tree." short:"t"`
	FromTokens bool     `help:"Read inputs as token streams instead of source text." short:"T"`
	Depth      int      `help:"Starting indentation of the rendered tree. Negative keeps the configured value." default:"-1"`
	Jobs       int      `help:"Number of inputs processed at once. Zero keeps the configured value." short:"j"`
	Debug      bool     `help:"Enable debug logging." short:"d"`
	LogFormat  string   `help:"Log format: logfmt or json."`
	NoColor    bool     `help:"Disable colored error output."`
	Version    bool     `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("strictjson"),
		kong.Description("Lex, validate and render documents in a strict JSON dialect"),
		kong.UsageOnError(),
	)

	_, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("strictjson version %s\n", Version)
		return
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, config.Overrides{
		FromTokens: CLI.FromTokens,
		Tokens:     CLI.Tokens,
		Depth:      CLI.Depth,
		Jobs:       CLI.Jobs,
		Debug:      CLI.Debug,
		LogFormat:  CLI.LogFormat,
		NoColor:    CLI.NoColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Logging.Color {
		color.NoColor = true
	}

	ctx := &Context{
		Config: cfg,
		Logger: newLogger(os.Stderr, cfg.Logging),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := runWithOutput(ctx); err != nil {
		level.Debug(ctx.Logger).Log("msg", "run failed", "err", err)
		os.Exit(1)
	}
}

// runWithOutput runs and writes the results to the --output file, if any,
// instead of stdout.
func runWithOutput(ctx *Context) error {
	if len(CLI.Files) == 0 {
		if err := checkStdin(); err != nil {
			printError(ctx.Stderr, "", err)
			return err
		}
	}
	if CLI.Output == "" {
		return run(ctx, CLI.Files)
	}

	// A failed run leaves the output file untouched.
	var buf bytes.Buffer
	ctx.Stdout = &buf
	runErr := run(ctx, CLI.Files)
	if runErr != nil {
		return runErr
	}

	if err := os.WriteFile(CLI.Output, buf.Bytes(), 0o644); err != nil {
		err = errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		printError(ctx.Stderr, "", err)
		return err
	}
	level.Info(ctx.Logger).Log("msg", "output written", "path", CLI.Output)
	return nil
}

// checkStdin reports ErrNoInput when stdin is a terminal rather than a pipe.
func checkStdin() error {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	return nil
}

// result is the outcome of processing one input.
type result struct {
	name string
	out  string
	err  error
}

// run processes every input and writes the results in argument order.
// Inputs are independent: a failing input is reported on stderr and does
// not stop the others. With no files, stdin is the single input.
func run(ctx *Context, files []string) error {
	results := make([]result, max(len(files), 1))

	if len(files) == 0 {
		results[0] = processStdin(ctx)
	} else {
		var g errgroup.Group
		g.SetLimit(ctx.Config.Workers())
		for i, path := range files {
			g.Go(func() error {
				results[i] = processFile(ctx, path)
				return nil
			})
		}
		_ = g.Wait()
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			level.Debug(ctx.Logger).Log("msg", "input failed", "input", res.name, "type", errors.Classify(res.err), "err", res.err)
			printError(ctx.Stderr, res.name, res.err)
			continue
		}
		if len(files) > 1 {
			res.out = fmt.Sprintf("==> %s <==\n%s", res.name, res.out)
		}
		if _, err := io.WriteString(ctx.Stdout, res.out); err != nil {
			err = errors.NewOutputError("failed to write output", err)
			printError(ctx.Stderr, res.name, err)
			return err
		}
	}

	if failed == 0 {
		return nil
	}
	err := fmt.Errorf("%d of %d inputs failed", failed, len(results))
	if len(results) > 1 {
		color.New(color.FgRed, color.Bold).Fprintln(ctx.Stderr, err)
	}
	return err
}

func processFile(ctx *Context, path string) result {
	text, err := parser.ReadFile(path)
	if err != nil {
		return result{name: path, err: err}
	}
	out, err := process(ctx, path, text)
	return result{name: path, out: out, err: err}
}

func processStdin(ctx *Context) result {
	const name = "<stdin>"
	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return result{name: name, err: errors.NewInputError("failed to read from stdin", err)}
	}
	if len(data) == 0 {
		return result{name: name, err: errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)}
	}
	out, err := process(ctx, name, string(data))
	return result{name: name, out: out, err: err}
}

// process turns the text of one input into its output.
func process(ctx *Context, name, text string) (string, error) {
	cfg := ctx.Config
	logger := log.With(ctx.Logger, "input", name)
	level.Debug(logger).Log("msg", "processing input", "bytes", len(text), "from_tokens", cfg.Input.FromTokens)

	toks, err := readTokens(text, cfg.Input.FromTokens)
	if err != nil {
		return "", err
	}

	if cfg.Output.Tokens {
		var sb strings.Builder
		if err := tokenstream.Encode(&sb, toks); err != nil {
			return "", errors.NewOutputError("failed to encode tokens", err)
		}
		return sb.String(), nil
	}

	v, err := parser.ParseTokens(toks, parser.WithLogger(logger))
	if err != nil {
		return "", err
	}
	f := &formatter.Formatter{Depth: cfg.Output.Depth, TrailingNewline: cfg.Output.TrailingNewline}
	return f.Format(v), nil
}

func readTokens(text string, fromTokens bool) ([]token.Token, error) {
	if fromTokens {
		return tokenstream.DecodeString(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return lexer.Tokenize(text)
}

// printError writes a user-facing error line, prefixed with the input name
// when there is one.
func printError(w io.Writer, name string, err error) {
	red := color.New(color.FgRed, color.Bold)
	if name != "" {
		red.Fprintf(w, "%s: ", name)
	}
	fmt.Fprintln(w, errors.UserFriendlyError(err))
}

// newLogger builds the stderr logger described by cfg.
func newLogger(w io.Writer, cfg config.LoggingConfig) log.Logger {
	var logger log.Logger
	if cfg.Format == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	logger = level.NewFilter(logger, levelOption(cfg.Level))
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

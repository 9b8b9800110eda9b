package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/html2toml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	os.Exit(m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments and returns the exit code.
//
// A failed conversion is logged to stderr and, unless --strict is set,
// still exits 0.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	var exited bool
	parser, err := kong.New(cli,
		kong.Name("html2toml"),
		kong.Description("Convert an HTML document into TOML"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create parser: %v\n", err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if exited {
		return 0
	}

	logger := newLogger(stderr, cli.LogLevel)
	if err := m.convert(ctx, cli, stdout, logger); err != nil {
		logger.Error("conversion failed",
			"code", html2toml.ErrorCode(err),
			"err", html2toml.ErrorMessage(err),
		)
		if cli.Strict {
			return 1
		}
	}
	return 0
}

func (m *Main) convert(ctx context.Context, cli *CLI, stdout io.Writer, logger *slog.Logger) error {
	begin := time.Now()
	data, err := os.ReadFile(cli.Input)
	if err != nil {
		return html2toml.Errorf(html2toml.EINPUT, "read %s: %w", cli.Input, err)
	}
	logger.Info("read", "path", cli.Input, "bytes", len(data), "duration", time.Since(begin))

	begin = time.Now()
	var buf bytes.Buffer
	option := &html2toml.Option{
		Selector: cli.Select,
		Validate: cli.Validate,
		Logger:   logger,
	}
	if err := html2toml.Convert(&buf, bytes.NewReader(data), option); err != nil {
		return err
	}
	logger.Info("convert", "bytes", buf.Len(), "duration", time.Since(begin))

	if err := ctx.Err(); err != nil {
		return err
	}

	if cli.Stdout {
		fmt.Fprintln(stdout, buf.String())
	}

	begin = time.Now()
	if err := writeFile(cli.Output, buf.Bytes()); err != nil {
		return html2toml.Errorf(html2toml.EOUTPUT, "write %s: %w", cli.Output, err)
	}
	logger.Info("write", "path", cli.Output, "bytes", buf.Len(), "duration", time.Since(begin))
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

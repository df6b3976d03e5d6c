package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/freekieb7/rin/config"
	"github.com/freekieb7/rin/http"
	"github.com/freekieb7/rin/telemetry"
)

const name = "github.com/freekieb7/rin"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:  "rin",
		Usage: "parse raw HTTP/1.1 requests and answer them",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "env-file", Usage: "dotenv files to load"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides " + config.EnvLogLevel},
		},
		Reader: stdin,
		Writer: stdout,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a raw request and print it as JSON",
				ArgsUsage: "[file]",
				Action:    parseAction,
			},
			{
				Name:      "handle",
				Usage:     "run a raw request through the demo router and print the raw response",
				ArgsUsage: "[file]",
				Action:    handleAction,
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return cfg, err
	}
	if v := c.String("log-level"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("log-level: %w", err)
		}
	}
	return cfg, nil
}

// readInput reads the file named by the first argument, or stdin.
func readInput(c *cli.Context) ([]byte, error) {
	if c.Args().Len() == 0 || c.Args().First() == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(c.Args().First())
}

type parsedRequest struct {
	Method  string            `json:"method"`
	URI     string            `json:"uri"`
	Version string            `json:"version"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

func parseAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return err
	}

	req, err := http.ParseRequest(raw)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out := parsedRequest{
		Method:  req.Method.String(),
		URI:     req.URI,
		Version: req.Version.String(),
		Headers: make(map[string]string, req.Headers.Len()),
		Body:    string(req.Body),
	}
	for name, value := range req.Headers.All() {
		out.Headers[name.String()] = value.String()
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func handleAction(c *cli.Context) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tel, err := telemetry.Setup(c.Context, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, tel.Shutdown(shutdownCtx))
	}()

	logger := tel.Logger(name)

	engine, err := http.NewEngine(newRouter(),
		http.WithLogger(logger),
		http.WithMeterProvider(tel.MeterProvider),
	)
	if err != nil {
		return err
	}

	raw, err := readInput(c)
	if err != nil {
		return err
	}

	out, err := engine.HandleBytes(c.Context, raw)
	if errors.Is(err, http.ErrIncomplete) {
		return cli.Exit("incomplete request: the input ends inside the request head", 1)
	}
	if err != nil {
		return err
	}

	logger.Debug("response written", slog.Int("bytes", len(out)))
	_, err = c.App.Writer.Write(out)
	return err
}

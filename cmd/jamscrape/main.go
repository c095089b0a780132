package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/jamscrape/internal/cmd"
	"github.com/jimezsa/jamscrape/internal/config"
	"github.com/jimezsa/jamscrape/internal/ui"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, nil))
}

// run performs one scrape and returns the process exit status. A nil
// newCollector scrapes the real job boards.
func run(args []string, stderr io.Writer, newCollector cmd.CollectorFactory) int {
	cli := &cmd.CLI{}

	parser, err := cmd.NewParser(cli, buildVersion())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fallbackUI := ui.New(stderr, ui.NormalizeColorMode(os.Getenv("JAMSCRAPE_COLOR")))
		fallbackUI.Errorf("%v", err)
		return 1
	}

	userInterface := ui.New(stderr, ui.NormalizeColorMode(cli.Color))

	cfg, err := config.Load()
	if err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(stderr).With().Timestamp().Logger()

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx := &cmd.Context{
		Ctx:          signalCtx,
		UI:           userInterface,
		Config:       cfg,
		Logger:       logger,
		NewCollector: newCollector,
	}

	if err := kctx.Run(runCtx); err != nil {
		var startup *cmd.StartupError
		switch {
		case errors.As(err, &startup):
			userInterface.Errorf("Error: %v", err)
		case !cmd.Reported(err):
			userInterface.Errorf("%v", err)
		}
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/rpgbaker/internal/app"
	"github.com/vk/rpgbaker/internal/cli"
	"github.com/vk/rpgbaker/internal/config"
	"github.com/vk/rpgbaker/internal/hcl"
	"github.com/vk/rpgbaker/internal/jsonrecipe"
)

// main is the entrypoint for the rpgbaker application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on registry validation errors; report them as a
	// regular failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	formats := config.NewDispatcher()
	formats.Register(".hcl", hcl.New())
	formats.Register(".json", jsonrecipe.New())

	rpgApp := app.NewApp(outW, errW, appConfig, formats)

	// An interrupt stops the run before its next statement.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rpgApp.Run(ctx, appConfig)
}

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func main() {
	setupLogging()
	ctx := zerolog.DefaultContextLogger.WithContext(context.Background())

	rootCmd := newRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// setupLogging configures zerolog before flag parsing; --debug raises the
// level later.
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	loadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "twinicodo <text>",
		Short: "Turn a Twitter search into a niconico comment XML file",
		Long: `Search Twitter for <text> and write every tweet found as a niconico
comment, timed relative to the first tweet.

Credentials are read from the config file, the TWINICODO_* environment
variables or .env, and are prompted for when missing.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.verbose)
			opts.text = args[0]
			a, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.since, "since", "s", "", "only tweets on or after this date (YYYY-MM-DD)")
	f.StringVarP(&opts.until, "until", "u", "", "only tweets before this date (YYYY-MM-DD)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <text>_<since>_<until>.xml)")
	f.BoolVar(&opts.reset, "reset", false, "ask for credentials again")
	f.StringVar(&opts.archive, "archive", "", "also store fetched tweets in this SQLite database")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
	"github.com/anatolykoptev/go-twinicodo/internal/archive"
	"github.com/anatolykoptev/go-twinicodo/internal/config"
	"github.com/anatolykoptev/go-twinicodo/internal/fsutil"
	"github.com/anatolykoptev/go-twinicodo/internal/prompt"
	"github.com/anatolykoptev/go-twinicodo/nicodo"
)

type options struct {
	text    string
	since   string
	until   string
	output  string
	archive string
	reset   bool
	verbose bool
}

func (o options) query() twinicodo.Query {
	return twinicodo.Query{Text: o.text, Since: o.since, Until: o.until}
}

// searcher is the part of *twinicodo.Client the command uses.
type searcher interface {
	SearchAll(ctx context.Context, q twinicodo.Query, onPage func([]*twinicodo.Tweet)) ([]*twinicodo.Tweet, error)
	Credentials() twinicodo.Credentials
}

type app struct {
	out         io.Writer
	configPath  string
	ask         func() (prompt.Answers, error)
	newSearcher func(cfg *config.Config) (searcher, error)
}

func newApp(out io.Writer) (*app, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return &app{
		out:         out,
		configPath:  path,
		ask:         prompt.Run,
		newSearcher: newClient,
	}, nil
}

func newClient(cfg *config.Config) (searcher, error) {
	c, err := twinicodo.NewClient(twinicodo.ClientConfig{
		Credentials: cfg.Credentials(),
		Proxy:       cfg.Proxy,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// run fetches every page, converts the tweets and writes the XML file.
// Nothing is written to disk before the search has completed.
func (a *app) run(ctx context.Context, opts options) error {
	cfg, err := a.credentials(opts.reset)
	if err != nil {
		return err
	}
	client, err := a.newSearcher(cfg)
	if err != nil {
		return err
	}

	q := opts.query()
	slog.Info("searching", slog.String("query", q.String()))
	tweets, err := client.SearchAll(ctx, q, nil)
	if err != nil {
		return fmt.Errorf("search %q: %w", q.String(), err)
	}
	a.persistRotatedCT0(cfg, client.Credentials())

	chats := nicodo.NewTransformer(nicodo.NewCleaner()).Chats(tweets)
	if len(chats) == 0 {
		fmt.Fprintln(a.out, "No tweet found.")
		return nil
	}

	if opts.archive != "" {
		if err := archiveTweets(ctx, opts.archive, q, tweets); err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = fsutil.OutputName(q)
	}
	if err := writeChats(path, chats); err != nil {
		return err
	}
	slog.Debug("xml written", slog.String("path", path))
	fmt.Fprintf(a.out, "%d tweets are saved!\n", len(chats))
	return nil
}

// credentials loads the stored config, applies env overrides and prompts when the
// result is incomplete or a reset was requested. Only prompted values and the stored
// proxy are written back; env overrides stay in memory.
func (a *app) credentials(reset bool) (*config.Config, error) {
	stored, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	cfg := *stored
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if !reset && cfg.Init && cfg.Valid() {
		return &cfg, nil
	}

	ans, err := a.ask()
	if err != nil {
		return nil, err
	}
	fresh, err := config.FromCookie(ans.AuthorizationToken, ans.CSRFToken, ans.Cookie)
	if err != nil {
		return nil, err
	}
	fresh.Proxy = stored.Proxy
	if err := fresh.Store(a.configPath); err != nil {
		return nil, err
	}
	slog.Info("credentials saved", slog.String("path", a.configPath))

	active := *fresh
	active.Proxy = cfg.Proxy
	return &active, nil
}

// persistRotatedCT0 stores a ct0 the server replaced during the run, on top of the
// config file as it is on disk. A ct0 that came from the environment is not stored.
// Failing to store it only costs a stale cookie next time.
func (a *app) persistRotatedCT0(cfg *config.Config, creds twinicodo.Credentials) {
	if creds.Cookie.CT0 == cfg.CookieCT0 {
		return
	}
	stored, err := config.Load(a.configPath)
	if err != nil {
		slog.Warn("reload config for ct0 rotation failed", slog.Any("error", err))
		return
	}
	if stored.CookieCT0 != cfg.CookieCT0 {
		slog.Debug("rotated ct0 not stored, cookie came from the environment")
		return
	}
	stored.CookieCT0 = creds.Cookie.CT0
	if stored.CSRFToken == cfg.CSRFToken {
		stored.CSRFToken = creds.CSRFToken
	}
	if err := stored.Store(a.configPath); err != nil {
		slog.Warn("store rotated ct0 failed", slog.Any("error", err))
	}
}

func archiveTweets(ctx context.Context, path string, q twinicodo.Query, tweets []*twinicodo.Tweet) error {
	db, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, q.String(), tweets)
	if err != nil {
		return err
	}
	slog.Info("tweets archived", slog.String("path", path), slog.Int64("run", runID), slog.Int("tweets", len(tweets)))
	return nil
}

func writeChats(path string, chats []nicodo.Chat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := nicodo.WriteXML(f, chats); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

package twinicodo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// SearchIterator walks the adaptive search timeline one page per Next call.
// Page N+1 is only requested after page N's cursor is known.
type SearchIterator struct {
	c        *Client
	query    string
	cursor   string
	finished bool
	pages    int
}

// Search starts a paginated search. No request is made until Next is called.
func (c *Client) Search(q Query) *SearchIterator {
	return &SearchIterator{c: c, query: q.String()}
}

// Next fetches and decodes the next page. A page with no tweets or without a
// bottom cursor is still returned; the call after it returns ErrNoMorePages.
// Any error ends the iteration.
func (it *SearchIterator) Next(ctx context.Context) ([]*Tweet, error) {
	if it.finished {
		return nil, ErrNoMorePages
	}

	url := searchURL(it.c.cfg.BaseURL, it.query, it.cursor)
	body, err := it.c.doGET(ctx, adaptiveSearchEndpoint, url)
	if err != nil {
		it.finished = true
		return nil, err
	}

	page, err := parseAdaptiveSearch(body)
	if err != nil {
		it.finished = true
		return nil, err
	}
	it.pages++

	if len(page.Tweets) == 0 || page.NextCursor == "" {
		it.finished = true
		slog.Debug("search exhausted",
			slog.Int("page", it.pages),
			slog.Int("tweets", len(page.Tweets)),
			slog.Bool("cursor", page.NextCursor != ""))
	}
	it.cursor = page.NextCursor
	return page.Tweets, nil
}

// Pages returns how many pages were fetched so far.
func (it *SearchIterator) Pages() int { return it.pages }

// SearchAll drains a search and returns every tweet across all pages in page order.
// onPage, if non-nil, is called after each page.
func (c *Client) SearchAll(ctx context.Context, q Query, onPage func(page []*Tweet)) ([]*Tweet, error) {
	it := c.Search(q)
	var all []*Tweet
	for {
		page, err := it.Next(ctx)
		if errors.Is(err, ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, err
		}
		logPage(page)
		if onPage != nil {
			onPage(page)
		}
		all = append(all, page...)
	}
	slog.Info("search complete", slog.String("query", q.String()), slog.Int("pages", it.Pages()), slog.Int("tweets", len(all)))
	return all, nil
}

// logPage prints a one-line progress summary built from the page's first tweet.
func logPage(page []*Tweet) {
	if len(page) == 0 {
		return
	}
	first := page[0]
	var user, at string
	if first.User != nil {
		user = first.User.ScreenName
	}
	if !first.CreatedAt.IsZero() {
		at = first.CreatedAt.Format(time.RFC3339)
	}
	slog.Info("tweets fetched",
		slog.Int("count", len(page)),
		slog.String("user", user),
		slog.String("id", first.ID),
		slog.String("created_at", at),
		slog.String("text", preview(first.FullText, 20)))
}

// preview returns the first n runes of s with newlines removed.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return strings.ReplaceAll(string(r), "\n", "")
}

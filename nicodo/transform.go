package nicodo

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

// Cleaner strips hashtags and URLs from tweet text. Build one with NewCleaner
// and share it; the patterns are compiled once.
type Cleaner struct {
	hashtag *regexp.Regexp
	url     *regexp.Regexp
}

// NewCleaner compiles the hashtag and URL patterns.
func NewCleaner() *Cleaner {
	return &Cleaner{
		// \w and \S in RE2 are ASCII only; tweets are commonly Japanese.
		// Tag characters: letters, letter numbers, marks, decimal digits,
		// connector punctuation and the ZWNJ/ZWJ join controls.
		hashtag: regexp.MustCompile(`#[\p{L}\p{Nl}\p{M}\p{Nd}\p{Pc}\x{200C}\x{200D}]+[ \t]*`),
		url:     regexp.MustCompile(`(?:https?|ftp)://[^\s\p{Z}]+[ \t]*`),
	}
}

// Clean removes hashtags, then URLs, then surrounding whitespace.
func (c *Cleaner) Clean(s string) string {
	s = strings.TrimSpace(c.hashtag.ReplaceAllString(s, ""))
	return strings.TrimSpace(c.url.ReplaceAllString(s, ""))
}

// Transformer turns decoded tweets into a chat sequence.
type Transformer struct {
	cleaner *Cleaner
}

// NewTransformer returns a Transformer using cleaner for text cleanup.
func NewTransformer(cleaner *Cleaner) *Transformer {
	return &Transformer{cleaner: cleaner}
}

// unixMilli returns the tweet's creation instant in unix milliseconds, 0 when unknown.
func unixMilli(tw *twinicodo.Tweet) int64 {
	if tw.CreatedAt.IsZero() {
		return 0
	}
	return tw.CreatedAt.UnixMilli()
}

// Chats sorts tweets by creation time and maps them to chats. The first chat is the
// origin: its Vpos is 0 and every later Vpos is measured from its Date.
// The input slice is not modified.
func (t *Transformer) Chats(tweets []*twinicodo.Tweet) []Chat {
	sorted := slices.Clone(tweets)
	slices.SortStableFunc(sorted, func(a, b *twinicodo.Tweet) int {
		return cmp.Compare(unixMilli(a), unixMilli(b))
	})

	chats := make([]Chat, 0, len(sorted))
	var origin int64
	for i, tw := range sorted {
		date := unixMilli(tw) / 1000
		if i == 0 {
			origin = date
		}
		c := Chat{
			Date:    date,
			Vpos:    date - origin,
			ID:      tw.ID,
			Content: t.cleaner.Clean(tw.FullText),
		}
		if tw.User != nil {
			c.UserID = tw.User.ScreenName
		}
		chats = append(chats, c)
	}
	return chats
}

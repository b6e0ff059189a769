package nicodo

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

func TestClean(t *testing.T) {
	c := NewCleaner()
	tests := []struct {
		in   string
		want string
	}{
		{"#tag hello http://example.com world", "hello world"},
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"見た #NHK 最高", "見た 最高"},
		{"#日本語タグ だけ", "だけ"},
		{"see https://t.co/abc", "see"},
		{"ftp://host/file done", "done"},
		{"#only", ""},
		{"https://t.co/x", ""},
		{"a&b <c>", "a&b <c>"},
		{"multi\nline #tag", "multi\nline"},
		{"https://t.co/x\u3000本文", "本文"},
		{"https://t.co/abc\u00a0after", "after"},
		{"see https://t.co/abc after", "see after"},
		{"#² squared", "#² squared"},
		{"#a\u200db joined", "joined"},
		{"#tag123 x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Clean(tt.in))
		})
	}
}

func tweetAt(ms int64, text string) *twinicodo.Tweet {
	return &twinicodo.Tweet{
		ID:        strconv.FormatInt(ms, 10),
		CreatedAt: time.UnixMilli(ms),
		FullText:  text,
	}
}

func TestChats_SortsAndOffsets(t *testing.T) {
	tweets := []*twinicodo.Tweet{
		tweetAt(100_000, "b"),
		tweetAt(50_000, "a"),
		tweetAt(150_000, "c"),
	}
	chats := NewTransformer(NewCleaner()).Chats(tweets)
	require.Len(t, chats, 3)

	var dates, vpos []int64
	var text []string
	for _, c := range chats {
		dates = append(dates, c.Date)
		vpos = append(vpos, c.Vpos)
		text = append(text, c.Content)
	}
	assert.Equal(t, []int64{50, 100, 150}, dates)
	assert.Equal(t, []int64{0, 50, 100}, vpos)
	assert.Equal(t, []string{"a", "b", "c"}, text)

	assert.Equal(t, "100000", tweets[0].ID, "input order is untouched")
}

func TestChats_StableForEqualTimes(t *testing.T) {
	tweets := []*twinicodo.Tweet{
		tweetAt(1_000, "first"),
		tweetAt(1_000, "second"),
		{ID: "x", FullText: "unknown time"},
	}
	chats := NewTransformer(NewCleaner()).Chats(tweets)
	require.Len(t, chats, 3)
	assert.Equal(t, "unknown time", chats[0].Content)
	assert.Equal(t, int64(0), chats[0].Date)
	assert.Equal(t, "first", chats[1].Content)
	assert.Equal(t, "second", chats[2].Content)
	assert.Equal(t, int64(1), chats[2].Vpos)
}

func TestChats_Author(t *testing.T) {
	tw := tweetAt(1_000, "hi")
	tw.User = &twinicodo.User{ScreenName: "alice"}
	orphan := tweetAt(2_000, "hey")

	chats := NewTransformer(NewCleaner()).Chats([]*twinicodo.Tweet{tw, orphan})
	assert.Equal(t, "alice", chats[0].UserID)
	assert.Equal(t, "1000", chats[0].ID)
	assert.Empty(t, chats[1].UserID)
}

func TestChats_Empty(t *testing.T) {
	assert.Empty(t, NewTransformer(NewCleaner()).Chats(nil))
}

package twinicodo

import (
	"encoding/json"
	"errors"
	"testing"
)

const adaptiveBody = `{
	"globalObjects": {
		"tweets": {
			"1289960487912783872": {
				"created_at": "Sun Aug 02 16:25:21 +0000 2020",
				"id": 1289960487912783872,
				"id_str": "1289960487912783872",
				"full_text": "hello #tag https://t.co/x",
				"user_id": 42,
				"user_id_str": "42",
				"lang": "ja"
			},
			"1289960000000000000": {
				"id_str": "1289960000000000000",
				"full_text": "orphan",
				"user_id_str": "7"
			}
		},
		"users": {
			"42": {"id": 42, "id_str": "42", "name": "Alice", "screen_name": "alice", "followers_count": 3}
		}
	},
	"timeline": {
		"id": "search-1",
		"instructions": [
			{"addEntries": {"entries": [
				{"entryId": "sq-I-t-1289960487912783872", "sortIndex": "2", "content": {"item": {}}},
				{"entryId": "sq-cursor-top", "sortIndex": "999", "content": {"operation": {"cursor": {"value": "top", "cursorType": "Top"}}}},
				{"entryId": "sq-cursor-bottom", "sortIndex": "0", "content": {"operation": {"cursor": {"value": "scroll:next", "cursorType": "Bottom"}}}}
			]}}
		]
	}
}`

func TestParseAdaptiveSearch(t *testing.T) {
	page, err := parseAdaptiveSearch([]byte(adaptiveBody))
	if err != nil {
		t.Fatal(err)
	}
	if page.NextCursor != "scroll:next" {
		t.Fatalf("expected bottom cursor, got %q", page.NextCursor)
	}
	if len(page.Tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(page.Tweets))
	}

	tw := page.Tweets[0]
	if tw.ID != "1289960487912783872" || tw.FullText != "hello #tag https://t.co/x" {
		t.Fatalf("unexpected tweet: %+v", tw)
	}
	if tw.CreatedAt.UnixMilli() != 1596385521282 {
		t.Fatalf("expected created_at 1596385521282, got %d", tw.CreatedAt.UnixMilli())
	}
	if tw.User == nil || tw.User.ScreenName != "alice" || tw.User.ID != 42 {
		t.Fatalf("expected author alice, got %+v", tw.User)
	}
	if raw, ok := tw.User.Extra.Get("followers_count"); !ok || string(raw) != "3" {
		t.Fatalf("expected followers_count passthrough, got %q", raw)
	}

	if page.Tweets[1].User != nil {
		t.Fatal("expected unresolved author for orphan tweet")
	}
}

func TestParseAdaptiveSearch_PreservesExtraOrder(t *testing.T) {
	page, err := parseAdaptiveSearch([]byte(adaptiveBody))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range page.Tweets[0].Extra {
		names = append(names, f.Name)
	}
	want := []string{"created_at", "id", "user_id", "lang"}
	if len(names) != len(want) {
		t.Fatalf("extra fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("extra fields = %v, want %v", names, want)
		}
	}

	out, err := json.Marshal(page.Tweets[0])
	if err != nil {
		t.Fatal(err)
	}
	var back Tweet
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if raw, _ := back.Extra.Get("id"); string(raw) != "1289960487912783872" {
		t.Fatalf("numeric id should survive verbatim, got %s", raw)
	}
}

func TestParseAdaptiveSearch_ReplaceEntryCursor(t *testing.T) {
	body := `{
		"globalObjects": {"tweets": {"1289960487912783872": {"id_str": "1289960487912783872", "full_text": "x", "user_id_str": "1"}}, "users": {}},
		"timeline": {"instructions": [
			{"addEntries": {"entries": []}},
			{"replaceEntry": {"entryIdToReplace": "sq-cursor-bottom", "entry": {"entryId": "sq-cursor-bottom", "content": {"operation": {"cursor": {"value": "scroll:replaced", "cursorType": "Bottom"}}}}}}
		]}
	}`
	page, err := parseAdaptiveSearch([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if page.NextCursor != "scroll:replaced" {
		t.Fatalf("expected replaced cursor, got %q", page.NextCursor)
	}
}

func TestParseAdaptiveSearch_NoCursor(t *testing.T) {
	body := `{"globalObjects": {"tweets": {}, "users": {}}, "timeline": {"instructions": []}}`
	page, err := parseAdaptiveSearch([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Tweets) != 0 || page.NextCursor != "" {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestParseAdaptiveSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"globalObjects":`},
		{"missing globalObjects", `{"errors":[{"code":32,"message":"Could not authenticate you."}]}`},
		{"bad tweet id", `{"globalObjects":{"tweets":{"x":{"id_str":"not-a-number","full_text":"x"}},"users":{}},"timeline":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAdaptiveSearch([]byte(tt.body))
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestDecodeSnowflake(t *testing.T) {
	ts, err := DecodeSnowflake("1289960487912783872")
	if err != nil {
		t.Fatal(err)
	}
	if ts.UnixMilli() != 1596385521282 {
		t.Fatalf("expected 1596385521282, got %d", ts.UnixMilli())
	}

	if _, err := DecodeSnowflake("12a"); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if _, err := DecodeSnowflake(""); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode for empty id, got %v", err)
	}
}

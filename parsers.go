package twinicodo

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/tidwall/gjson"
)

// cursorBottomEntryID is the timeline entry carrying the cursor of the next page.
const cursorBottomEntryID = "sq-cursor-bottom"

// searchPage is one decoded adaptive search response.
type searchPage struct {
	Tweets     []*Tweet
	NextCursor string // empty when the page has no bottom cursor
}

// --- Timeline types ---

type adaptiveTimeline struct {
	ID           string                `json:"id"`
	Instructions []adaptiveInstruction `json:"instructions"`
}

type adaptiveInstruction struct {
	AddEntries *struct {
		Entries []adaptiveEntry `json:"entries"`
	} `json:"addEntries"`
	ReplaceEntry *struct {
		EntryIDToReplace string        `json:"entryIdToReplace"`
		Entry            adaptiveEntry `json:"entry"`
	} `json:"replaceEntry"`
}

type adaptiveEntry struct {
	EntryID   string `json:"entryId"`
	SortIndex string `json:"sortIndex"`
	Content   struct {
		Operation *struct {
			Cursor struct {
				Value      string `json:"value"`
				CursorType string `json:"cursorType"`
			} `json:"cursor"`
		} `json:"operation"`
	} `json:"content"`
}

// entries returns the entries an instruction adds or, failing that, the one it replaces.
func (in adaptiveInstruction) entries() []adaptiveEntry {
	if in.AddEntries != nil {
		return in.AddEntries.Entries
	}
	if in.ReplaceEntry != nil {
		return []adaptiveEntry{in.ReplaceEntry.Entry}
	}
	return nil
}

// nextCursor finds the sq-cursor-bottom entry and returns its cursor value.
func (tl adaptiveTimeline) nextCursor() string {
	for _, in := range tl.Instructions {
		for _, e := range in.entries() {
			if e.EntryID != cursorBottomEntryID {
				continue
			}
			if e.Content.Operation == nil {
				return ""
			}
			return e.Content.Operation.Cursor.Value
		}
	}
	return ""
}

// parseAdaptiveSearch decodes an adaptive search response. Tweets keep the order of
// the response's tweet map; authors are resolved through its user map.
func parseAdaptiveSearch(body []byte) (*searchPage, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{What: "search response", Err: errors.New("invalid JSON")}
	}

	var raw struct {
		GlobalObjects *struct {
			Users map[string]*User `json:"users"`
		} `json:"globalObjects"`
		Timeline adaptiveTimeline `json:"timeline"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{What: "search response", Err: err}
	}
	if raw.GlobalObjects == nil {
		msg := "missing globalObjects"
		if c := classifyError(body); c != errNone {
			msg += ": " + c.String()
		}
		return nil, &DecodeError{What: "search response", Err: errors.New(msg)}
	}

	page := &searchPage{NextCursor: raw.Timeline.nextCursor()}

	var decodeErr error
	gjson.GetBytes(body, "globalObjects.tweets").ForEach(func(_, v gjson.Result) bool {
		tw := new(Tweet)
		if err := tw.UnmarshalJSON([]byte(v.Raw)); err != nil {
			decodeErr = err
			return false
		}
		if u, ok := raw.GlobalObjects.Users[tw.UserID]; ok && u != nil {
			tw.User = u
		} else {
			slog.Debug("tweet author not in page", slog.String("tweet", tw.ID), slog.String("user", tw.UserID))
		}
		page.Tweets = append(page.Tweets, tw)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return page, nil
}

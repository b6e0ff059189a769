package twinicodo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Tweet is one search result as decoded from the adaptive search response.
type Tweet struct {
	ID        string
	CreatedAt time.Time // decoded from ID; zero when unknown
	FullText  string
	UserID    string
	User      *User  // resolved from the page's user map, nil on a miss
	Extra     Fields // every other field of the raw tweet, in document order
}

// User is the author record from the response's user map.
type User struct {
	ID         uint64
	IDStr      string
	Name       string
	ScreenName string
	Extra      Fields
}

// Field is a raw JSON member outside the modelled schema.
type Field struct {
	Name  string
	Value json.RawMessage
}

// Fields keeps unmodelled JSON members in document order.
type Fields []Field

// Get returns the raw value of the named field.
func (f Fields) Get(name string) (json.RawMessage, bool) {
	for _, fl := range f {
		if fl.Name == name {
			return fl.Value, true
		}
	}
	return nil, false
}

var (
	tweetKnownFields = map[string]bool{"id_str": true, "full_text": true, "user_id_str": true}
	userKnownFields  = map[string]bool{"id": true, "id_str": true, "name": true, "screen_name": true}
)

// collectExtra returns the members of obj not listed in known, in document order.
func collectExtra(obj gjson.Result, known map[string]bool) Fields {
	var extra Fields
	obj.ForEach(func(k, v gjson.Result) bool {
		if !known[k.String()] {
			extra = append(extra, Field{Name: k.String(), Value: json.RawMessage(v.Raw)})
		}
		return true
	})
	return extra
}

// UnmarshalJSON decodes a raw tweet and derives CreatedAt from its snowflake ID.
func (t *Tweet) UnmarshalJSON(data []byte) error {
	var raw struct {
		IDStr     string `json:"id_str"`
		FullText  string `json:"full_text"`
		UserIDStr string `json:"user_id_str"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{What: "tweet", Err: err}
	}
	createdAt, err := DecodeSnowflake(raw.IDStr)
	if err != nil {
		return err
	}
	*t = Tweet{
		ID:        raw.IDStr,
		CreatedAt: createdAt,
		FullText:  raw.FullText,
		UserID:    raw.UserIDStr,
		Extra:     collectExtra(gjson.ParseBytes(data), tweetKnownFields),
	}
	return nil
}

// MarshalJSON re-emits the raw tweet: modelled fields first, then Extra in order.
// The resolved User is not part of the raw tweet and is not emitted.
func (t Tweet) MarshalJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "id_str", t.ID); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "full_text", t.FullText); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "user_id_str", t.UserID); err != nil {
		return nil, err
	}
	return appendExtra(out, t.Extra)
}

// UnmarshalJSON decodes a user record, keeping unmodelled fields.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         uint64 `json:"id"`
		IDStr      string `json:"id_str"`
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{What: "user", Err: err}
	}
	*u = User{
		ID:         raw.ID,
		IDStr:      raw.IDStr,
		Name:       raw.Name,
		ScreenName: raw.ScreenName,
		Extra:      collectExtra(gjson.ParseBytes(data), userKnownFields),
	}
	return nil
}

// MarshalJSON re-emits the user record with its unmodelled fields.
func (u User) MarshalJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	for _, kv := range []struct {
		key string
		val any
	}{{"id", u.ID}, {"id_str", u.IDStr}, {"name", u.Name}, {"screen_name", u.ScreenName}} {
		if out, err = sjson.SetBytes(out, kv.key, kv.val); err != nil {
			return nil, err
		}
	}
	return appendExtra(out, u.Extra)
}

func appendExtra(out []byte, extra Fields) ([]byte, error) {
	var err error
	for _, f := range extra {
		out, err = sjson.SetRawBytes(out, gjson.Escape(f.Name), f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return out, nil
}

// Package nicodo converts tweets into niconico comment-track chats and writes
// them as the XML document comment players load.
package nicodo

// Chat is one timed comment.
type Chat struct {
	Date    int64  // creation instant, unix seconds
	Vpos    int64  // seconds since the first chat of the sequence
	UserID  string // author screen name, empty when unresolved
	ID      string // tweet ID
	Mail    string // comment command field, unused here
	Content string
}

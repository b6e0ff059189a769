package twinicodo

import "strings"

// Query is a search: free text plus optional since/until date bounds (YYYY-MM-DD).
type Query struct {
	Text  string
	Since string
	Until string
}

// String renders the query the way the search box does: "<text> since:<d> until:<d>".
func (q Query) String() string {
	parts := []string{q.Text}
	if q.Since != "" {
		parts = append(parts, "since:"+q.Since)
	}
	if q.Until != "" {
		parts = append(parts, "until:"+q.Until)
	}
	return strings.Join(parts, " ")
}

package twinicodo

import (
	"net/url"
	"strings"
)

const (
	twitterAPIURL = "https://api.twitter.com"

	// adaptiveSearchEndpoint names the search operation in logs, metrics and the rate limiter.
	adaptiveSearchEndpoint = "AdaptiveSearch"
	adaptiveSearchPath     = "/2/search/adaptive.json"
)

// searchParams are the constant parameters the web app sends with every adaptive search.
var searchParams = [][2]string{
	{"include_profile_interstitial_type", "1"},
	{"include_blocking", "1"},
	{"include_blocked_by", "1"},
	{"include_followed_by", "1"},
	{"include_want_retweets", "1"},
	{"include_mute_edge", "1"},
	{"include_can_dm", "1"},
	{"include_can_media_tag", "1"},
	{"skip_status", "1"},
	{"cards_platform", "Web-12"},
	{"include_cards", "1"},
	{"include_ext_alt_text", "true"},
	{"include_quote_count", "true"},
	{"include_reply_count", "1"},
	{"tweet_mode", "extended"},
	{"include_entities", "true"},
	{"include_user_entities", "true"},
	{"include_ext_media_color", "true"},
	{"include_ext_media_availability", "true"},
	{"send_error_codes", "true"},
	{"simple_quoted_tweet", "true"},
	{"tweet_search_mode", "live"},
	{"count", "100"}, // defaults to 20
	{"query_source", "typed_query"},
	{"pc", "1"},
	{"spelling_corrections", "1"},
	{"ext", "mediaStats%2ChighlightedLabel"},
}

// searchURL builds the adaptive search URL. The fixed parameters keep their order;
// q and cursor are appended after them.
func searchURL(base, query, cursor string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(adaptiveSearchPath)
	sb.WriteByte('?')
	for i, p := range searchParams {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p[0]))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p[1]))
	}
	sb.WriteString("&q=")
	sb.WriteString(url.QueryEscape(query))
	if cursor != "" {
		sb.WriteString("&cursor=")
		sb.WriteString(url.QueryEscape(cursor))
	}
	return sb.String()
}

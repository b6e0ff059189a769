package twinicodo

import (
	"strconv"
	"time"
)

// twitterEpochMillis is the custom epoch of tweet snowflake IDs (2010-11-04T01:42:54.657Z).
const twitterEpochMillis = 1288834974657

// DecodeSnowflake returns the creation instant encoded in the high bits of a tweet ID.
func DecodeSnowflake(id string) (time.Time, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return time.Time{}, &DecodeError{What: "tweet id " + strconv.Quote(id), Err: err}
	}
	return time.UnixMilli((n >> 22) + twitterEpochMillis).UTC(), nil
}

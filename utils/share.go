// utils/share.go - Social share link construction
package utils

import "net/url"

// TweetIntentURL wraps an announcement payload in a tweet intent link.
// The payload text itself is built by the achievement service; this is
// only the transport.
func TweetIntentURL(text string) string {
	return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text)
}

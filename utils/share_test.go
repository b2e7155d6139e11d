package utils

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetIntentURL(t *testing.T) {
	link := TweetIntentURL("🎉 Run a marathon achieved! +70 points\n\n#LifeTrack")

	assert.True(t, strings.HasPrefix(link, "https://twitter.com/intent/tweet?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "🎉 Run a marathon achieved! +70 points\n\n#LifeTrack", parsed.Query().Get("text"))
}

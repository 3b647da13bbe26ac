package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeIDValidForms(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	cases := []string{
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://www.youtube.com/watch?app=desktop&v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ#t=30",
	}
	for _, raw := range cases {
		assert.Equal(t, id, YouTubeID(raw), "url: %s", raw)
	}
}

func TestYouTubeIDInvalid(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"https://vimeo.com/watch?v=dQw4w9WgXcQ",
		"https://notyoutube.com/watch?v=dQw4w9WgXcQ",
		"https://fakeyoutu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=",
		"https://www.youtube.com/watch?v=tooshort",
		"https://youtu.be/thisistoolongtobeanid",
	}
	for _, raw := range cases {
		assert.Empty(t, YouTubeID(raw), "url: %s", raw)
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ",
		YouTubeEmbedURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.Empty(t, YouTubeEmbedURL("https://example.com/video"))
}

func TestSpotifyPathValidForms(t *testing.T) {
	cases := map[string]string{
		"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC":    "track/4uLU6hMCjMI75M1A2tKUQC",
		"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M": "playlist/37i9dQZF1DXcBWIGoYBM5M",
		"https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE":    "album/6dVIqQ8qmQ5GBnJ9shOYGE",
		"open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc":     "track/4uLU6hMCjMI75M1A2tKUQC",
	}
	for raw, want := range cases {
		assert.Equal(t, want, SpotifyPath(raw), "url: %s", raw)
	}
}

func TestSpotifyPathInvalid(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/track/4uLU6hMCjMI75M1A2tKUQC",
		"https://notspotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
		"https://open.spotify.com/artist/0OdUWJ0sBjDrqHygGUXeCF",
		"https://open.spotify.com/track/",
	}
	for _, raw := range cases {
		assert.Empty(t, SpotifyPath(raw), "url: %s", raw)
	}
}

func TestSpotifyEmbedURL(t *testing.T) {
	assert.Equal(t, "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC",
		SpotifyEmbedURL("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"))
	assert.Empty(t, SpotifyEmbedURL("https://example.com/track/x"))
}

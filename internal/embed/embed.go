// Package embed resolves media URLs into the minimal identifiers needed
// to build embeddable player sources. All functions are pure; an
// unparsable URL yields an empty result and the caller renders nothing.
package embed

import "regexp"

var (
	// Accepts youtu.be/ID, youtube.com/embed/ID, youtube.com/v/ID and
	// youtube.com/watch?v=ID (with any extra query params). Video IDs
	// are exactly 11 characters. The leading boundary keeps lookalike
	// hosts like notyoutube.com from matching.
	youtubeRe = regexp.MustCompile(`(?:^|[./])(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?(?:[^#\s]*&)?v=))([A-Za-z0-9_-]{11})(?:[&?#\s]|$)`)

	spotifyRe = regexp.MustCompile(`(?:^|[./])spotify\.com/(track|playlist|album)/([A-Za-z0-9]+)`)
)

// YouTubeID extracts the 11-character video ID from a YouTube URL.
// Returns "" when the URL does not match any supported form.
func YouTubeID(raw string) string {
	m := youtubeRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// YouTubeEmbedURL builds an embeddable player URL, or "" when the raw
// URL is unparsable.
func YouTubeEmbedURL(raw string) string {
	id := YouTubeID(raw)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// SpotifyPath extracts "{track|playlist|album}/{id}" from a Spotify
// URL. Returns "" when the URL does not match.
func SpotifyPath(raw string) string {
	m := spotifyRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1] + "/" + m[2]
}

// SpotifyEmbedURL builds an embeddable player URL, or "" when the raw
// URL is unparsable.
func SpotifyEmbedURL(raw string) string {
	path := SpotifyPath(raw)
	if path == "" {
		return ""
	}
	return "https://open.spotify.com/embed/" + path
}

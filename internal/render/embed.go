package render

import (
	"net/url"
	"strings"
)

type Provider string

const (
	ProviderYouTube Provider = "youtube"
	ProviderVimeo   Provider = "vimeo"
	ProviderGeneric Provider = "generic"
)

// ResolveEmbed classifies a pasted video/page URL and returns the URL an iframe should
// load. YouTube and Vimeo watch pages are rewritten to their player URLs. ok is false for
// anything that is not an absolute http(s) URL.
func ResolveEmbed(raw string) (provider Provider, embedURL string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", false
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		var id string
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live"):
			id = segments[1]
		}
		if id != "" {
			return ProviderYouTube, "https://www.youtube.com/embed/" + url.PathEscape(id), true
		}
	case "youtu.be":
		if len(segments) == 1 && segments[0] != "" {
			return ProviderYouTube, "https://www.youtube.com/embed/" + url.PathEscape(segments[0]), true
		}
	case "vimeo.com":
		if len(segments) >= 1 && isDigits(segments[0]) {
			return ProviderVimeo, "https://player.vimeo.com/video/" + segments[0], true
		}
	case "player.vimeo.com":
		if len(segments) == 2 && segments[0] == "video" && isDigits(segments[1]) {
			return ProviderVimeo, "https://player.vimeo.com/video/" + segments[1], true
		}
	}
	return ProviderGeneric, u.String(), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package utils

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

const MaxURLLength = 2048

var (
	ErrEmptyURL        = errors.New("empty url")
	ErrURLTooLong      = errors.New("url too long")
	ErrMalformedURL    = errors.New("malformed url")
	ErrUnsupportedHost = errors.New("unsupported host")
	ErrUnsupportedPath = errors.New("unsupported path")
	ErrInvalidVideoID  = errors.New("invalid video id")
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var shortHosts = map[string]bool{
	"youtu.be":     true,
	"www.youtu.be": true,
}

var longHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"gaming.youtube.com":       true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
}

var pathPrefixes = []string{"/embed/", "/v/", "/e/", "/shorts/", "/live/"}

// ExtractVideoID parses a video page URL and returns its 11 character ID.
// Bare IDs are rejected: only absolute http(s) links on a known host pass.
func ExtractVideoID(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", ErrEmptyURL
	}
	if len(raw) > MaxURLLength {
		return "", ErrURLTooLong
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrMalformedURL
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.User != nil || u.Opaque != "" {
		return "", ErrMalformedURL
	}
	if u.Port() != "" {
		return "", ErrUnsupportedHost
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case shortHosts[host]:
		id = strings.TrimSuffix(strings.TrimPrefix(u.Path, "/"), "/")
	case longHosts[host]:
		id, err = idFromLongPath(u)
		if err != nil {
			return "", err
		}
	default:
		return "", ErrUnsupportedHost
	}

	if !videoIDRe.MatchString(id) {
		return "", ErrInvalidVideoID
	}
	return id, nil
}

func idFromLongPath(u *url.URL) (string, error) {
	path := strings.TrimSuffix(u.Path, "/")
	if path == "/watch" {
		return u.Query().Get("v"), nil
	}
	for _, prefix := range pathPrefixes {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			return rest, nil
		}
	}
	return "", ErrUnsupportedPath
}

// ValidateURL reports whether input is an acceptable video link.
func ValidateURL(input string) bool {
	_, err := ExtractVideoID(input)
	return err == nil
}

func CanonicalURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

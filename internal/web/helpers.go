package web

import (
	"strconv"
	"strings"

	"esports-registration/static"

	"github.com/a-h/templ"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func esc(value string) string {
	if value == "" {
		return ""
	}
	return templ.EscapeString(value)
}

// assetPath appends a content hash to embedded /static/ paths so browsers
// refetch after a deploy.
func assetPath(path string) string {
	if path == "" || !strings.HasPrefix(path, "/static/") {
		return path
	}
	return appendAssetVersion(path, static.Hash(strings.TrimPrefix(path, "/static/")))
}

func appendAssetVersion(path string, hash string) string {
	if hash == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&v=" + hash
	}
	return path + "?v=" + hash
}

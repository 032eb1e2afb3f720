package attachment

import (
	"regexp"
	"strings"
)

var (
	// Markdown image or link: ![alt](url) / [text](url)
	reMarkdownURL = regexp.MustCompile(`!?\[[^\]]*\]\((https?://[^)\s]+)\)`)

	// HTML img tag: <img src="url"> or <img src='url'>
	reImgTagURL = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// ExtractURLs collects the attachment URLs the agent embedded in its answer:
// markdown image/link targets and HTML img sources that point at the given
// h2oGPTe host. Order of first appearance is preserved, duplicates dropped.
func ExtractURLs(text, host string) []string {
	var urls []string
	seen := make(map[string]bool)

	collect := func(url string) {
		if seen[url] || !belongsToHost(url, host) {
			return
		}
		urls = append(urls, url)
		seen[url] = true
	}

	for _, m := range reMarkdownURL.FindAllStringSubmatch(text, -1) {
		collect(m[1])
	}
	for _, m := range reImgTagURL.FindAllStringSubmatch(text, -1) {
		collect(m[1])
	}

	return urls
}

func belongsToHost(url, host string) bool {
	if host == "" {
		return true
	}
	rest, ok := strings.CutPrefix(url, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(url, "http://")
	}
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, host+"/") || rest == host
}

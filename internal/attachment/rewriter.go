// Package attachment handles files the agent produced during a session:
// discovering their remote URLs in the answer text, downloading them to a
// local cache, and rewriting the references to local filenames.
package attachment

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// RewriteURLs replaces every occurrence of each mapped remote URL with the
// filename of its local copy. HTML img tags are handled first so the
// replacement always re-emits a double-quoted src attribute, whatever quote
// style the source used; remaining occurrences (markdown images, links,
// bare URLs) are replaced literally.
//
// URLs are processed longest first so a mapped URL that is a prefix of
// another never clobbers the longer one mid-rewrite. Entries are applied
// independently, so the function is idempotent: running it on
// already-rewritten text changes nothing.
func RewriteURLs(text string, urlMap map[string]string) string {
	urls := make([]string, 0, len(urlMap))
	for url := range urlMap {
		urls = append(urls, url)
	}
	sort.Slice(urls, func(i, j int) bool {
		if len(urls[i]) != len(urls[j]) {
			return len(urls[i]) > len(urls[j])
		}
		return urls[i] < urls[j]
	})

	for _, url := range urls {
		localPath := urlMap[url]
		if url == "" || localPath == "" {
			continue
		}
		name := localFilename(localPath)
		escaped := regexp.QuoteMeta(url)
		reImgSrc := regexp.MustCompile(`(<img[^>]*\bsrc\s*=\s*)(?:"` + escaped + `"|'` + escaped + `')`)
		text = reImgSrc.ReplaceAllString(text, `${1}"`+name+`"`)
		text = strings.ReplaceAll(text, url, name)
	}
	return text
}

// localFilename is the final path segment of the local path, or the whole
// path when it has no separator.
func localFilename(localPath string) string {
	return path.Base(strings.ReplaceAll(localPath, "\\", "/"))
}

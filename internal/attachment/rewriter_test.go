package attachment

import (
	"strings"
	"testing"
)

func TestRewriteURLs_MarkdownImage(t *testing.T) {
	urlMap := map[string]string{"https://h2o.example/files/chart.png": "/tmp/cache/chart.png"}
	in := "See ![chart](https://h2o.example/files/chart.png) above"
	got := RewriteURLs(in, urlMap)
	if got != "See ![chart](chart.png) above" {
		t.Fatalf("RewriteURLs = %q", got)
	}
}

func TestRewriteURLs_ImgTagAlwaysDoubleQuoted(t *testing.T) {
	urlMap := map[string]string{"https://h2o.example/f/x.png": "/tmp/x/file.png"}
	cases := []string{
		`<img src="https://h2o.example/f/x.png" width="200">`,
		`<img src='https://h2o.example/f/x.png' width="200">`,
	}
	for _, in := range cases {
		got := RewriteURLs(in, urlMap)
		if !strings.Contains(got, `src="file.png"`) {
			t.Fatalf("RewriteURLs(%q) = %q, want double-quoted src", in, got)
		}
	}
}

func TestRewriteURLs_AllOccurrencesReplaced(t *testing.T) {
	url := "https://h2o.example/f/a.txt"
	urlMap := map[string]string{url: "/data/a.txt"}
	in := url + " and again " + url
	got := RewriteURLs(in, urlMap)
	if strings.Contains(got, url) || got != "a.txt and again a.txt" {
		t.Fatalf("RewriteURLs = %q", got)
	}
}

func TestRewriteURLs_MultipleIndependentEntries(t *testing.T) {
	urlMap := map[string]string{
		"https://h2o.example/f/one.png": "/c/one.png",
		"https://h2o.example/f/two.png": "/c/two.png",
	}
	in := "![a](https://h2o.example/f/one.png) ![b](https://h2o.example/f/two.png)"
	got := RewriteURLs(in, urlMap)
	if got != "![a](one.png) ![b](two.png)" {
		t.Fatalf("RewriteURLs = %q", got)
	}
}

func TestRewriteURLs_PrefixURLsAreIndependent(t *testing.T) {
	urlMap := map[string]string{
		"https://h2o.example/f/x":     "/c/one.txt",
		"https://h2o.example/f/x.png": "/c/two.png",
	}
	in := "![i](https://h2o.example/f/x.png) and [t](https://h2o.example/f/x)"
	want := "![i](two.png) and [t](one.txt)"
	for i := 0; i < 50; i++ {
		if got := RewriteURLs(in, urlMap); got != want {
			t.Fatalf("RewriteURLs = %q, want %q", got, want)
		}
	}
}

func TestRewriteURLs_UnmappedURLUntouched(t *testing.T) {
	urlMap := map[string]string{"https://h2o.example/f/a.png": "/c/a.png"}
	in := "keep https://other.example/b.png as is"
	if got := RewriteURLs(in, urlMap); got != in {
		t.Fatalf("unmapped URL altered: %q", got)
	}
}

func TestRewriteURLs_Idempotent(t *testing.T) {
	urlMap := map[string]string{"https://h2o.example/f/a.png?sig=x&y=1": "/c/a.png"}
	in := `<img src='https://h2o.example/f/a.png?sig=x&y=1'> and ![i](https://h2o.example/f/a.png?sig=x&y=1)`
	once := RewriteURLs(in, urlMap)
	if twice := RewriteURLs(once, urlMap); twice != once {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}

func TestLocalFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/tmp/x/file.png", "file.png"},
		{"file.png", "file.png"},
		{`C:\cache\report.pdf`, "report.pdf"},
	}
	for _, c := range cases {
		if got := localFilename(c.in); got != c.want {
			t.Fatalf("localFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

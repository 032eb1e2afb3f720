package slashcmd

import (
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	raw := `[{"name":"/review","prompt":"Review the diff"},{"name":"/test","prompt":"Write tests"}]`
	cmds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cmds) != 2 || cmds[0].Name != "/review" || cmds[1].Prompt != "Write tests" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
}

func TestParse_EmptySourceYieldsNoCommands(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		cmds, err := Parse(raw)
		if err != nil || cmds != nil {
			t.Fatalf("Parse(%q) = %+v, %v", raw, cmds, err)
		}
	}
}

func TestParse_ConfigurationErrors(t *testing.T) {
	cases := []string{
		`not json`,
		`{"name":"/a","prompt":"b"}`,          // object, not array
		`[{"prompt":"missing name"}]`,         // no name
		`[{"name":"","prompt":"empty name"}]`, // empty name
		`[{"name":"/a"}]`,                     // no prompt
		`[{"name":42,"prompt":"x"}]`,          // non-string name
		`[{"name":"/a","prompt":7}]`,          // non-string prompt
	}
	for _, raw := range cases {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q) expected error", raw)
		}
	}
}

func TestMatch_SubstringAndOrder(t *testing.T) {
	cmds := []Command{
		{Name: "/zeta", Prompt: "z"},
		{Name: "/alpha", Prompt: "a"},
		{Name: "/beta", Prompt: "b"},
	}
	matched := Match(cmds, "please run /zeta and also /alpha here")
	if len(matched) != 2 {
		t.Fatalf("want 2 matches, got %+v", matched)
	}
	if matched[0].Name != "/alpha" || matched[1].Name != "/zeta" {
		t.Fatalf("matches must be sorted by name, got %+v", matched)
	}
}

func TestMatch_SubstringFalsePositiveIsIntended(t *testing.T) {
	cmds := []Command{{Name: "/go", Prompt: "p"}}
	if got := Match(cmds, "path is /golang/src"); len(got) != 1 {
		t.Fatalf("embedded name must match by design, got %+v", got)
	}
}

func TestMatch_NoMatches(t *testing.T) {
	cmds := []Command{{Name: "/review", Prompt: "p"}}
	if got := Match(cmds, "nothing relevant"); got != nil {
		t.Fatalf("want nil, got %+v", got)
	}
}

func TestPromptBlock(t *testing.T) {
	block := PromptBlock([]Command{
		{Name: "/review", Prompt: "Review the diff"},
		{Name: "/test", Prompt: "Write tests"},
	})
	want := "- /review: Review the diff\n- /test: Write tests"
	if block != want {
		t.Fatalf("PromptBlock = %q, want %q", block, want)
	}
	if PromptBlock(nil) != "" {
		t.Fatalf("empty input must yield empty block")
	}
}

func TestSummary_SortsRegardlessOfInputOrder(t *testing.T) {
	got := Summary([]Command{{Name: "/c"}, {Name: "/a"}, {Name: "/b"}})
	if got != "/a /b /c" {
		t.Fatalf("Summary = %q", got)
	}
	if !strings.HasPrefix(got, "/a") {
		t.Fatalf("ascending order expected: %q", got)
	}
}

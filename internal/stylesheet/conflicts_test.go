package stylesheet

import (
	"slices"
	"testing"
)

func TestConflictsReportsBaseSelectors(t *testing.T) {
	src := `
#message { color: hotpink; }
yt-live-chat-text-message-renderer, .unrelated { margin: 0; }
.my-own-class { color: red; }
`
	got := Conflicts(src)
	want := []string{".message-text", ".yt-live-chat-message"}
	if !slices.Equal(got, want) {
		t.Errorf("Conflicts = %v, want %v", got, want)
	}
}

func TestConflictsIgnoresKeyframeSteps(t *testing.T) {
	src := `@keyframes pulse { from { opacity: 0; } to { opacity: 1; } }`
	if got := Conflicts(src); len(got) != 0 {
		t.Errorf("keyframe steps are not selectors, got %v", got)
	}
}

func TestConflictsCollapsesWhitespace(t *testing.T) {
	src := "[author-type=\"owner\"]   #author-name { color: red; }"
	got := Conflicts(src)
	if !slices.Contains(got, ".message-owner .author-name") {
		t.Errorf("Conflicts = %v", got)
	}
}

func TestConflictsNone(t *testing.T) {
	if got := Conflicts(".nothing-shared { color: red; }"); len(got) != 0 {
		t.Errorf("Conflicts = %v, want none", got)
	}
	if got := Conflicts(""); len(got) != 0 {
		t.Errorf("Conflicts on empty input = %v", got)
	}
}

func TestBaseSelectorsSkipKeyframes(t *testing.T) {
	base := baseSelectors()
	if base["from"] || base["to"] {
		t.Error("keyframe steps leaked into the base selector set")
	}
	if !base[".messages-container"] {
		t.Error("expected .messages-container in the base selector set")
	}
}

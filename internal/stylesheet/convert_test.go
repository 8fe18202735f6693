package stylesheet

import (
	"strings"
	"testing"
)

func TestConvertScenario(t *testing.T) {
	out := Convert(".yt-live-chat-text-message-renderer{color:red}")
	if !strings.Contains(out, ".yt-live-chat-message{color:red}") {
		t.Errorf("converted selector missing:\n%s", out)
	}
	if strings.Contains(out, "..yt-live-chat-message") {
		t.Error("leading dot should be absorbed by the element rule")
	}
	if !strings.Contains(out, BaseStylesMarker) {
		t.Error("base style marker missing")
	}
}

func TestConvertRules(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"yt-live-chat-text-message-renderer {}", ".yt-live-chat-message {}"},
		{"yt-live-chat-renderer {}", ".chat-simulator-container {}"},
		{"yt-live-chat-item-list-renderer {}", ".messages-container {}"},
		{".yt-live-chat-item-list-renderer {}", ".messages-container {}"},
		{"yt-live-chat-paid-message-renderer {}", ".message-superchat {}"},
		{"yt-live-chat-paid-sticker-renderer {}", ".message-sticker {}"},
		{"yt-live-chat-membership-item-renderer {}", ".message-membership {}"},
		{"#contents {}", ".messages-container {}"},
		{"#items {}", ".messages-container {}"},
		{`[author-type="owner"] {}`, ".message-owner {}"},
		{`[author-type="moderator"] {}`, ".message-mod {}"},
		{`[author-type="member"] {}`, ".message-member {}"},
		{"[author-is-owner] {}", ".message-owner {}"},
		{"#content {}", ".message-content {}"},
		{"#author-name {}", ".author-name {}"},
		{"#message {}", ".message-text {}"},
		{"#author-photo {}", ".author-photo {}"},
		{
			`yt-live-chat-text-message-renderer[author-type="moderator"] #author-name { color: lime; }`,
			`.yt-live-chat-message.message-mod .author-name { color: lime; }`,
		},
		{".unrelated { color: blue; }", ".unrelated { color: blue; }"},
	}
	for _, tc := range cases {
		if got := Rewrite(tc.in); got != tc.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestConvertAppendsBaseBlockAfterUserRules(t *testing.T) {
	src := "#message { color: pink; }"
	out := Convert(src)
	want := Rewrite(src) + "\n" + BaseStyles()
	if out != want {
		t.Fatalf("unexpected layout:\n%s", out)
	}
	if strings.Index(out, ".message-text { color: pink; }") > strings.Index(out, BaseStylesMarker) {
		t.Error("user rules should precede the base block")
	}
}

func TestConvertBaseFirst(t *testing.T) {
	out := Converter{BaseFirst: true}.Convert("#message { color: pink; }")
	if !strings.HasPrefix(out, BaseStylesMarker) {
		t.Fatalf("base block should come first:\n%.80s", out)
	}
	if !strings.HasSuffix(out, ".message-text { color: pink; }") {
		t.Error("user rules should come last")
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	in := DefaultTemplate
	if Convert(in) != Convert(in) {
		t.Fatal("Convert must be deterministic")
	}
}

func TestConvertTwiceRepeatsOnlyTheBaseBlock(t *testing.T) {
	once := Convert(DefaultTemplate)
	twice := Convert(once)
	if twice != once+"\n"+BaseStyles() {
		t.Fatal("second conversion should only append the base block again")
	}
	if n := strings.Count(twice, BaseStylesMarker); n != 2 {
		t.Errorf("marker count = %d, want 2", n)
	}
}

func TestBaseBlockIsStableUnderRewrite(t *testing.T) {
	if Rewrite(BaseStyles()) != BaseStyles() {
		t.Fatal("the base block must not match any source pattern")
	}
}

func TestMalformedInputPassesThrough(t *testing.T) {
	in := "#message { color: red; /* missing brace"
	out := Convert(in)
	if !strings.HasPrefix(out, ".message-text { color: red; /* missing brace\n") {
		t.Errorf("malformed input should be rewritten verbatim, got %.60q", out)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	if got := Convert(""); got != "\n"+BaseStyles() {
		t.Errorf("empty input should yield only the base block")
	}
}

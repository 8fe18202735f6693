package stylesheet

import (
	"slices"
	"strings"
	"sync"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var baseSelectors = sync.OnceValue(func() map[string]bool {
	set := make(map[string]bool)
	for _, s := range selectors(baseStyles) {
		set[s] = true
	}
	return set
})

// Conflicts lists the selectors of the rewritten src that the base block also defines. Which of the
// two wins is decided by the cascade and by Converter.BaseFirst; the list only reports the overlap.
func Conflicts(src string) []string {
	base := baseSelectors()
	seen := make(map[string]bool)
	var out []string
	for _, s := range selectors(Rewrite(src)) {
		if base[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// selectors returns every ruleset selector in text, one entry per comma-separated selector, with
// whitespace collapsed. Keyframe steps are skipped.
func selectors(text string) []string {
	p := css.NewParser(parse.NewInputString(text), false)

	var (
		out       []string
		keyframes int // depth inside @keyframes blocks
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return out
		case css.BeginAtRuleGrammar:
			if keyframes > 0 || strings.HasSuffix(strings.ToLower(string(data)), "keyframes") {
				keyframes++
			}
		case css.EndAtRuleGrammar:
			if keyframes > 0 {
				keyframes--
			}
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			if keyframes > 0 {
				continue
			}
			var sb strings.Builder
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			group := sb.String()
			if lead := string(data); lead != "{" && !strings.HasPrefix(group, lead) {
				group = lead + group
			}
			for s := range strings.SplitSeq(group, ",") {
				if s = strings.Join(strings.Fields(s), " "); s != "" {
					out = append(out, s)
				}
			}
		}
	}
}

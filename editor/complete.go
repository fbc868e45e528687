package editor

import (
	"strings"

	"github.com/dennwc/webidlstruct/parser"
	"github.com/dennwc/webidlstruct/structure"
)

// DefaultPriority is the priority of completions without a specific one.
const DefaultPriority = 100

// Completion is a suggested keyword. Higher priorities sort first.
type Completion struct {
	Label    string  `yaml:"label"`
	Priority float64 `yaml:"priority"`
}

var (
	memberKeywords     = []string{"readonly", "static", "attribute", "inherit", "undefined"}
	definitionKeywords = []string{
		"interface", "interface mixin", "dictionary", "namespace",
		"partial interface", "partial interface mixin", "partial dictionary", "partial namespace",
		"enum", "typedef", "callback", "callback interface",
	}
	priorities = map[string]float64{
		"partial dictionary":      80,
		"partial namespace":       60,
		"partial interface mixin": 60,
		"dictionary":              80,
		"namespace":               60,
	}
)

// Complete returns the keywords that may be typed at offset. Inside a
// definition body it offers member keywords, elsewhere definition keywords,
// narrowed by the previous visible token and filtered by the word being
// typed at offset.
func Complete(tree *structure.Tree, offset int) []Completion {
	prefix, prev := wordBefore(tree, offset)

	var suggestions []string
	inBody := insideBody(tree, offset)
	switch {
	case inBody && (prev == "readonly" || prev == "inherit"):
		suggestions = []string{"attribute"}
	case inBody:
		suggestions = memberKeywords
	case prev == "partial":
		suggestions = []string{"interface", "interface mixin", "dictionary", "namespace"}
	case prev == "callback":
		suggestions = []string{"interface"}
	case prev == "interface":
		suggestions = []string{"mixin"}
	case endsDefinitionKeyword(prev):
	default:
		suggestions = definitionKeywords
	}

	var out []Completion
	for _, s := range suggestions {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		priority := float64(DefaultPriority)
		if p, ok := priorities[s]; ok && !inBody {
			priority = p
		}
		out = append(out, Completion{Label: s, Priority: priority})
	}
	return out
}

// endsDefinitionKeyword reports whether word is the last word of a
// definition keyword, after which no keyword follows.
func endsDefinitionKeyword(word string) bool {
	for _, k := range definitionKeywords {
		if i := strings.LastIndexByte(k, ' '); k[i+1:] == word {
			return true
		}
	}
	return false
}

// wordBefore returns the part of the word ending at offset that is already
// typed, and the text of the last non-trivia token before that word.
func wordBefore(tree *structure.Tree, offset int) (prefix, prev string) {
	leaves := tree.Leaves()
	start := offset
	for _, leaf := range leaves {
		if leaf.Kind != structure.KindToken || leaf.Range.StartOffset >= offset {
			continue
		}
		t := leaf.Token
		if t.IsWord() && t.End >= offset {
			prefix = t.Text[:offset-t.Start]
			start = t.Start
		}
	}
	for _, leaf := range leaves {
		if leaf.Kind != structure.KindToken || leaf.Range.EndOffset > start {
			continue
		}
		if !leaf.Token.IsTrivia() {
			prev = leaf.Token.Text
		}
	}
	return prefix, prev
}

// insideBody reports whether offset lies between the braces of a body. An
// unterminated body extends up to the next definition.
func insideBody(tree *structure.Tree, offset int) bool {
	inside := false
	for _, def := range tree.Root.Children {
		if def.Kind != structure.KindDefinition || def.Range.StartOffset >= offset {
			continue
		}
		inside = false
		for _, c := range def.Children {
			if c.Kind == structure.KindBody {
				inside = offset > c.Range.StartOffset && (offset < c.Range.EndOffset || !closed(c))
			}
		}
	}
	return inside
}

func closed(body *structure.Node) bool {
	if len(body.Children) < 2 {
		return false
	}
	last := body.Children[len(body.Children)-1]
	return last.Kind == structure.KindToken && last.Token.Kind == parser.TokenRightBrace
}

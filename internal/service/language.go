package service

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// inferLanguage fills in the language tag when the model omits it, keyed off
// the file path via the chroma lexer registry. Unknown extensions get "text",
// matching how untagged files were labelled before.
func inferLanguage(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return "text"
	}
	return strings.ToLower(lexer.Config().Name)
}

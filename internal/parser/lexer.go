package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes table input. DiceMacro must precede Ident and Int so
// "2d6+1" never splits into separate tokens.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DiceMacro", Pattern: `\d+[dD]\d+(?:[+-]\d+)?`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Signed", Pattern: `[+-]\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][\w-]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates the parser from the struct tags in ast.go.
func Build() *participle.Parser[Line] {
	return participle.MustBuild[Line](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
}

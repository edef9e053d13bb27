package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// RuleBookLexer tokenizes the textual rule-book notation used by the
// CLI and REPL to feed a surface.RuleBook into the compiler (not the
// language's own surface syntax, which is out of scope; see DESIGN.md).
var RuleBookLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"DocComment", `///[^\n]*`, nil},
		{"Comment", `//[^\n]*`, nil},

		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		{"Arrow", `->`, nil},
		{"Operator", `(\|\||&&|==|!=|<=|>=|<<|>>|[-+*/%&|^<>])`, nil},
		{"Punctuation", `[(){},=;\\]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

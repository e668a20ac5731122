package lexer

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var reserved = map[string]Token{
	"const":    {Kind: KindKeyword, Keyword: KwConst},
	"void":     {Kind: KindKeyword, Keyword: KwVoid},
	"bool":     {Kind: KindKeyword, Keyword: KwBool},
	"char":     {Kind: KindKeyword, Keyword: KwChar},
	"int":      {Kind: KindKeyword, Keyword: KwInt},
	"if":       {Kind: KindKeyword, Keyword: KwIf},
	"else":     {Kind: KindKeyword, Keyword: KwElse},
	"for":      {Kind: KindKeyword, Keyword: KwFor},
	"while":    {Kind: KindKeyword, Keyword: KwWhile},
	"do":       {Kind: KindKeyword, Keyword: KwDo},
	"continue": {Kind: KindKeyword, Keyword: KwContinue},
	"break":    {Kind: KindKeyword, Keyword: KwBreak},
	"return":   {Kind: KindKeyword, Keyword: KwReturn},

	"true":  {Kind: KindBool, Bool: true},
	"false": {Kind: KindBool, Bool: false},
}

// lookupReserved returns the token kind and payload for a reserved spelling.
// The returned token has no span.
func lookupReserved(spelling string) (Token, bool) {
	tk, ok := reserved[spelling]
	return tk, ok
}

// Keywords returns every reserved spelling, including true and false, sorted.
func Keywords() []string {
	words := maps.Keys(reserved)
	slices.Sort(words)
	return words
}

package lexer

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierRune(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '_'
}

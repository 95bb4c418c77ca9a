package jscode

// GetTokenAtColumn returns the token of a line that ends at or covers column: the token t
// such that t.Start < column <= t.End. The last token is returned if column is past the end
// of the line. An empty token is returned for column 0 and for lines without tokens.
func GetTokenAtColumn(line int32, column int32, tokens []Token) Token {
	if column <= 0 || len(tokens) == 0 {
		return emptyToken(line)
	}

	for _, t := range tokens {
		if t.Span.Start < column && column <= t.Span.End {
			return t
		}
	}

	last := tokens[len(tokens)-1]
	if column > last.Span.End {
		return last
	}
	return emptyToken(line)
}

func emptyToken(line int32) Token {
	return Token{Span: Span{Line: line}}
}

// Lines is a TokenProvider over already tokenized lines.
type Lines [][]Token

func (l Lines) TokenAt(pos Position) Token {
	if pos.Line < 0 || int(pos.Line) >= len(l) {
		return emptyToken(pos.Line)
	}
	return GetTokenAtColumn(pos.Line, pos.Column, l[pos.Line])
}

package parser

import "github.com/loomtui/loom/internal/lexer"

// line is one logical source line: the indent column count plus the
// content tokens between the Indent token and the terminating Newline/EOF.
type line struct {
	indent  int
	lineNum int
	content []lexer.Token
}

func splitLines(toks []lexer.Token) []line {
	var lines []line
	var cur *line
	for _, t := range toks {
		switch t.Kind {
		case lexer.KindIndent:
			lines = append(lines, line{indent: t.Indent, lineNum: t.Line})
			cur = &lines[len(lines)-1]
		case lexer.KindNewline:
			cur = nil
		case lexer.KindEOF:
			// ignore; terminal marker only
		default:
			if cur != nil {
				cur.content = append(cur.content, t)
			}
		}
	}
	return lines
}

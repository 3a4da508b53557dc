// Package lexer turns Slate source bytes into a token stream.
package lexer

import (
	"slate/internal/diag"
	"slate/internal/source"
	"slate/internal/token"
)

// Lexer scans one source file. It is not safe for concurrent use.
type Lexer struct {
	file     *source.File
	pos      uint32
	look     *token.Token // one-token lookahead buffer
	reporter diag.Reporter
}

// New creates a lexer over file, reporting lexical errors to reporter.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{file: file, reporter: reporter}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.pos)}
	}

	start := lx.pos
	ch := lx.byte()

	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case ch >= '0' && ch <= '9':
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	}

	lx.pos++
	kind := token.Invalid
	switch ch {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Assign
		if lx.accept('=') {
			kind = token.EqEq
		}
	case '!':
		if lx.accept('=') {
			kind = token.BangEq
		}
	case '<':
		kind = token.Lt
		if lx.accept('=') {
			kind = token.LtEq
		}
	case '>':
		kind = token.Gt
		if lx.accept('=') {
			kind = token.GtEq
		}
	}

	span := lx.span(start)
	text := string(lx.file.Content[start:lx.pos])
	if kind == token.Invalid {
		diag.Errorf(lx.reporter, diag.LexUnknownChar, span, "unexpected character %q", text)
	}
	return token.Token{Kind: kind, Span: span, Text: text}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentContinue(lx.byte()) {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.span(start),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	for !lx.eof() && lx.byte() >= '0' && lx.byte() <= '9' {
		lx.pos++
	}
	if !lx.eof() && isIdentStart(lx.byte()) {
		for !lx.eof() && isIdentContinue(lx.byte()) {
			lx.pos++
		}
		span := lx.span(start)
		diag.Errorf(lx.reporter, diag.LexBadNumber, span,
			"malformed number %q", string(lx.file.Content[start:lx.pos]))
		return token.Token{Kind: token.Invalid, Span: span}
	}
	return token.Token{
		Kind: token.IntLit,
		Span: lx.span(start),
		Text: string(lx.file.Content[start:lx.pos]),
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.pos
	lx.pos++ // opening quote
	var out []byte
	for {
		if lx.eof() || lx.byte() == '\n' {
			span := lx.span(start)
			diag.Error(lx.reporter, diag.LexUnterminatedString, span, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: span}
		}
		ch := lx.byte()
		lx.pos++
		if ch == '"' {
			break
		}
		if ch == '\\' && !lx.eof() {
			esc := lx.byte()
			lx.pos++
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"', '\\':
				out = append(out, esc)
			default:
				out = append(out, '\\', esc)
			}
			continue
		}
		out = append(out, ch)
	}
	return token.Token{
		Kind: token.StringLit,
		Span: lx.span(start),
		Text: string(out),
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.byte()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.byte() != '\n' {
				lx.pos++
			}
		case ch == '/' && lx.peekAt(1) == '*':
			lx.pos += 2
			for !lx.eof() {
				if lx.byte() == '*' && lx.peekAt(1) == '/' {
					lx.pos += 2
					break
				}
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) eof() bool { return int(lx.pos) >= len(lx.file.Content) }

func (lx *Lexer) byte() byte { return lx.file.Content[lx.pos] }

func (lx *Lexer) peekAt(n uint32) byte {
	if int(lx.pos+n) >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.pos+n]
}

func (lx *Lexer) accept(ch byte) bool {
	if !lx.eof() && lx.byte() == ch {
		lx.pos++
		return true
	}
	return false
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.pos}
}

func (lx *Lexer) spanFrom(at uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: at, End: at}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

package parser

import (
	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/source"
	"slate/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Span: p.tok.Span}
	p.expect(token.LBrace, diag.SynUnclosedBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if stmt := p.parseStmt(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace)
	block.Span = block.Span.Cover(end.Span)
	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case token.KwVar:
		return p.parseVarStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseVarStmt() ast.Stmt {
	start := p.tok.Span
	p.next()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.recoverTo(token.Semicolon, token.RBrace)
		p.accept(token.Semicolon)
		return nil
	}
	stmt := &ast.VarStmt{Name: nameTok.Text, Span: start.Cover(nameTok.Span)}
	if p.accept(token.Assign) {
		stmt.Init = p.parseExpr()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.tok.Span
	p.next()
	stmt := &ast.ReturnStmt{Span: start}
	if !p.at(token.Semicolon) {
		stmt.E = p.parseExpr()
		if stmt.E != nil {
			stmt.Span = stmt.Span.Cover(stmt.E.ExprSpan())
		}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return stmt
}

func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		p.recoverTo(token.Semicolon, token.RBrace)
		p.accept(token.Semicolon)
		return nil
	}
	if p.accept(token.Assign) {
		value := p.parseExpr()
		p.expect(token.Semicolon, diag.SynExpectSemicolon)
		span := expr.ExprSpan()
		if value != nil {
			span = span.Cover(value.ExprSpan())
		}
		return &ast.AssignStmt{Target: expr, Value: value, Span: span}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return &ast.ExprStmt{E: expr, Span: expr.ExprSpan()}
}

// parseExpr parses equality-level expressions; precedence grows downward
// through relational, additive, multiplicative, and postfix levels.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

var binaryLevels = [][]token.Kind{
	{token.EqEq, token.BangEq},
	{token.Lt, token.Gt, token.LtEq, token.GtEq},
	{token.Plus, token.Minus},
	{token.Star, token.Slash},
}

func (p *Parser) parseBinary(level int) ast.Expr {
	if level >= len(binaryLevels) {
		return p.parsePostfix()
	}
	left := p.parseBinary(level + 1)
	if left == nil {
		return nil
	}
	for {
		matched := false
		for _, op := range binaryLevels[level] {
			if p.at(op) {
				p.next()
				right := p.parseBinary(level + 1)
				span := left.ExprSpan()
				if right != nil {
					span = span.Cover(right.ExprSpan())
				}
				left = &ast.Binary{Op: op, L: left, R: right, Span: span}
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch {
		case p.at(token.Dot):
			p.next()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
			if !ok {
				return expr
			}
			expr = &ast.Member{
				Recv: expr,
				Name: nameTok.Text,
				Span: expr.ExprSpan().Cover(nameTok.Span),
			}
		case p.at(token.LParen):
			p.next()
			args, end := p.parseArgs()
			expr = &ast.Call{
				Fn:   expr,
				Args: args,
				Span: expr.ExprSpan().Cover(end),
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, source.Span) {
	var args []ast.Expr
	if p.at(token.RParen) {
		end := p.tok.Span
		p.next()
		return args, end
	}
	for {
		if arg := p.parseExpr(); arg != nil {
			args = append(args, arg)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	end, _ := p.expect(token.RParen, diag.SynUnexpectedToken)
	return args, end.Span
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.tok
	switch tok.Kind {
	case token.Ident:
		p.next()
		return &ast.Ident{Name: tok.Text, Span: tok.Span}
	case token.KwThis:
		p.next()
		return &ast.This{Span: tok.Span}
	case token.IntLit:
		p.next()
		return &ast.Lit{Kind: ast.LitInt, Text: tok.Text, Span: tok.Span}
	case token.StringLit:
		p.next()
		return &ast.Lit{Kind: ast.LitString, Text: tok.Text, Span: tok.Span}
	case token.KwTrue, token.KwFalse:
		p.next()
		return &ast.Lit{Kind: ast.LitBool, Text: tok.Text, Span: tok.Span}
	case token.KwNull:
		p.next()
		return &ast.Lit{Kind: ast.LitNull, Text: "null", Span: tok.Span}
	case token.KwNew:
		p.next()
		ref, ok := p.parseTypeRef()
		if !ok {
			return nil
		}
		expr := &ast.New{Type: ref, Span: tok.Span.Cover(ref.Span)}
		if p.accept(token.LParen) {
			args, end := p.parseArgs()
			expr.Args = args
			expr.Span = expr.Span.Cover(end)
		}
		return expr
	case token.LParen:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnexpectedToken)
		return inner
	default:
		diag.Errorf(p.reporter, diag.SynUnexpectedToken, tok.Span,
			"expected an expression, found %v", tok.Kind)
		return nil
	}
}

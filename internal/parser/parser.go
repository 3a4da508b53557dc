// Package parser builds the AST for one compilation unit. It recovers from
// syntax errors at declaration and statement boundaries so that a single
// parse reports as many findings as possible.
package parser

import (
	"strings"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/lexer"
	"slate/internal/source"
	"slate/internal/token"
)

// Parser consumes the token stream of one file.
type Parser struct {
	lx       *lexer.Lexer
	tok      token.Token
	reporter diag.Reporter
	file     source.FileID
}

// ParseUnit parses file into a Unit, reporting problems to reporter.
func ParseUnit(file *source.File, reporter diag.Reporter) *ast.Unit {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &Parser{
		lx:       lexer.New(file, reporter),
		reporter: reporter,
		file:     file.ID,
	}
	p.next()
	return p.parseUnit()
}

func (p *Parser) next() { p.tok = p.lx.Next() }

func (p *Parser) at(kind token.Kind) bool { return p.tok.Kind == kind }

func (p *Parser) accept(kind token.Kind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(kind) {
		tok := p.tok
		p.next()
		return tok, true
	}
	diag.Errorf(p.reporter, code, p.tok.Span, "expected %v, found %v", kind, p.tok.Kind)
	return p.tok, false
}

func (p *Parser) parseUnit() *ast.Unit {
	unit := &ast.Unit{File: p.file}
	for !p.at(token.EOF) {
		switch {
		case p.at(token.KwRequire):
			p.parseRequire(unit)
		case p.at(token.KwNamespace):
			p.parseNamespace(unit, "")
		case p.atTypeDeclStart():
			if decl := p.parseTypeDecl(""); decl != nil {
				unit.Decls = append(unit.Decls, decl)
			}
		default:
			diag.Errorf(p.reporter, diag.SynUnexpectedTopLevel, p.tok.Span,
				"unexpected %v at top level", p.tok.Kind)
			p.recoverTo(token.RBrace, token.Semicolon)
		}
	}
	return unit
}

func (p *Parser) parseRequire(unit *ast.Unit) {
	start := p.tok.Span
	p.next()
	if !p.at(token.StringLit) {
		diag.Error(p.reporter, diag.SynBadRequire, p.tok.Span, "require needs a quoted module name")
		p.recoverTo(token.Semicolon)
		return
	}
	name := p.tok.Text
	span := start.Cover(p.tok.Span)
	p.next()
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if strings.TrimSpace(name) == "" {
		diag.Error(p.reporter, diag.SynBadRequire, span, "require needs a non-empty module name")
		return
	}
	unit.Requires = append(unit.Requires, ast.Require{Module: name, Span: span})
}

func (p *Parser) parseNamespace(unit *ast.Unit, outer string) {
	p.next()
	name, ok := p.parseQualifiedName()
	if !ok {
		p.recoverTo(token.LBrace)
	}
	if outer != "" {
		name = outer + "." + name
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace); !ok {
		p.recoverTo(token.LBrace)
		p.accept(token.LBrace)
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch {
		case p.at(token.KwNamespace):
			p.parseNamespace(unit, name)
		case p.atTypeDeclStart():
			if decl := p.parseTypeDecl(name); decl != nil {
				unit.Decls = append(unit.Decls, decl)
			}
		default:
			diag.Errorf(p.reporter, diag.SynUnexpectedTopLevel, p.tok.Span,
				"unexpected %v inside namespace", p.tok.Kind)
			p.recoverTo(token.RBrace, token.Semicolon)
			p.accept(token.Semicolon)
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)
}

func (p *Parser) atTypeDeclStart() bool {
	if p.tok.IsModifier() {
		return true
	}
	switch p.tok.Kind {
	case token.KwClass, token.KwInterface, token.KwEnum, token.KwDelegate:
		return true
	default:
		return false
	}
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		var flag ast.Modifiers
		switch p.tok.Kind {
		case token.KwPartial:
			flag = ast.ModPartial
		case token.KwTest:
			flag = ast.ModTest
		case token.KwPublic:
			flag = ast.ModPublic
		case token.KwPreserve:
			flag = ast.ModPreserve
		case token.KwStatic:
			flag = ast.ModStatic
		case token.KwOverride:
			flag = ast.ModOverride
		default:
			return mods
		}
		if mods.Has(flag) {
			diag.Errorf(p.reporter, diag.SynDuplicateModifier, p.tok.Span,
				"duplicate modifier %v", p.tok.Kind)
		}
		mods |= flag
		p.next()
	}
}

func (p *Parser) parseTypeDecl(namespace string) *ast.TypeDecl {
	start := p.tok.Span
	mods := p.parseModifiers()

	var kind ast.DeclKind
	switch p.tok.Kind {
	case token.KwClass:
		kind = ast.DeclClass
	case token.KwInterface:
		kind = ast.DeclInterface
	case token.KwEnum:
		kind = ast.DeclEnum
	case token.KwDelegate:
		kind = ast.DeclDelegate
	default:
		diag.Errorf(p.reporter, diag.SynUnexpectedToken, p.tok.Span,
			"expected a type declaration, found %v", p.tok.Kind)
		p.recoverTo(token.RBrace, token.Semicolon)
		return nil
	}
	p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.recoverTo(token.RBrace, token.Semicolon)
		return nil
	}

	decl := &ast.TypeDecl{
		Kind:      kind,
		Name:      nameTok.Text,
		Namespace: namespace,
		Mods:      mods,
		Span:      start.Cover(nameTok.Span),
		NameSpan:  nameTok.Span,
	}

	switch kind {
	case ast.DeclEnum:
		p.parseEnumBody(decl)
	case ast.DeclDelegate:
		p.parseDelegateTail(decl)
	default:
		if p.accept(token.Colon) {
			decl.Bases = p.parseTypeRefList()
		}
		p.parseClassBody(decl)
	}
	return decl
}

func (p *Parser) parseEnumBody(decl *ast.TypeDecl) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace); !ok {
		p.recoverTo(token.RBrace)
		p.accept(token.RBrace)
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		caseTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.recoverTo(token.Comma, token.RBrace)
		} else {
			decl.Cases = append(decl.Cases, ast.EnumCase{Name: caseTok.Text, Span: caseTok.Span})
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)
}

func (p *Parser) parseDelegateTail(decl *ast.TypeDecl) {
	if p.accept(token.LParen) {
		decl.Params = p.parseParams()
	}
	if p.accept(token.Colon) {
		// delegates are erased before emission; the return type is parsed
		// only to keep the declaration grammar uniform
		p.parseTypeRef()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon)
}

func (p *Parser) parseClassBody(decl *ast.TypeDecl) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace); !ok {
		p.recoverTo(token.RBrace, token.Semicolon)
		p.accept(token.RBrace)
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if member := p.parseMember(); member != nil {
			decl.Members = append(decl.Members, member)
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace)
}

func (p *Parser) parseMember() *ast.MemberDecl {
	start := p.tok.Span
	mods := p.parseModifiers()

	var kind ast.MemberKind
	switch p.tok.Kind {
	case token.KwField:
		kind = ast.MemberField
	case token.KwMethod:
		kind = ast.MemberMethod
	case token.KwProperty:
		kind = ast.MemberProperty
	case token.KwEvent:
		kind = ast.MemberEvent
	default:
		diag.Errorf(p.reporter, diag.SynExpectMember, p.tok.Span,
			"expected a member declaration, found %v", p.tok.Kind)
		p.recoverTo(token.Semicolon, token.RBrace)
		p.accept(token.Semicolon)
		return nil
	}
	p.next()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.recoverTo(token.Semicolon, token.RBrace)
		p.accept(token.Semicolon)
		return nil
	}

	member := &ast.MemberDecl{
		Kind:     kind,
		Name:     nameTok.Text,
		Mods:     mods,
		Span:     start.Cover(nameTok.Span),
		NameSpan: nameTok.Span,
	}

	switch kind {
	case ast.MemberField, ast.MemberProperty:
		if _, ok := p.expect(token.Colon, diag.SynExpectType); ok {
			if ref, ok := p.parseTypeRef(); ok {
				member.Type = ref
			}
		}
		p.expect(token.Semicolon, diag.SynExpectSemicolon)
	case ast.MemberEvent:
		p.expect(token.Semicolon, diag.SynExpectSemicolon)
	case ast.MemberMethod:
		if p.accept(token.LParen) {
			member.Params = p.parseParams()
		}
		if p.accept(token.Colon) {
			if ref, ok := p.parseTypeRef(); ok {
				member.Type = ref
			}
		}
		if p.at(token.LBrace) {
			member.Body = p.parseBlock()
		} else {
			p.expect(token.Semicolon, diag.SynExpectSemicolon)
		}
	}
	return member
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.accept(token.RParen) {
		return params
	}
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			p.recoverTo(token.Comma, token.RParen)
		} else {
			param := ast.Param{Name: nameTok.Text, Span: nameTok.Span}
			if _, ok := p.expect(token.Colon, diag.SynExpectType); ok {
				if ref, ok := p.parseTypeRef(); ok {
					param.Type = ref
					param.Span = param.Span.Cover(ref.Span)
				}
			}
			params = append(params, param)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnexpectedToken)
	return params
}

func (p *Parser) parseTypeRefList() []ast.TypeRef {
	var refs []ast.TypeRef
	for {
		if ref, ok := p.parseTypeRef(); ok {
			refs = append(refs, ref)
		}
		if !p.accept(token.Comma) {
			return refs
		}
	}
}

func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	name, span, ok := p.parseQualifiedNameSpan()
	if !ok {
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{Name: name, Span: span}, true
}

func (p *Parser) parseQualifiedName() (string, bool) {
	name, _, ok := p.parseQualifiedNameSpan()
	return name, ok
}

func (p *Parser) parseQualifiedNameSpan() (string, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return "", tok.Span, false
	}
	name := tok.Text
	span := tok.Span
	for p.at(token.Dot) && p.lx.Peek().Kind == token.Ident {
		p.next() // dot
		part, _ := p.expect(token.Ident, diag.SynExpectIdentifier)
		name += "." + part.Text
		span = span.Cover(part.Span)
	}
	return name, span, true
}

// recoverTo skips tokens until one of the sync kinds or EOF. The sync token
// itself is left for the caller.
func (p *Parser) recoverTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, kind := range kinds {
			if p.at(kind) {
				return
			}
		}
		p.next()
	}
}

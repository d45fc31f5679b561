package parser

import (
	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.KEYWORD_IF:
		return p.parseIfStmt()
	case token.KEYWORD_WHILE:
		return p.parseWhileStmt()
	case token.KEYWORD_RETURN:
		return p.parseReturnStmt()
	case token.KEYWORD_PASS:
		return p.parsePassStmt()
	case token.IDENT:
		return p.parseIdentLedStatement()
	default:
		tok := p.cur()
		p.errorf(tok, "unexpected token %s %q at start of statement", tok.Type, tok.Lexeme)
		p.advance()
		return nil
	}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.advance()
	cond := p.parseExpr()
	p.expect(token.COLON)
	p.skipNewlines()
	then := p.parseBlock()
	var els []ast.Statement
	if p.at(token.KEYWORD_ELSE) {
		p.advance()
		p.expect(token.COLON)
		p.skipNewlines()
		els = p.parseBlock()
	}
	p.expectKeywordEnd()
	return &ast.IfStmt{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.advance()
	cond := p.parseExpr()
	p.expect(token.COLON)
	p.skipNewlines()
	body := p.parseBlock()
	p.expectKeywordEnd()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.advance()
	if p.at(token.NEWLINE) || p.at(token.EOF) {
		return &ast.ReturnStmt{Token: tok}
	}
	return &ast.ReturnStmt{Token: tok, Value: p.parseExpr()}
}

func (p *Parser) parsePassStmt() ast.Statement {
	tok := p.advance()
	return &ast.PassStmt{Token: tok}
}

// parseIdentLedStatement disambiguates the four statement forms that start
// with an identifier: `x: T = e`, `x = e`, `a[i] = e`, and a bare call used
// as a statement.
func (p *Parser) parseIdentLedStatement() ast.Statement {
	nameTok := p.advance()

	switch p.cur().Type {
	case token.COLON:
		p.advance()
		tyTok := p.expect(token.IDENT)
		p.expect(token.ASSIGN)
		value := p.parseAssignRHS()
		return &ast.AnnAssignStmt{Token: nameTok, Name: nameTok.Lexeme, Type: tyTok.Lexeme, Value: value}
	case token.ASSIGN:
		p.advance()
		value := p.parseExpr()
		return &ast.AssignStmt{Token: nameTok, Name: nameTok.Lexeme, Value: value}
	case token.LBRACKET:
		p.advance()
		idxTok := p.expect(token.INT)
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		value := p.parseExpr()
		return &ast.SubscriptAssignStmt{Token: nameTok, Base: nameTok.Lexeme, Index: parseIntLiteral(idxTok), Value: value}
	case token.LPAREN:
		call := p.parseCallExprFrom(nameTok)
		return &ast.ExprStmt{Token: nameTok, Value: call}
	default:
		p.errorf(p.cur(), "unexpected token %s %q after identifier %q", p.cur().Type, p.cur().Lexeme, nameTok.Lexeme)
		return nil
	}
}

// parseAssignRHS parses the right-hand side of an annotated assignment,
// which may be a list literal (spec.md §4.3's list-literal encoding rule)
// or any scalar expression.
func (p *Parser) parseAssignRHS() ast.Expression {
	if p.at(token.LBRACKET) {
		return p.parseListLiteral()
	}
	return p.parseExpr()
}

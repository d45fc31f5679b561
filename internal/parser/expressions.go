package parser

import (
	"strconv"

	"github.com/pathprove/pathprove/internal/ast"
	"github.com/pathprove/pathprove/internal/token"
)

// Precedence, loosest to tightest: or < and < not < comparison < additive <
// multiplicative < unary < primary.

func (p *Parser) parseExpr() ast.Expression { return p.parseOr() }

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.KEYWORD_OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.BoolOp{Token: tok, Op: "or", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(token.KEYWORD_AND) {
		tok := p.advance()
		right := p.parseNot()
		left = &ast.BoolOp{Token: tok, Op: "and", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.at(token.KEYWORD_NOT) {
		tok := p.advance()
		operand := p.parseNot()
		return &ast.BoolOp{Token: tok, Op: "not", Left: operand}
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Type]string{
	token.EQ:     "==",
	token.NOT_EQ: "!=",
	token.LT:     "<",
	token.LT_EQ:  "<=",
	token.GT:     ">",
	token.GT_EQ:  ">=",
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	if op, ok := comparisonOps[p.cur().Type]; ok {
		tok := p.advance()
		right := p.parseAdditive()
		return &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tok := p.advance()
		op := "+"
		if tok.Type == token.MINUS {
			op = "-"
		}
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.MOD) {
		tok := p.advance()
		var op string
		switch tok.Type {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.MOD:
			op = "%"
		}
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.MINUS) {
		tok := p.advance()
		return &ast.UnaryExpr{Token: tok, Op: "-", Right: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.IntLiteral{Token: tok, Value: parseIntLiteral(tok)}
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.KEYWORD_TRUE:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: true}
	case token.KEYWORD_FALSE:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: false}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.IDENT:
		nameTok := p.advance()
		switch p.cur().Type {
		case token.LPAREN:
			return p.parseCallExprFrom(nameTok)
		case token.LBRACKET:
			p.advance()
			idxTok := p.expect(token.INT)
			p.expect(token.RBRACKET)
			return &ast.SubscriptExpr{
				Token: nameTok,
				Base:  &ast.Ident{Token: nameTok, Name: nameTok.Lexeme},
				Index: &ast.IntLiteral{Token: idxTok, Value: parseIntLiteral(idxTok)},
			}
		default:
			return &ast.Ident{Token: nameTok, Name: nameTok.Lexeme}
		}
	default:
		p.errorf(tok, "unexpected token %s %q in expression", tok.Type, tok.Lexeme)
		p.advance()
		return &ast.Ident{Token: tok, Name: "<error>"}
	}
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.expect(token.LBRACKET)
	lit := &ast.ListLiteral{Token: tok}
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		lit.Elements = append(lit.Elements, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseCallExprFrom(nameTok token.Token) ast.Expression {
	p.expect(token.LPAREN)
	call := &ast.CallExpr{Token: nameTok, Func: nameTok.Lexeme}
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		call.Arguments = append(call.Arguments, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return call
}

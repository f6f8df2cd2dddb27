package parser

import (
	"fmt"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/token"
)

// parseFunction разбирает `fn <ident>`; параметры, тип результата и тело
// пока остаются заглушками и токенов не потребляют.
func (p *Parser) parseFunction() error {
	p.setState(stateInFunction)
	defer p.setState(stateScanning)

	fnSpan := p.toks[p.pos].Span
	p.push(ast.StartFunction, fnSpan)

	p.parseVisibility()
	if err := p.parseIdentifier(); err != nil {
		p.work = p.work[:0]
		return err
	}
	p.push(ast.PendingParams, p.here())
	p.push(ast.PendingReturnType, p.here())
	p.push(ast.PendingBody, p.here())

	p.push(ast.EndFunction, fnSpan.Cover(p.here()))
	p.commit()
	return nil
}

// parseVisibility: модификаторов видимости ещё нет, поэтому всегда Invisible.
// Съедает текущий токен (сам `fn`).
func (p *Parser) parseVisibility() {
	p.push(ast.Invisible, p.toks[p.pos].Span)
	p.pos++
}

func (p *Parser) parseIdentifier() error {
	if p.pos >= len(p.toks) {
		return p.fail(diag.SynExpectIdentifier, p.here(), token.Invalid,
			"expected identifier after 'fn', found end of input")
	}
	tok := p.toks[p.pos]
	if tok.Kind != token.IdxVal {
		return p.fail(diag.SynExpectIdentifier, tok.Span, tok.Kind,
			fmt.Sprintf("expected identifier after 'fn', found %s %q", tok.Kind, tok.Text))
	}
	p.push(ast.Identifier, tok.Span)
	p.pos++
	return nil
}

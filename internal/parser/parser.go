package parser

import (
	"context"
	"fmt"

	"nx/internal/ast"
	"nx/internal/diag"
	"nx/internal/source"
	"nx/internal/token"
	"nx/internal/trace"
)

type state uint8

const (
	stateScanning state = iota
	stateInFunction
)

func (s state) String() string {
	if s == stateInFunction {
		return "InFunction"
	}
	return "Scanning"
}

// Parser хранит состояние парсера на одну последовательность токенов
type Parser struct {
	toks    []token.Token
	pos     int
	builder *ast.Builder
	work    []ast.Node // узлы текущей функции, коммитятся целиком
	state   state
	opts    Options
	spanID  uint64
}

// Parse folds tokens into the flat node sequence with default options.
func Parse(tokens []token.Token) ([]ast.Node, error) {
	return ParseWith(context.Background(), tokens, Options{})
}

// ParseWith folds tokens into the flat node sequence.
// Tokens before, between and after functions are skipped. The first error
// aborts the call and no partial result is returned.
func ParseWith(ctx context.Context, tokens []token.Token, opts Options) ([]ast.Node, error) {
	opts = opts.withDefaults(len(tokens))
	p := &Parser{
		toks:    tokens,
		builder: ast.NewBuilder(opts.Hints),
		work:    make([]ast.Node, 0, 8),
		opts:    opts,
	}

	span := trace.Begin(opts.Tracer, trace.ScopePass, "parse", opts.ParentSpan)
	p.spanID = span.ID()

	nodes, err := p.run(ctx)
	if err != nil {
		span.Fail(err).End("")
		return nil, err
	}
	span.SetInt("nodes", len(nodes)).
		SetInt("functions", len(ast.Functions(nodes))).
		End("")
	return nodes, nil
}

func (p *Parser) run(ctx context.Context) ([]ast.Node, error) {
	if len(p.toks) == 0 {
		return nil, p.fail(diag.SynEmptyInput, source.Span{}, token.Invalid, "cannot parse an empty token sequence")
	}

	for p.pos < len(p.toks) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.toks[p.pos].Kind == token.Fn {
			if err := p.parseFunction(); err != nil {
				return nil, err
			}
			continue
		}
		p.skip()
	}
	return p.builder.Result(), nil
}

// skip discards the working buffer and steps over one top-level token.
func (p *Parser) skip() {
	tok := p.toks[p.pos]
	p.work = p.work[:0]
	p.pos++
	if p.opts.WarnSkipped && !tok.IsTrivia() {
		diag.ReportWarning(p.opts.Reporter, diag.SynUnexpectedTopLevel, p.opts.File, tok.Span,
			fmt.Sprintf("%s is not a top-level item, skipped", tok.Kind)).Emit()
	}
}

func (p *Parser) setState(s state) {
	if p.state == s {
		return
	}
	trace.Point(p.opts.Tracer, trace.ScopeNode, "state", p.state.String()+" -> "+s.String(), p.spanID)
	p.state = s
}

func (p *Parser) push(kind ast.Kind, sp source.Span) {
	p.work = append(p.work, ast.NewNode(kind, sp))
}

// here is an empty span at the end of the last consumed token.
func (p *Parser) here() source.Span {
	if p.pos == 0 {
		return source.Span{}
	}
	end := p.toks[min(p.pos, len(p.toks))-1].Span.End
	return source.Span{Start: end, End: end}
}

// commit moves the working buffer into the output.
func (p *Parser) commit() {
	p.builder.Commit(p.work)
	p.work = p.work[:0]
}

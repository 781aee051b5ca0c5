package automation

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads an Expr from whitespace-separated prefix (Polish) notation,
// e.g. "+ 2 * 3 4" parses as 2 + (3 * 4).
func Parse(input string) (Expr, error) {
	tokens := strings.Fields(input)
	p := &tokenParser{tokens: tokens}
	expr, err := p.parseAny()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("automation: unexpected trailing tokens starting at %q", p.tokens[p.pos])
	}
	return expr, nil
}

type tokenParser struct {
	tokens []string
	pos    int
}

func (p *tokenParser) next() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *tokenParser) parseAny() (Expr, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("automation: unexpected end of expression")
	}
	switch tok {
	case "+":
		return p.parseBinOp(Add)
	case "-":
		return p.parseBinOp(Sub)
	case "*":
		return p.parseBinOp(Mul)
	case "/":
		return p.parseBinOp(Div)
	case "%":
		return p.parseBinOp(Rem)
	case "^":
		return p.parseBinOp(Pow)
	case "sin":
		return p.parseUnOp(Sin)
	case "cos":
		return p.parseUnOp(Cos)
	case "time":
		return BuiltInExpr{BuiltIn: GlobalTimeSeconds}, nil
	case "note_time":
		return BuiltInExpr{BuiltIn: NoteTimeSeconds}, nil
	default:
		if strings.HasPrefix(tok, "$") {
			n, err := strconv.Atoi(tok[1:])
			if err != nil {
				return nil, fmt.Errorf("automation: invalid variable reference %q: %w", tok, err)
			}
			return VarExpr{Var: Var(n)}, nil
		}
		val, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("automation: invalid token %q: %w", tok, err)
		}
		return Const(val), nil
	}
}

func (p *tokenParser) parseBinOp(op BinOp) (Expr, error) {
	left, err := p.parseAny()
	if err != nil {
		return nil, err
	}
	right, err := p.parseAny()
	if err != nil {
		return nil, err
	}
	return BinExpr{Op: op, Left: left, Right: right}, nil
}

func (p *tokenParser) parseUnOp(op UnOp) (Expr, error) {
	x, err := p.parseAny()
	if err != nil {
		return nil, err
	}
	return UnExpr{Op: op, X: x}, nil
}

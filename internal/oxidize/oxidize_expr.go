package oxidize

import (
	"fmt"
	"strings"

	"longform/internal/ast"
)

func (o *oxidizer) expr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Ident:
		o.write(e.Name)

	case *ast.Literal:
		o.literal(e)

	case *ast.Unit:
		o.write("()")

	case *ast.Binary:
		o.expr(e.Left)
		o.write(" " + e.Op.Symbol() + " ")
		o.expr(e.Right)

	case *ast.Unary:
		o.write(e.Op.Symbol())
		o.expr(e.X)

	case *ast.Reference:
		if e.Mutable {
			o.write("&mut ")
		} else {
			o.write("&")
		}
		o.expr(e.X)

	case *ast.MethodCall:
		o.expr(e.Receiver)
		o.write("." + e.Name + "(")
		o.exprList(e.Args)
		o.write(")")

	case *ast.AssocCall:
		o.write(strings.Join(e.TypePath, "::") + "::" + e.Name + "(")
		o.exprList(e.Args)
		o.write(")")

	case *ast.FnCall:
		o.expr(e.Callee)
		o.write("(")
		o.exprList(e.Args)
		o.write(")")

	case *ast.FieldAccess:
		o.expr(e.X)
		o.write("." + e.Name)

	case *ast.Index:
		o.expr(e.X)
		o.write("[")
		o.expr(e.Index)
		o.write("]")

	case *ast.Tuple:
		o.write("(")
		o.exprList(e.Elems)
		o.write(")")

	case *ast.Array:
		o.write("[")
		o.exprList(e.Elems)
		o.write("]")

	case *ast.Range:
		if e.Start != nil {
			o.expr(e.Start)
		}
		if e.Inclusive {
			o.write("..=")
		} else {
			o.write("..")
		}
		if e.End != nil {
			o.expr(e.End)
		}

	case *ast.Closure:
		if e.Move {
			o.write("move ")
		}
		o.write("|")
		for i, param := range e.Params {
			if i > 0 {
				o.write(", ")
			}
			o.write(param.Name)
			if param.Type != nil {
				o.write(": ")
				o.typ(param.Type)
			}
		}
		o.write("| ")
		o.expr(e.Body)

	case *ast.Macro:
		o.write(e.Name)
		if e.Bracket {
			o.write("![" + e.Args + "]")
		} else {
			o.write("!(" + e.Args + ")")
		}

	case *ast.Try:
		o.expr(e.X)
		o.write("?")

	case *ast.Ctor:
		switch e.Kind {
		case ast.CtorSome:
			o.write("Some(")
			o.expr(e.Arg)
			o.write(")")
		case ast.CtorNone:
			o.write("None")
		case ast.CtorOk:
			o.write("Ok(")
			o.expr(e.Arg)
			o.write(")")
		case ast.CtorErr:
			o.write("Err(")
			o.expr(e.Arg)
			o.write(")")
		}

	case *ast.Path:
		o.write(strings.Join(e.Segments, "::") + "::" + e.Name)

	case *ast.StructLit:
		if len(e.Fields) == 0 {
			o.write(e.Name + " {}")
			break
		}
		o.write(e.Name + " {")
		for i, field := range e.Fields {
			if i > 0 {
				o.write(",")
			}
			o.write(" " + field.Name + ": ")
			o.expr(field.Value)
		}
		o.write(" }")

	case *ast.Cond:
		o.write("if ")
		o.expr(e.Cond)
		o.write(" { ")
		o.expr(e.Then)
		o.write(" } else { ")
		o.expr(e.Else)
		o.write(" }")

	default:
		o.fail(fmt.Sprintf("expression %T", expr))
	}
}

func (o *oxidizer) exprList(exprs []ast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			o.write(", ")
		}
		o.expr(e)
	}
}

func (o *oxidizer) literal(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LitString:
		o.write(quote(lit.Value, '"'))
	case ast.LitChar:
		o.write(quote(lit.Value, '\''))
	default:
		o.write(lit.Value)
	}
}

func quote(s string, delim byte) string {
	var b strings.Builder
	b.WriteByte(delim)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case delim:
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(delim)
	return b.String()
}

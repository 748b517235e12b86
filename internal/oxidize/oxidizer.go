// Package oxidize emits symbolic source from the Longform syntax tree.
// The emission is canonical: one spelling per node, 4-space indentation,
// no stylistic variation between runs.
package oxidize

import (
	"fmt"
	"strings"

	"longform/internal/ast"
)

// TypeError reports a verbose type with no symbolic rendering. It should
// be unreachable for parser-produced trees and is treated as an internal
// invariant failure by the entry points.
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string {
	return "unrepresentable type: " + e.Detail
}

// File renders a complete Longform file as symbolic source.
func File(f *ast.File) (string, error) {
	o := &oxidizer{}
	for i, item := range f.Items {
		if i > 0 {
			o.b.WriteString("\n")
		}
		o.item(item)
	}
	if o.err != nil {
		return "", o.err
	}
	return o.b.String(), nil
}

type oxidizer struct {
	b      strings.Builder
	indent int
	err    error
}

func (o *oxidizer) fail(detail string) {
	if o.err == nil {
		o.err = &TypeError{Detail: detail}
	}
}

func (o *oxidizer) write(s string) {
	o.b.WriteString(s)
}

func (o *oxidizer) writeIndent() {
	o.b.WriteString(strings.Repeat("    ", o.indent))
}

func (o *oxidizer) item(item ast.Item) {
	switch it := item.(type) {
	case *ast.Function:
		o.function(it, false)
	case *ast.Struct:
		o.structItem(it)
	case *ast.Enum:
		o.enumItem(it)
	case *ast.TypeAlias:
		o.typeAlias(it)
	case *ast.Impl:
		o.implItem(it)
	case *ast.Use:
		o.write("use " + strings.Join(it.Segments, "::") + ";\n")
	case *ast.Const:
		o.write("const " + it.Name + ": ")
		o.typ(it.Type)
		o.write(" = ")
		o.expr(it.Value)
		o.write(";\n")
	case *ast.Static:
		o.write("static ")
		if it.Mutable {
			o.write("mut ")
		}
		o.write(it.Name + ": ")
		o.typ(it.Type)
		o.write(" = ")
		o.expr(it.Value)
		o.write(";\n")
	case *ast.Verbatim:
		o.write(it.Source)
		if !strings.HasSuffix(it.Source, "\n") {
			o.write("\n")
		}
	}
}

func (o *oxidizer) generics(params []ast.GenericParam) {
	if len(params) == 0 {
		return
	}
	o.write("<")
	for i, g := range params {
		if i > 0 {
			o.write(", ")
		}
		o.write(g.Name)
		if len(g.Bounds) > 0 {
			o.write(": " + strings.Join(g.Bounds, " + "))
		}
	}
	o.write(">")
}

func (o *oxidizer) function(fn *ast.Function, inImpl bool) {
	o.writeIndent()
	o.write("fn " + fn.Name)
	o.generics(fn.Generics)
	o.write("(")
	for i, param := range fn.Params {
		if i > 0 {
			o.write(", ")
		}
		if inImpl && i == 0 && param.Name == "self" {
			o.receiver(param.Type)
			continue
		}
		if param.Mutable {
			o.write("mut ")
		}
		o.write(param.Name + ": ")
		o.typ(param.Type)
	}
	o.write(")")
	if fn.Return != nil {
		o.write(" -> ")
		o.typ(fn.Return)
	}
	o.write(" {\n")
	o.indent++
	for _, stmt := range fn.Body {
		o.stmt(stmt)
	}
	o.indent--
	o.writeIndent()
	o.write("}\n")
}

// receiver renders the context parameter back to its symbolic form.
func (o *oxidizer) receiver(ty ast.Type) {
	switch t := ty.(type) {
	case *ast.Ref:
		if t.Mutable {
			o.write("&mut self")
		} else {
			o.write("&self")
		}
	default:
		o.write("self")
	}
}

func (o *oxidizer) structItem(st *ast.Struct) {
	o.write("struct " + st.Name)
	o.generics(st.Generics)
	o.write(" {\n")
	o.indent++
	for _, field := range st.Fields {
		o.writeIndent()
		o.write(field.Name + ": ")
		o.typ(field.Type)
		o.write(",\n")
	}
	o.indent--
	o.write("}\n")
}

func (o *oxidizer) enumItem(en *ast.Enum) {
	o.write("enum " + en.Name)
	o.generics(en.Generics)
	o.write(" {\n")
	o.indent++
	for _, variant := range en.Variants {
		o.writeIndent()
		o.write(variant.Name)
		switch {
		case variant.Payload != nil:
			o.write("(")
			if tup, ok := variant.Payload.(*ast.TupleType); ok {
				// Multi-payload variants travel as a tuple type and
				// unpack back into a plain payload list.
				for i, elem := range tup.Elems {
					if i > 0 {
						o.write(", ")
					}
					o.typ(elem)
				}
			} else {
				o.typ(variant.Payload)
			}
			o.write(")")
		case len(variant.Fields) > 0:
			o.write(" { ")
			for i, field := range variant.Fields {
				if i > 0 {
					o.write(", ")
				}
				o.write(field.Name + ": ")
				o.typ(field.Type)
			}
			o.write(" }")
		}
		o.write(",\n")
	}
	o.indent--
	o.write("}\n")
}

func (o *oxidizer) typeAlias(alias *ast.TypeAlias) {
	o.write("type " + alias.Name)
	o.generics(alias.Generics)
	o.write(" = ")
	o.typ(alias.Type)
	o.write(";\n")
}

func (o *oxidizer) implItem(impl *ast.Impl) {
	o.write("impl ")
	if impl.Trait != "" {
		o.write(impl.Trait + " for ")
	}
	o.write(impl.Target + " {\n")
	o.indent++
	for i, fn := range impl.Funcs {
		if i > 0 {
			o.write("\n")
		}
		o.function(fn, true)
	}
	o.indent--
	o.write("}\n")
}

func (o *oxidizer) stmt(stmt ast.Stmt) {
	o.writeIndent()
	switch s := stmt.(type) {
	case *ast.Let:
		o.write("let ")
		if s.Mutable {
			o.write("mut ")
		}
		o.write(s.Name)
		if s.Type != nil {
			o.write(": ")
			o.typ(s.Type)
		}
		o.write(" = ")
		o.expr(s.Value)
		o.write(";\n")

	case *ast.Assign:
		o.expr(s.Target)
		o.write(" = ")
		o.expr(s.Value)
		o.write(";\n")

	case *ast.ExprStmt:
		o.expr(s.X)
		if s.Semicolon {
			o.write(";\n")
		} else {
			o.write("\n")
		}

	case *ast.Return:
		o.write("return")
		if s.Value != nil {
			o.write(" ")
			o.expr(s.Value)
		}
		o.write(";\n")

	case *ast.Break:
		o.write("break;\n")

	case *ast.Continue:
		o.write("continue;\n")

	case *ast.If:
		o.write("if ")
		o.expr(s.Cond)
		o.write(" {\n")
		o.block(s.Then)
		o.writeIndent()
		o.write("}")
		if s.Else != nil {
			o.write(" else {\n")
			o.block(s.Else)
			o.writeIndent()
			o.write("}")
		}
		o.write("\n")

	case *ast.While:
		o.write("while ")
		o.expr(s.Cond)
		o.write(" {\n")
		o.block(s.Body)
		o.writeIndent()
		o.write("}\n")

	case *ast.ForEach:
		o.write("for " + s.Var + " in ")
		o.expr(s.Iter)
		o.write(" {\n")
		o.block(s.Body)
		o.writeIndent()
		o.write("}\n")

	case *ast.Loop:
		o.write("loop {\n")
		o.block(s.Body)
		o.writeIndent()
		o.write("}\n")

	case *ast.Match:
		o.write("match ")
		o.expr(s.Subject)
		o.write(" {\n")
		o.indent++
		for _, arm := range s.Arms {
			o.writeIndent()
			o.pattern(arm.Pat)
			o.write(" => ")
			o.expr(arm.Value)
			o.write(",\n")
		}
		o.indent--
		o.writeIndent()
		o.write("}\n")
	}
}

func (o *oxidizer) block(stmts []ast.Stmt) {
	o.indent++
	for _, stmt := range stmts {
		o.stmt(stmt)
	}
	o.indent--
}

func (o *oxidizer) pattern(pat ast.Pattern) {
	switch p := pat.(type) {
	case *ast.BindPat:
		if p.Mutable {
			o.write("mut ")
		}
		o.write(p.Name)
	case *ast.WildcardPat:
		o.write("_")
	case *ast.LitPat:
		o.literal(p.Lit)
	case *ast.TuplePat:
		o.write("(")
		for i, elem := range p.Elems {
			if i > 0 {
				o.write(", ")
			}
			o.pattern(elem)
		}
		o.write(")")
	case *ast.CtorPat:
		switch p.Kind {
		case ast.CtorSome:
			o.write("Some(")
			o.pattern(p.Sub)
			o.write(")")
		case ast.CtorNone:
			o.write("None")
		case ast.CtorOk:
			o.write("Ok(")
			o.pattern(p.Sub)
			o.write(")")
		case ast.CtorErr:
			o.write("Err(")
			o.pattern(p.Sub)
			o.write(")")
		}
	case *ast.VariantPat:
		o.write(strings.Join(p.Segments, "::") + "::" + p.Name)
	default:
		o.fail(fmt.Sprintf("pattern %T", pat))
	}
}

package oxidize

import (
	"fmt"

	"longform/internal/ast"
	"longform/internal/vocab"
)

func (o *oxidizer) typ(ty ast.Type) {
	switch t := ty.(type) {
	case *ast.Named:
		name := t.Name
		if name == "string slice" {
			name = "str"
		} else if mapped, ok := vocab.TypeNameToSymbolic(name); ok {
			name = mapped
		}
		o.write(name)
		if len(t.Args) > 0 {
			o.write("<")
			for i, arg := range t.Args {
				if i > 0 {
					o.write(", ")
				}
				o.typ(arg)
			}
			o.write(">")
		}

	case *ast.Ref:
		if t.Mutable {
			o.write("&mut ")
		} else {
			o.write("&")
		}
		o.typ(t.Elem)

	case *ast.RawPtr:
		if t.Mutable {
			o.write("*mut ")
		} else {
			o.write("*const ")
		}
		o.typ(t.Elem)

	case *ast.OptionType:
		o.write("Option<")
		o.typ(t.Elem)
		o.write(">")

	case *ast.ResultType:
		o.write("Result<")
		o.typ(t.Ok)
		o.write(", ")
		o.typ(t.Err)
		o.write(">")

	case *ast.ListType:
		o.write("Vec<")
		o.typ(t.Elem)
		o.write(">")

	case *ast.BoxType:
		o.write("Box<")
		o.typ(t.Elem)
		o.write(">")

	case *ast.TupleType:
		o.write("(")
		for i, elem := range t.Elems {
			if i > 0 {
				o.write(", ")
			}
			o.typ(elem)
		}
		o.write(")")

	case *ast.UnitType:
		o.write("()")

	case *ast.SliceType:
		o.write("[")
		o.typ(t.Elem)
		o.write("]")

	case *ast.ArrayType:
		o.write("[")
		o.typ(t.Elem)
		o.write("; " + t.Len + "]")

	case *ast.FnType:
		o.write("fn(")
		for i, param := range t.Params {
			if i > 0 {
				o.write(", ")
			}
			o.typ(param)
		}
		o.write(") -> ")
		o.typ(t.Ret)

	case *ast.HashMapType:
		o.write("HashMap<")
		o.typ(t.Key)
		o.write(", ")
		o.typ(t.Value)
		o.write(">")

	case *ast.RcType:
		if t.Atomic {
			o.write("Arc<")
		} else {
			o.write("Rc<")
		}
		o.typ(t.Elem)
		o.write(">")

	case *ast.ImplTrait:
		o.fail("opaque 'impl " + t.Bound + "' cannot be recovered")

	case *ast.Unknown:
		o.fail("the verbose form lost this type ('unknown_type')")

	default:
		o.fail(fmt.Sprintf("type %T", ty))
	}
}

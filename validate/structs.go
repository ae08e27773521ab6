package validate

import (
	"github.com/tidwall/btree"

	"github.com/obbidlgo/obbidl/ast"
	"github.com/obbidlgo/obbidl/internal/arena"
	"github.com/obbidlgo/obbidl/ir"
	"github.com/obbidlgo/obbidl/lexer"
	"github.com/obbidlgo/obbidl/reporter"
)

// structResolver resolves ast.Struct definitions into the shared ir.Struct
// arena, detecting UndefinedStruct and RecursiveStruct errors along the
// way (spec §4.4 "Structs"). The same resolveType entry point is used for
// protocol payload items, so a struct reached only through a payload gets
// identical treatment to one reached through another struct's field.
//
// defs is a btree.Map rather than a plain map so resolveStructs can walk
// DFS roots in a fixed, name-sorted order: map iteration order is
// unspecified in Go, and the "first cycle reached" error this package
// reports (spec E6) must be the same on every run over the same source.
type structResolver struct {
	defs     btree.Map[string, ast.Span[*ast.Struct]]
	arena    *arena.Arena[ir.Struct]
	resolved map[string]arena.Pointer[ir.Struct]
	onStack  map[string]bool
	handler  *reporter.Handler
}

func newStructResolver(structs []ast.Span[*ast.Struct], handler *reporter.Handler) *structResolver {
	r := &structResolver{
		arena:    &arena.Arena[ir.Struct]{},
		resolved: make(map[string]arena.Pointer[ir.Struct]),
		onStack:  make(map[string]bool),
		handler:  handler,
	}
	for _, s := range structs {
		r.defs.Set(s.Value.Name, s)
	}
	return r
}

// resolveStructs walks every declared struct in sorted-name order, so
// dependency-order arena insertion (leaves first) and "first cycle
// reached" error reporting are both deterministic (spec E6).
func (r *structResolver) resolveStructs() {
	r.defs.Scan(func(name string, decl ast.Span[*ast.Struct]) bool {
		r.resolve(name, decl.Range)
		return true
	})
}

func (r *structResolver) resolve(name string, refSpan lexer.Span) (arena.Pointer[ir.Struct], bool) {
	if ptr, ok := r.resolved[name]; ok {
		return ptr, true
	}
	if r.onStack[name] {
		r.handler.Report(&StructError{Kind: RecursiveStruct, Name: name, span: refSpan})
		return arena.Pointer[ir.Struct]{}, false
	}
	def, ok := r.defs.Get(name)
	if !ok {
		r.handler.Report(&StructError{Kind: UndefinedStruct, Name: name, span: refSpan})
		return arena.Pointer[ir.Struct]{}, false
	}

	r.onStack[name] = true
	fields := make([]ir.Field, 0, len(def.Value.Fields))
	ok = true
	for _, f := range def.Value.Fields {
		ty, fieldOK := r.resolveType(f.Type, def.Range)
		if !fieldOK {
			ok = false
			continue
		}
		fields = append(fields, ir.Field{Name: f.Name, Type: ty})
	}
	delete(r.onStack, name)
	if !ok {
		return arena.Pointer[ir.Struct]{}, false
	}

	ptr := r.arena.New(ir.Struct{Name: name, Fields: fields})
	r.resolved[name] = ptr
	return ptr, true
}

// resolveType resolves an ast.Type, recursively resolving any struct it
// names or contains (spec §4.4 "validate_type").
func (r *structResolver) resolveType(t ast.Type, refSpan lexer.Span) (ir.Type, bool) {
	switch t.Kind {
	case ast.KindBool:
		return ir.Type{Kind: ir.KindBool}, true
	case ast.KindInt:
		return ir.Type{Kind: ir.KindInt, Int: ir.IntType{Signed: t.Int.Signed, Size: ir.IntSize(t.Int.Size)}}, true
	case ast.KindArray:
		elem, ok := r.resolveType(*t.Elem, refSpan)
		if !ok {
			return ir.Type{}, false
		}
		return ir.Type{Kind: ir.KindArray, Elem: &elem, Length: t.Length}, true
	case ast.KindStruct:
		ptr, ok := r.resolve(t.Struct, refSpan)
		if !ok {
			return ir.Type{}, false
		}
		return ir.Type{Kind: ir.KindStruct, Struct: ptr}, true
	default:
		panic("validate: unknown ast.TypeKind")
	}
}

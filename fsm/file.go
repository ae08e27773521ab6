package fsm

import "github.com/obbidlgo/obbidl/ast"

// defaultRoleA and defaultRoleB name the two-party pair a protocol gets when
// its source declares no roles clause (spec §4.3 "Default roles").
const (
	defaultRoleA = "C"
	defaultRoleB = "S"
)

// Protocol pairs a compiled StateMachine with the role names its
// transitions move messages between. Roles holds exactly what the source
// declared (empty if it declared no roles clause at all); RoleA/RoleB are the
// two-party pair validation should use, already defaulted to ("C", "S")
// when Roles is empty. A declared role count other than 0 or 2 is left in
// Roles for the validator to reject as IncorrectNumberOfRoles — this
// package only compiles the transition structure, never role cardinality.
type Protocol struct {
	Name  string
	Roles []string
	RoleA string
	RoleB string
	SM    *StateMachine
}

// File is every protocol of an ast.File, compiled to a StateMachine.
type File struct {
	Protocols []Protocol
}

// CompileFile lowers and compiles every protocol declared in f (spec §6
// compile(File) -> FileOfStateMachines).
func CompileFile(f *ast.File) *File {
	out := &File{Protocols: make([]Protocol, 0, len(f.Protocols))}
	for _, p := range f.Protocols {
		out.Protocols = append(out.Protocols, CompileProtocol(p.Value))
	}
	return out
}

// CompileProtocol lowers and compiles a single ast.Protocol.
func CompileProtocol(p *ast.Protocol) Protocol {
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = r.Name
	}
	roleA, roleB := defaultRoleA, defaultRoleB
	switch len(roles) {
	case 0:
		// use defaults
	case 2:
		roleA, roleB = roles[0], roles[1]
	default:
		// left for the validator to reject; RoleA/RoleB are meaningless here
	}
	return Protocol{
		Name:  p.Name,
		Roles: roles,
		RoleA: roleA,
		RoleB: roleB,
		SM:    Compile(Lower(p.Seq)),
	}
}

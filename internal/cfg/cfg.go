// Package cfg builds the control-flow graph spec.md §3 assumes is supplied
// externally. Node/edge shape (an id, a source line, an AST fragment,
// ordered children, a node kind) follows the general structure of the
// pack's other CFG builders (e.g. shivasurya-code-pathfinder's
// sast-engine/graph/callgraph/cfg and uber-go-nilaway's
// assertion/function/preprocess/cfg.go): one node per statement, straight
// lines threaded by a single child, branches by two ordered children.
package cfg

import "github.com/pathprove/pathprove/internal/ast"

// Kind is one of the node kinds spec.md §3 lists for CfgNode.
type Kind int

const (
	Enter Kind = iota
	Exit
	AnnAssign
	Assign
	IfCond
	WhileCond
	Return
	Pass
	Call
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "Enter"
	case Exit:
		return "Exit"
	case AnnAssign:
		return "AnnAssign"
	case Assign:
		return "Assign"
	case IfCond:
		return "IfCond"
	case WhileCond:
		return "WhileCond"
	case Return:
		return "Return"
	case Pass:
		return "Pass"
	case Call:
		return "Call"
	default:
		return "Unknown"
	}
}

// Node is a single control-flow graph node. Children ordering is stable and
// meaningful per spec.md §3: index 0 is the then/loop-body edge, index 1 is
// the else/loop-exit edge for IfCond/WhileCond nodes; straight-line node
// kinds carry at most one child.
type Node struct {
	ID       int
	Line     int
	Kind     Kind
	Stmt     ast.Statement  // nil for Enter/Exit
	Cond     ast.Expression // set for IfCond/WhileCond
	Children []*Node
	Func     *ast.FunctionDef // set on the Enter node only
}

// Builder assigns monotonically increasing node IDs for one function's CFG.
type Builder struct {
	nextID int
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) newNode(kind Kind, line int) *Node {
	n := &Node{ID: b.nextID, Kind: kind, Line: line}
	b.nextID++
	return n
}

// Build constructs the CFG for fn and returns its Enter node.
func (b *Builder) Build(fn *ast.FunctionDef) *Node {
	exit := b.newNode(Exit, fn.GetToken().Line)
	enter := b.newNode(Enter, fn.GetToken().Line)
	enter.Func = fn

	body := b.buildBlock(fn.Body, exit, exit)
	enter.Children = []*Node{body}
	return enter
}

// buildBlock threads a list of statements into a CFG chain, terminating at
// `next` (the node to run after the block) and routing `return` statements
// straight to `exit`. It returns the entry node of the chain, or `next` if
// the block is empty.
func (b *Builder) buildBlock(stmts []ast.Statement, next, exit *Node) *Node {
	cur := next
	for i := len(stmts) - 1; i >= 0; i-- {
		cur = b.buildStmt(stmts[i], cur, exit)
	}
	return cur
}

func (b *Builder) buildStmt(stmt ast.Statement, next, exit *Node) *Node {
	switch s := stmt.(type) {
	case *ast.AnnAssignStmt:
		n := b.newNode(AnnAssign, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{next}
		return n
	case *ast.AssignStmt:
		n := b.newNode(Assign, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{next}
		return n
	case *ast.SubscriptAssignStmt:
		n := b.newNode(Assign, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{next}
		return n
	case *ast.PassStmt:
		n := b.newNode(Pass, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{next}
		return n
	case *ast.ExprStmt:
		n := b.newNode(Call, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{next}
		return n
	case *ast.ReturnStmt:
		n := b.newNode(Return, s.Token.Line)
		n.Stmt = s
		n.Children = []*Node{exit}
		return n
	case *ast.IfStmt:
		n := b.newNode(IfCond, s.Token.Line)
		n.Cond = s.Cond
		thenEntry := b.buildBlock(s.Then, next, exit)
		var elseEntry *Node
		if s.Else != nil {
			elseEntry = b.buildBlock(s.Else, next, exit)
		} else {
			elseEntry = next
		}
		n.Children = []*Node{thenEntry, elseEntry}
		return n
	case *ast.WhileStmt:
		n := b.newNode(WhileCond, s.Token.Line)
		n.Cond = s.Cond
		bodyEntry := b.buildBlock(s.Body, n, exit)
		n.Children = []*Node{bodyEntry, next}
		return n
	default:
		return next
	}
}

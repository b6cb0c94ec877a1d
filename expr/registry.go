/*
Package expr implements the expression registry: a directed-acyclic store
of elementary real-number expressions with cached evaluation at
geometrically increasing precision levels, plus the tenacious strict
comparison used at algebraic tie-decision points during generator
construction.

The source this is reimplemented from dispatches on a tagged "op-data +
function pointer" struct with downcasts (see original_source/expressions.c);
here the tag is a Go kind enum matched exhaustively in eval.go, and each
node's cache is a dense, monotonically growing slice of balls keyed by
level, per the "Expression DAG as a polymorphic graph" note in
spec.md §9.
*/
package expr

import (
	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/rational"
)

// Kind tags the elementary operation a node performs.
type Kind int

const (
	KindConstant Kind = iota // rational constant q
	KindExpQ                 // exp(q), q rational
	KindLogQ                 // log(q), q rational, q>0
	KindExpE                 // exp(a)
	KindNeg                  // -a
	KindLogE                 // log(a)
	KindLog1p                // log(1+a)
	KindLog1m                // log(1-a)
	KindComplement           // 1-a
	KindAdd                  // a+b
	KindSub                  // a-b
	KindMul                  // a*b
	KindDiv                  // a/b
)

// Expr is one node in the registry's expression DAG. It carries a
// back-reference to its owning registry and its own stable index as a
// lookup convenience (spec.md §9's "Cyclic references" note): the node
// keeps both a pointer to its registry and its index, so the registry and
// its nodes point at each other; the registry is the sole owner and Go's
// GC makes that cycle harmless.
type Expr struct {
	registry *Registry
	index    int
	kind     Kind
	q        *rational.Rational
	a, b     *Expr
	cache    []ball.Ball
}

// Registry is an insertion-ordered arena of expressions with stable
// indices; it owns every node's lifetime and is destroyed as a unit when
// the enclosing alignment request completes (spec.md §3's "Registries as
// arenas" note — no explicit Free is needed under Go's GC, but the type
// still exposes Len/At so callers can serialize the node list the way the
// arena-of-dense-handles design implies).
type Registry struct {
	nodes []*Expr
}

// NewRegistry returns an empty expression registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of registered expressions.
func (r *Registry) Len() int { return len(r.nodes) }

// At returns the expression at the given stable index.
func (r *Registry) At(index int) *Expr { return r.nodes[index] }

func (r *Registry) insert(e *Expr) *Expr {
	e.registry = r
	e.index = len(r.nodes)
	r.nodes = append(r.nodes, e)
	return e
}

// Index returns e's stable position in its registry.
func (e *Expr) Index() int { return e.index }

// Registry returns the registry that owns e.
func (e *Expr) Registry() *Registry { return e.registry }

// ConstantValue returns e's rational value and true if e was built by
// Constant; used by callers that alias repeated constants (e.g. §3's
// "π_i with aliasing when π values repeat") instead of registering
// duplicate nodes.
func (e *Expr) ConstantValue() (*rational.Rational, bool) {
	if e.kind != KindConstant {
		return nil, false
	}
	return e.q, true
}

// Constant registers a rational constant.
func (r *Registry) Constant(q *rational.Rational) *Expr {
	return r.insert(&Expr{kind: KindConstant, q: q})
}

// ExpQ registers exp(q) for a rational constant q.
func (r *Registry) ExpQ(q *rational.Rational) *Expr {
	return r.insert(&Expr{kind: KindExpQ, q: q})
}

// LogQ registers log(q) for a positive rational constant q.
func (r *Registry) LogQ(q *rational.Rational) *Expr {
	if q.Sign() <= 0 {
		panic("expr: LogQ of a non-positive rational")
	}
	return r.insert(&Expr{kind: KindLogQ, q: q})
}

// Exp registers exp(a).
func (r *Registry) Exp(a *Expr) *Expr { return r.insert(&Expr{kind: KindExpE, a: a}) }

// Neg registers -a.
func (r *Registry) Neg(a *Expr) *Expr { return r.insert(&Expr{kind: KindNeg, a: a}) }

// Log registers log(a).
func (r *Registry) Log(a *Expr) *Expr { return r.insert(&Expr{kind: KindLogE, a: a}) }

// Log1p registers log(1+a).
func (r *Registry) Log1p(a *Expr) *Expr { return r.insert(&Expr{kind: KindLog1p, a: a}) }

// Log1m registers log(1-a).
func (r *Registry) Log1m(a *Expr) *Expr { return r.insert(&Expr{kind: KindLog1m, a: a}) }

// Complement registers 1-a.
func (r *Registry) Complement(a *Expr) *Expr {
	return r.insert(&Expr{kind: KindComplement, a: a})
}

// Add registers a+b.
func (r *Registry) Add(a, b *Expr) *Expr { return r.insert(&Expr{kind: KindAdd, a: a, b: b}) }

// Sub registers a-b.
func (r *Registry) Sub(a, b *Expr) *Expr { return r.insert(&Expr{kind: KindSub, a: a, b: b}) }

// Mul registers a*b.
func (r *Registry) Mul(a, b *Expr) *Expr { return r.insert(&Expr{kind: KindMul, a: a, b: b}) }

// Div registers a/b.
func (r *Registry) Div(a, b *Expr) *Expr { return r.insert(&Expr{kind: KindDiv, a: a, b: b}) }

package expr

import (
	"math/big"

	"github.com/openalign/tkf91cert/ball"
)

// Eval returns a real-ball enclosure of e's exact value at the given
// precision level. Calling it at a level higher than what is cached
// evaluates and caches every intermediate level in sequence, so the
// cache invariant "cache[l] exists implies cache[0..l] exist" always
// holds; calling it at an already-cached level is a pure lookup. An
// intermediate level whose evaluation panics (e.g. a log whose argument
// is not yet provably positive at that precision) is cached as an
// unbounded ball; a panic at the requested level itself propagates.
func (e *Expr) Eval(level int) ball.Ball {
	if level < 0 || level >= ball.MaxLevel {
		panic("expr: level out of range")
	}
	lower := func(lvl int) (b ball.Ball) {
		defer func() {
			if recover() != nil {
				b = ball.Ball{Mid: new(big.Float), Rad: new(big.Float).SetInf(false)}
			}
		}()
		return e.compute(lvl)
	}
	for len(e.cache) < level {
		e.cache = append(e.cache, lower(len(e.cache)))
	}
	if len(e.cache) == level {
		e.cache = append(e.cache, e.compute(level))
	}
	return e.cache[level]
}

func (e *Expr) compute(level int) ball.Ball {
	switch e.kind {
	case KindConstant:
		return e.q.Ball(level)
	case KindExpQ:
		return ball.Exp(e.q.Ball(level), level)
	case KindLogQ:
		return ball.Log(e.q.Ball(level), level)
	case KindExpE:
		return ball.Exp(e.a.Eval(level), level)
	case KindNeg:
		return ball.Neg(e.a.Eval(level), level)
	case KindLogE:
		return ball.Log(e.a.Eval(level), level)
	case KindLog1p:
		return ball.Log1p(e.a.Eval(level), level)
	case KindLog1m:
		return ball.Log1m(e.a.Eval(level), level)
	case KindComplement:
		return ball.Complement(e.a.Eval(level), level)
	case KindAdd:
		return ball.Add(e.a.Eval(level), e.b.Eval(level), level)
	case KindSub:
		return ball.Sub(e.a.Eval(level), e.b.Eval(level), level)
	case KindMul:
		return ball.Mul(e.a.Eval(level), e.b.Eval(level), level)
	case KindDiv:
		return ball.Quo(e.a.Eval(level), e.b.Eval(level), level)
	default:
		panic("expr: unhandled kind in compute")
	}
}

// CachedLevels reports how many levels of e's cache are currently
// populated, for tests that assert the monotone-growth invariant.
func (e *Expr) CachedLevels() int { return len(e.cache) }

package types

// TaskContext carries the resource bookkeeping threaded through every
// Eval call: a tick budget guarding against non-terminating programs,
// and a non-tail call-depth counter bounding ordinary (non-tail)
// recursion by the host stack, per spec.md §5's recursion bound. This
// mirrors the teacher's TaskContext (ticks, permissions, index
// context) trimmed to what SOC's single-threaded, object-free
// evaluator actually needs.
type TaskContext struct {
	TicksRemaining int64

	// NonTailDepth counts live non-tail Function applications. Tail
	// calls never increment this (they reuse the current frame via the
	// TCO trampoline in eval); only non-tail application (eval's Eval
	// and Apply) does. MaxNonTailDepth bounds it.
	NonTailDepth    int
	MaxNonTailDepth int
}

// DefaultTickBudget is generous enough that a tail-recursive loop of
// the depth named in spec.md §8 scenario 4 (100,000 iterations) runs to
// completion without tripping the infinite-loop guard.
const DefaultTickBudget int64 = 50_000_000

// MinNonTailDepth is the minimum non-tail recursion depth spec.md §5
// requires the implementation to document and support.
const MinNonTailDepth = 200

// DefaultMaxNonTailDepth is comfortably above MinNonTailDepth; ordinary
// (non-tail) recursive SOC programs rarely need more before a
// tail-recursive reformulation is the right fix.
const DefaultMaxNonTailDepth = 4000

// NewTaskContext creates a context with the default budgets.
func NewTaskContext() *TaskContext {
	return &TaskContext{
		TicksRemaining:  DefaultTickBudget,
		MaxNonTailDepth: DefaultMaxNonTailDepth,
	}
}

// ConsumeTick decrements the remaining tick budget and reports whether
// evaluation may continue.
func (ctx *TaskContext) ConsumeTick() bool {
	ctx.TicksRemaining--
	return ctx.TicksRemaining > 0
}

// EnterNonTailCall increments the non-tail call depth, returning false
// (and leaving the counter unchanged) if doing so would exceed the
// configured bound.
func (ctx *TaskContext) EnterNonTailCall() bool {
	if ctx.NonTailDepth >= ctx.MaxNonTailDepth {
		return false
	}
	ctx.NonTailDepth++
	return true
}

// ExitNonTailCall decrements the non-tail call depth on return from a
// non-tail application.
func (ctx *TaskContext) ExitNonTailCall() {
	if ctx.NonTailDepth > 0 {
		ctx.NonTailDepth--
	}
}

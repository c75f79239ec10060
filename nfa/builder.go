package nfa

import (
	"github.com/pkg/errors"

	"github.com/liran-funaro/lexgen/regex"
)

// Builder augments an NFA incrementally with the regexes of a rule
// set, each carrying an opaque accepting value.
type Builder[A any] struct {
	nfa *NFA[A]
}

// NewBuilder wraps n for incremental construction.
func NewBuilder[A any](n *NFA[A]) *Builder[A] {
	return &Builder[A]{nfa: n}
}

// AddRegex builds re into the NFA, resolving Var references against
// bindings, and marks re's terminal state as accepting with value.
// State 0 gets a fresh epsilon edge to the sub-NFA built for re, so
// an NFA built from many calls has one epsilon edge per rule out of
// its initial state.
func (b *Builder[A]) AddRegex(bindings regex.Bindings, re regex.Regex, value A) error {
	entry, exit, err := b.build(bindings, re, map[string]bool{})
	if err != nil {
		return err
	}
	b.nfa.addEpsilon(b.nfa.InitialState(), entry)
	b.nfa.setAccept(exit, value)
	return nil
}

// build translates one regex form into a sub-NFA and returns its
// entry and exit states. expanding tracks the Var names currently
// being resolved on this call stack, so a binding cycle is reported as
// regex.ErrUndefinedBinding instead of diverging (spec Open Question
// ii: cyclic expansion is an UndefinedBinding-class error).
func (b *Builder[A]) build(bindings regex.Bindings, re regex.Regex, expanding map[string]bool) (entry, exit StateIdx, err error) {
	switch r := re.(type) {
	case regex.Char:
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		b.nfa.addChar(s1, s2, r.Value)
		return s1, s2, nil

	case regex.String:
		runes := []rune(r.Value)
		if len(runes) == 0 {
			s1, s2 := b.nfa.newState(), b.nfa.newState()
			b.nfa.addEpsilon(s1, s2)
			return s1, s2, nil
		}
		start := b.nfa.newState()
		cur := start
		for _, c := range runes {
			next := b.nfa.newState()
			b.nfa.addChar(cur, next, c)
			cur = next
		}
		return start, cur, nil

	case regex.CharSet:
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		for _, elem := range r.Elems {
			if elem.Single() {
				b.nfa.addChar(s1, s2, elem.Lo)
			} else {
				b.nfa.addRange(s1, s2, elem.Lo, elem.Hi)
			}
		}
		return s1, s2, nil

	case regex.ZeroOrMore:
		innerEntry, innerExit, err := b.build(bindings, r.Re, expanding)
		if err != nil {
			return 0, 0, err
		}
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEpsilon(s1, innerEntry)
		b.nfa.addEpsilon(innerExit, s2)
		b.nfa.addEpsilon(s1, s2)
		b.nfa.addEpsilon(s2, s1)
		return s1, s2, nil

	case regex.OneOrMore:
		innerEntry, innerExit, err := b.build(bindings, r.Re, expanding)
		if err != nil {
			return 0, 0, err
		}
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEpsilon(s1, innerEntry)
		b.nfa.addEpsilon(innerExit, s2)
		b.nfa.addEpsilon(s2, s1)
		return s1, s2, nil

	case regex.ZeroOrOne:
		innerEntry, innerExit, err := b.build(bindings, r.Re, expanding)
		if err != nil {
			return 0, 0, err
		}
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEpsilon(s1, innerEntry)
		b.nfa.addEpsilon(innerExit, s2)
		b.nfa.addEpsilon(s1, s2)
		return s1, s2, nil

	case regex.Concat:
		leftEntry, leftExit, err := b.build(bindings, r.Left, expanding)
		if err != nil {
			return 0, 0, err
		}
		rightEntry, rightExit, err := b.build(bindings, r.Right, expanding)
		if err != nil {
			return 0, 0, err
		}
		b.nfa.addEpsilon(leftExit, rightEntry)
		return leftEntry, rightExit, nil

	case regex.Or:
		leftEntry, leftExit, err := b.build(bindings, r.Left, expanding)
		if err != nil {
			return 0, 0, err
		}
		rightEntry, rightExit, err := b.build(bindings, r.Right, expanding)
		if err != nil {
			return 0, 0, err
		}
		s1, s2 := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEpsilon(s1, leftEntry)
		b.nfa.addEpsilon(s1, rightEntry)
		b.nfa.addEpsilon(leftExit, s2)
		b.nfa.addEpsilon(rightExit, s2)
		return s1, s2, nil

	case regex.Var:
		target, ok := bindings[r.Name]
		if !ok {
			return 0, 0, errors.Wrapf(regex.ErrUndefinedBinding, "variable %q", r.Name)
		}
		if expanding[r.Name] {
			return 0, 0, errors.Wrapf(regex.ErrUndefinedBinding, "variable %q expands cyclically", r.Name)
		}
		expanding[r.Name] = true
		defer delete(expanding, r.Name)
		return b.build(bindings, target, expanding)

	default:
		return 0, 0, errors.Errorf("regex: unhandled form %T", re)
	}
}

// Package nfa implements a Thompson-style nondeterministic finite
// automaton: states live in a flat, index-addressed vector so the
// automaton has no owned-pointer cycles and can be dropped trivially
// once converted to a DFA.
package nfa

import "sort"

// StateIdx is a small integer identifying a state, stable for the
// NFA's lifetime.
type StateIdx int

// RangeTransition is an outgoing transition on any scalar in [Lo, Hi].
type RangeTransition struct {
	Lo, Hi rune
	To     []StateIdx
}

type state[A any] struct {
	epsilon []StateIdx
	chars   map[rune][]StateIdx
	ranges  []RangeTransition
	accept  *A
}

// NFA is an automaton over runes, parametric over the accepting-value
// type A. State 0 is the permanent initial state: every rule added via
// Builder.AddRegex gets an epsilon edge from state 0 to its own entry
// state, so the initial state has one epsilon edge per rule.
type NFA[A any] struct {
	states     []state[A]
	failAction *A
}

// New creates an NFA with its permanent initial state (index 0)
// already allocated.
func New[A any]() *NFA[A] {
	n := &NFA[A]{}
	n.newState()
	return n
}

// InitialState returns the NFA's initial state, always 0.
func (n *NFA[A]) InitialState() StateIdx { return 0 }

// NumStates returns the number of allocated states.
func (n *NFA[A]) NumStates() int { return len(n.states) }

func (n *NFA[A]) newState() StateIdx {
	idx := StateIdx(len(n.states))
	n.states = append(n.states, state[A]{chars: map[rune][]StateIdx{}})
	return idx
}

func (n *NFA[A]) addEpsilon(from, to StateIdx) {
	n.states[from].epsilon = append(n.states[from].epsilon, to)
}

func (n *NFA[A]) addChar(from, to StateIdx, c rune) {
	n.states[from].chars[c] = append(n.states[from].chars[c], to)
}

func (n *NFA[A]) addRange(from, to StateIdx, lo, hi rune) {
	s := &n.states[from]
	for i := range s.ranges {
		if s.ranges[i].Lo == lo && s.ranges[i].Hi == hi {
			s.ranges[i].To = append(s.ranges[i].To, to)
			return
		}
	}
	s.ranges = append(s.ranges, RangeTransition{Lo: lo, Hi: hi, To: []StateIdx{to}})
}

func (n *NFA[A]) setAccept(state StateIdx, value A) {
	v := value
	n.states[state].accept = &v
}

// SetFailAction records the NFA-wide fail action, used when no rule
// accepts; it is carried through to the DFA by the converter.
func (n *NFA[A]) SetFailAction(value A) {
	v := value
	n.failAction = &v
}

// FailAction returns the NFA-wide fail action, if any.
func (n *NFA[A]) FailAction() (A, bool) {
	if n.failAction == nil {
		var zero A
		return zero, false
	}
	return *n.failAction, true
}

// Accept returns the accepting value of state, if it is accepting.
func (n *NFA[A]) Accept(state StateIdx) (A, bool) {
	if a := n.states[state].accept; a != nil {
		return *a, true
	}
	var zero A
	return zero, false
}

// EpsilonTransitions returns the epsilon-successors of state.
func (n *NFA[A]) EpsilonTransitions(state StateIdx) []StateIdx {
	return n.states[state].epsilon
}

// CharTransitions returns the scalar transitions of state as a map
// from rune to successor set.
func (n *NFA[A]) CharTransitions(state StateIdx) map[rune][]StateIdx {
	return n.states[state].chars
}

// RangeTransitions returns the range transitions of state.
func (n *NFA[A]) RangeTransitions(state StateIdx) []RangeTransition {
	return n.states[state].ranges
}

// ComputeClosure returns the epsilon-closure of the given state set:
// every state reachable from it via epsilon edges, including the
// states in the input set. Iteration is in ascending state-index
// order, both over the input set and over each state's successors, so
// that repeated calls on the same input set always produce the same
// result (required for reproducible DFA construction).
func (n *NFA[A]) ComputeClosure(states []StateIdx) []StateIdx {
	seen := make(map[StateIdx]bool, len(states))
	var worklist []StateIdx

	sorted := append([]StateIdx(nil), states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, s := range sorted {
		if !seen[s] {
			seen[s] = true
			worklist = append(worklist, s)
		}
	}

	for i := 0; i < len(worklist); i++ {
		succ := append([]StateIdx(nil), n.states[worklist[i]].epsilon...)
		sort.Slice(succ, func(a, b int) bool { return succ[a] < succ[b] })
		for _, s := range succ {
			if !seen[s] {
				seen[s] = true
				worklist = append(worklist, s)
			}
		}
	}

	sort.Slice(worklist, func(i, j int) bool { return worklist[i] < worklist[j] })
	return worklist
}

// Simulate walks input rune by rune, maintaining the epsilon-closure
// of the current state set, and reports the accepting value of the
// lowest-indexed accepting state reached after consuming the whole
// input (ties broken by first-added rule). It exists for testing
// NFA/DFA equivalence; the core does not otherwise execute NFAs.
func (n *NFA[A]) Simulate(input []rune) (A, bool) {
	current := n.ComputeClosure([]StateIdx{n.InitialState()})

	for _, c := range input {
		next := map[StateIdx]bool{}
		for _, s := range current {
			for _, t := range n.states[s].chars[c] {
				next[t] = true
			}
			for _, r := range n.states[s].ranges {
				if c >= r.Lo && c <= r.Hi {
					for _, t := range r.To {
						next[t] = true
					}
				}
			}
		}
		if len(next) == 0 {
			var zero A
			return zero, false
		}
		flat := make([]StateIdx, 0, len(next))
		for s := range next {
			flat = append(flat, s)
		}
		current = n.ComputeClosure(flat)
	}

	for _, s := range current {
		if a := n.states[s].accept; a != nil {
			return *a, true
		}
	}
	var zero A
	return zero, false
}

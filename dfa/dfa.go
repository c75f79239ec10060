// Package dfa implements the deterministic automaton produced by
// subset-constructing an nfa.NFA, plus the splicing operation that
// lets a rule-set driver compose several sub-DFAs into one composite
// automaton with named entry states.
package dfa

// StateIdx is a small integer identifying a DFA state.
type StateIdx int

// RangeTransition is an outgoing transition on any scalar in [Lo, Hi].
type RangeTransition struct {
	Lo, Hi rune
	To     StateIdx
}

type state[A any] struct {
	chars  map[rune]StateIdx
	ranges []RangeTransition
	accept []A
	fail   *StateIdx
}

// DFA is a deterministic automaton over runes, parametric over the
// accepting-value type A. State 0 is the initial state of the root
// ("Init") rule set's DFA. A DFA state is accepting if at least one of
// the NFA states in its subset was accepting; all such values are
// retained in discovery order so a caller can apply its own priority
// policy (spec: first-added rule wins).
type DFA[A any] struct {
	states  []state[A]
	entries map[string]StateIdx
}

// New creates a DFA with its state 0 already allocated, and returns
// that state's index (always 0) for convenience at call sites that
// build the root rule set.
func New[A any]() (*DFA[A], StateIdx) {
	d := &DFA[A]{entries: map[string]StateIdx{}}
	return d, d.NewState()
}

// NewState allocates a fresh, transition-less state and returns its
// index.
func (d *DFA[A]) NewState() StateIdx {
	idx := StateIdx(len(d.states))
	d.states = append(d.states, state[A]{chars: map[rune]StateIdx{}})
	return idx
}

// NumStates returns the number of allocated states.
func (d *DFA[A]) NumStates() int { return len(d.states) }

// AddCharTransition records that state transitions to target on
// exactly the scalar c.
func (d *DFA[A]) AddCharTransition(state StateIdx, c rune, target StateIdx) {
	d.states[state].chars[c] = target
}

// AddRangeTransition records that state transitions to target on any
// scalar in [lo, hi].
func (d *DFA[A]) AddRangeTransition(state StateIdx, lo, hi rune, target StateIdx) {
	d.states[state].ranges = append(d.states[state].ranges, RangeTransition{Lo: lo, Hi: hi, To: target})
}

// AddAcceptingValue appends value to state's accepting-value list.
func (d *DFA[A]) AddAcceptingValue(state StateIdx, value A) {
	d.states[state].accept = append(d.states[state].accept, value)
}

// AddFailTransition records state's fail transition, taken when no
// scalar or range transition matches.
func (d *DFA[A]) AddFailTransition(state, target StateIdx) {
	t := target
	d.states[state].fail = &t
}

// CharTransition returns the target of state's scalar transition on
// c, if any.
func (d *DFA[A]) CharTransition(state StateIdx, c rune) (StateIdx, bool) {
	t, ok := d.states[state].chars[c]
	return t, ok
}

// RangeTransitions returns state's range transitions, in insertion
// order (the tie-break when ranges overlap, per spec Open Question
// iii).
func (d *DFA[A]) RangeTransitions(state StateIdx) []RangeTransition {
	return d.states[state].ranges
}

// FailTransition returns state's fail transition, if any.
func (d *DFA[A]) FailTransition(state StateIdx) (StateIdx, bool) {
	if f := d.states[state].fail; f != nil {
		return *f, true
	}
	return 0, false
}

// AcceptingValues returns state's accepting-value list, in the order
// they were discovered during construction (first-added rule first).
func (d *DFA[A]) AcceptingValues(state StateIdx) []A {
	return d.states[state].accept
}

// IsAccepting reports whether state has at least one accepting value.
func (d *DFA[A]) IsAccepting(state StateIdx) bool {
	return len(d.states[state].accept) > 0
}

// SetEntry records that name's sub-DFA begins at state. It is an
// error (spec: DuplicateRuleSet) for the caller to define the same
// name twice; DFA itself does not enforce that — package lexgen's
// driver does, since only it knows about prior declarations.
func (d *DFA[A]) SetEntry(name string, state StateIdx) {
	d.entries[name] = state
}

// Entry returns the entry state recorded under name.
func (d *DFA[A]) Entry(name string) (StateIdx, bool) {
	s, ok := d.entries[name]
	return s, ok
}

// EntryNames returns the names of all recorded rule-set entries.
func (d *DFA[A]) EntryNames() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	return names
}

// AddDFA appends sub's states to d, retargeting every transition,
// fail link, and entry by a fixed index offset, and returns sub's
// (now shifted) initial state. This is the splicing operation the
// rule-set driver uses to fold a secondary rule set's sub-DFA into
// the composite automaton.
func (d *DFA[A]) AddDFA(sub *DFA[A]) StateIdx {
	offset := StateIdx(len(d.states))

	shift := func(s StateIdx) StateIdx { return s + offset }

	for _, s := range sub.states {
		ns := state[A]{
			chars:  make(map[rune]StateIdx, len(s.chars)),
			ranges: make([]RangeTransition, len(s.ranges)),
			accept: append([]A(nil), s.accept...),
		}
		for c, t := range s.chars {
			ns.chars[c] = shift(t)
		}
		for i, r := range s.ranges {
			ns.ranges[i] = RangeTransition{Lo: r.Lo, Hi: r.Hi, To: shift(r.To)}
		}
		if s.fail != nil {
			t := shift(*s.fail)
			ns.fail = &t
		}
		d.states = append(d.states, ns)
	}

	for name, s := range sub.entries {
		d.entries[name] = shift(s)
	}

	return shift(sub.InitialState())
}

// InitialState returns the DFA's own initial state, always 0. For a
// sub-DFA about to be spliced via AddDFA this is the state AddDFA
// will shift and return.
func (d *DFA[A]) InitialState() StateIdx { return 0 }

// Simulate consumes the whole input and reports the first (highest-
// priority, per spec: first rule added wins) accepting value reached,
// dispatching per scalar with the priority order: exact scalar
// transition, then the first covering range transition, then the fail
// transition. It exists for testing NFA/DFA equivalence and does not
// implement longest-prefix matching (that policy belongs to the
// external reifier).
func (d *DFA[A]) Simulate(input []rune) (A, bool) {
	state := d.InitialState()
	for _, c := range input {
		next, ok := d.next(state, c)
		if !ok {
			var zero A
			return zero, false
		}
		state = next
	}
	if vs := d.states[state].accept; len(vs) > 0 {
		return vs[0], true
	}
	var zero A
	return zero, false
}

func (d *DFA[A]) next(state StateIdx, c rune) (StateIdx, bool) {
	if t, ok := d.states[state].chars[c]; ok {
		return t, true
	}
	for _, r := range d.states[state].ranges {
		if c >= r.Lo && c <= r.Hi {
			return r.To, true
		}
	}
	if f := d.states[state].fail; f != nil {
		return *f, true
	}
	return 0, false
}

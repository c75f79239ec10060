package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/liran-funaro/lexgen/nfa"
)

// subsetKey canonicalizes an already-sorted, deduplicated slice of NFA
// state indices into a map key, so that the same subset of NFA states
// always maps to the same DFA state regardless of which order its
// members were discovered in (spec: "Subset canonicalization" — use
// an ordered set, not a hash set, as the subset identity).
func subsetKey(states []nfa.StateIdx) string {
	var b strings.Builder
	for i, s := range states {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}

// Convert runs subset construction over n and returns the equivalent
// DFA. Two NFA transition shapes — scalar and range — are preserved
// through to the DFA instead of being flattened to one shape, and a
// scalar's successor set is always augmented with the successors of
// any range covering it, so a DFA scalar transition never silently
// loses a transition that only a covering range carried (spec §4.3c,
// the central correctness invariant of the converter).
func Convert[A any](n *nfa.NFA[A]) *DFA[A] {
	d, dfaInitial := New[A]()

	initialStates := n.ComputeClosure([]nfa.StateIdx{n.InitialState()})
	stateMap := map[string]StateIdx{subsetKey(initialStates): dfaInitial}

	type work struct {
		nfaStates []nfa.StateIdx
		dfaState  StateIdx
	}
	workList := []work{{nfaStates: initialStates, dfaState: dfaInitial}}
	finished := map[StateIdx]bool{}

	var failState *StateIdx
	if failAction, ok := n.FailAction(); ok {
		s := d.NewState()
		d.AddAcceptingValue(s, failAction)
		failState = &s
	}

	dfaStateOf := func(states []nfa.StateIdx) StateIdx {
		key := subsetKey(states)
		if s, ok := stateMap[key]; ok {
			return s
		}
		s := d.NewState()
		stateMap[key] = s
		workList = append(workList, work{nfaStates: states, dfaState: s})
		return s
	}

	for len(workList) > 0 {
		cur := workList[len(workList)-1]
		workList = workList[:len(workList)-1]

		if finished[cur.dfaState] {
			continue
		}
		finished[cur.dfaState] = true

		charTransitions := map[rune]map[nfa.StateIdx]bool{}
		type rangeKey struct{ lo, hi rune }
		rangeTransitions := map[rangeKey]map[nfa.StateIdx]bool{}
		var rangeOrder []rangeKey

		for _, s := range cur.nfaStates {
			if value, ok := n.Accept(s); ok {
				d.AddAcceptingValue(cur.dfaState, value)
			}
			for c, targets := range n.CharTransitions(s) {
				set, ok := charTransitions[c]
				if !ok {
					set = map[nfa.StateIdx]bool{}
					charTransitions[c] = set
				}
				for _, t := range targets {
					set[t] = true
				}
			}
			for _, rt := range n.RangeTransitions(s) {
				k := rangeKey{rt.Lo, rt.Hi}
				set, ok := rangeTransitions[k]
				if !ok {
					set = map[nfa.StateIdx]bool{}
					rangeTransitions[k] = set
					rangeOrder = append(rangeOrder, k)
				}
				for _, t := range rt.To {
					set[t] = true
				}
			}
		}

		// Deterministic iteration order for reproducible numbering.
		var charOrder []rune
		for c := range charTransitions {
			charOrder = append(charOrder, c)
		}
		sort.Slice(charOrder, func(i, j int) bool { return charOrder[i] < charOrder[j] })

		for _, c := range charOrder {
			targets := charTransitions[c]
			// A scalar transition must also fire wherever a range
			// transition covers the same scalar, so augment the char's
			// successor set with every covering range's successors.
			for _, k := range rangeOrder {
				if c >= k.lo && c <= k.hi {
					for t := range rangeTransitions[k] {
						targets[t] = true
					}
				}
			}
			closure := n.ComputeClosure(setToSlice(targets))
			target := dfaStateOf(closure)
			d.AddCharTransition(cur.dfaState, c, target)
		}

		for _, k := range rangeOrder {
			closure := n.ComputeClosure(setToSlice(rangeTransitions[k]))
			target := dfaStateOf(closure)
			d.AddRangeTransition(cur.dfaState, k.lo, k.hi, target)
		}

		if failState != nil {
			d.AddFailTransition(cur.dfaState, *failState)
		}
	}

	return d
}

func setToSlice(set map[nfa.StateIdx]bool) []nfa.StateIdx {
	out := make([]nfa.StateIdx, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

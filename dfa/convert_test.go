package dfa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liran-funaro/lexgen/dfa"
	"github.com/liran-funaro/lexgen/nfa"
	"github.com/liran-funaro/lexgen/regex"
)

type simCase struct {
	input    string
	expected *int
}

func accept(v int) *int { return &v }

// testEquivalence checks property P3: NFA simulation and DFA
// simulation agree on every input, for every case given.
func testEquivalence(t *testing.T, n *nfa.NFA[int], cases []simCase) {
	t.Helper()
	d := dfa.Convert(n)
	for _, c := range cases {
		nfaGot, nfaOk := n.Simulate([]rune(c.input))
		dfaGot, dfaOk := d.Simulate([]rune(c.input))
		require.Equal(t, nfaOk, dfaOk, "nfa/dfa ok mismatch on input %q", c.input)
		if nfaOk {
			require.Equal(t, nfaGot, dfaGot, "nfa/dfa value mismatch on input %q", c.input)
		}
		if c.expected == nil {
			require.False(t, dfaOk, "input %q", c.input)
		} else {
			require.True(t, dfaOk, "input %q", c.input)
			require.Equal(t, *c.expected, dfaGot, "input %q", c.input)
		}
	}
}

func build(t *testing.T, bindings regex.Bindings, re regex.Regex, value int) *nfa.NFA[int] {
	t.Helper()
	n := nfa.New[int]()
	require.NoError(t, nfa.NewBuilder(n).AddRegex(bindings, re, value))
	return n
}

func TestZeroOrMoreEquivalence(t *testing.T) {
	n := build(t, regex.Bindings{}, regex.ZeroOrMore{Re: regex.Char{Value: 'a'}}, 0)
	testEquivalence(t, n, []simCase{
		{"", accept(0)},
		{"a", accept(0)},
		{"aa", accept(0)},
		{"aab", nil},
	})
}

func TestOneOrMoreOrCharEquivalence(t *testing.T) {
	re := regex.Or{Left: regex.OneOrMore{Re: regex.Char{Value: 'a'}}, Right: regex.Char{Value: 'b'}}
	n := build(t, regex.Bindings{}, re, 0)
	testEquivalence(t, n, []simCase{
		{"", nil},
		{"a", accept(0)},
		{"aa", accept(0)},
		{"b", accept(0)},
	})
}

func TestPriorityEquivalence(t *testing.T) {
	n := nfa.New[int]()
	b := nfa.NewBuilder(n)
	require.NoError(t, b.AddRegex(regex.Bindings{}, regex.String{Value: "aaaa"}, 1))
	require.NoError(t, b.AddRegex(regex.Bindings{}, regex.String{Value: "aaab"}, 2))

	testEquivalence(t, n, []simCase{
		{"aaaa", accept(1)},
		{"aaab", accept(2)},
		{"aaaba", nil},
	})

	d := dfa.Convert(n)
	state := d.InitialState()
	for _, c := range "aaaa" {
		next, ok := d.CharTransition(state, c)
		require.True(t, ok)
		state = next
	}
	values := d.AcceptingValues(state)
	require.NotEmpty(t, values)
	require.Equal(t, 1, values[0], "priority goes to the first-added rule")
}

func TestVariablesEquivalence(t *testing.T) {
	bindings := regex.Bindings{}
	require.NoError(t, bindings.Define("initial", regex.CharSet{Elems: []regex.CharSetElem{{Lo: 'a', Hi: 'z'}}}))
	require.NoError(t, bindings.Define("subsequent", regex.CharSet{Elems: []regex.CharSetElem{
		{Lo: 'a', Hi: 'z'},
		{Lo: 'A', Hi: 'Z'},
		{Lo: '0', Hi: '9'},
		{Lo: '-', Hi: '-'},
		{Lo: '_', Hi: '_'},
	}}))
	re := regex.Concat{
		Left:  regex.Var{Name: "initial"},
		Right: regex.ZeroOrMore{Re: regex.Var{Name: "subsequent"}},
	}
	n := build(t, bindings, re, 0)
	testEquivalence(t, n, []simCase{
		{"a", accept(0)},
		{"aA", accept(0)},
		{"aA123-a", accept(0)},
	})
}

// TestOverlappingRangeAndCharAugmentation exercises the §4.3c
// invariant directly: a scalar transition inside a range must not
// lose the range's successor.
func TestOverlappingRangeAndCharAugmentation(t *testing.T) {
	// [0-9] | '5' -> 0, so both the range path and the exact-char path
	// lead to the same accepting state; the DFA must treat '5' as
	// accepting via the augmented scalar transition.
	re := regex.Or{
		Left:  regex.CharSet{Elems: []regex.CharSetElem{{Lo: '0', Hi: '9'}}},
		Right: regex.Char{Value: '5'},
	}
	n := build(t, regex.Bindings{}, re, 0)
	testEquivalence(t, n, []simCase{
		{"5", accept(0)},
		{"3", accept(0)},
		{"a", nil},
	})
}

func TestFailTransition(t *testing.T) {
	n := nfa.New[int]()
	require.NoError(t, nfa.NewBuilder(n).AddRegex(regex.Bindings{}, regex.Char{Value: 'a'}, 1))
	n.SetFailAction(-1)

	d := dfa.Convert(n)
	fail, ok := d.FailTransition(d.InitialState())
	require.True(t, ok)
	require.Equal(t, []int{-1}, d.AcceptingValues(fail))
}

package lexgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liran-funaro/lexgen/regex"
)

func TestCompileInitOnly(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{
				{LHS: regex.String{Value: "aaaa"}, RHS: 1},
				{LHS: regex.String{Value: "aaab"}, RHS: 2},
			}},
		},
	}

	d, err := Compile(l)
	require.NoError(t, err)

	state, ok := d.Entry("Init")
	require.True(t, ok)
	require.Equal(t, d.InitialState(), state)

	got, ok := d.Simulate([]rune("aaaa"))
	require.True(t, ok)
	require.Equal(t, 1, got)

	got, ok = d.Simulate([]rune("aaab"))
	require.True(t, ok)
	require.Equal(t, 2, got)

	_, ok = d.Simulate([]rune("aaaba"))
	require.False(t, ok)
}

func TestCompileSecondaryRuleSetEntry(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{
				{LHS: regex.Char{Value: 'a'}, RHS: 1},
			}},
			RuleSet[int]{Name: "String", Rules: []Rule[int]{
				{LHS: regex.Char{Value: '"'}, RHS: 2},
			}},
		},
	}

	d, err := Compile(l)
	require.NoError(t, err)

	require.Contains(t, d.EntryNames(), "Init")
	require.Contains(t, d.EntryNames(), "String")

	entry, ok := d.Entry("String")
	require.True(t, ok)
	require.NotEqual(t, d.InitialState(), entry)

	got, ok := d.Simulate([]rune("a"))
	require.True(t, ok)
	require.Equal(t, 1, got)
}

func TestCompileVariables(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			Binding{Var: "digit", Re: regex.CharSet{Elems: []regex.CharSetElem{{Lo: '0', Hi: '9'}}}},
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{
				{LHS: regex.OneOrMore{Re: regex.Var{Name: "digit"}}, RHS: 1},
			}},
		},
	}

	d, err := Compile(l)
	require.NoError(t, err)

	got, ok := d.Simulate([]rune("123"))
	require.True(t, ok)
	require.Equal(t, 1, got)

	_, ok = d.Simulate([]rune(""))
	require.False(t, ok)
}

func TestCompileDuplicateBinding(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			Binding{Var: "digit", Re: regex.Char{Value: '0'}},
			Binding{Var: "digit", Re: regex.Char{Value: '1'}},
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{
				{LHS: regex.Var{Name: "digit"}, RHS: 1},
			}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrDuplicateBinding)
}

func TestCompileDuplicateRuleSetSameName(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{{LHS: regex.Char{Value: 'a'}, RHS: 1}}},
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{{LHS: regex.Char{Value: 'b'}, RHS: 2}}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrDuplicateRuleSet)
}

func TestCompileDuplicateRuleSetOtherName(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{{LHS: regex.Char{Value: 'a'}, RHS: 1}}},
			RuleSet[int]{Name: "String", Rules: []Rule[int]{{LHS: regex.Char{Value: 'b'}, RHS: 2}}},
			RuleSet[int]{Name: "String", Rules: []Rule[int]{{LHS: regex.Char{Value: 'c'}, RHS: 3}}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrDuplicateRuleSet)
}

func TestCompileInitMissingEntirely(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "String", Rules: []Rule[int]{{LHS: regex.Char{Value: 'a'}, RHS: 1}}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrInitRuleSetMissing)
}

func TestCompileNonInitBeforeInit(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "String", Rules: []Rule[int]{{LHS: regex.Char{Value: 'a'}, RHS: 1}}},
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{{LHS: regex.Char{Value: 'b'}, RHS: 2}}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrInitRuleSetMissing)
}

func TestCompileUndefinedBinding(t *testing.T) {
	l := Lexer[int]{
		Rules: []Item[int]{
			RuleSet[int]{Name: "Init", Rules: []Rule[int]{
				{LHS: regex.Var{Name: "nope"}, RHS: 1},
			}},
		},
	}

	_, err := Compile(l)
	require.ErrorIs(t, err, ErrUndefinedBinding)
}

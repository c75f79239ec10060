package dfa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liran-funaro/lexgen/dfa"
	"github.com/liran-funaro/lexgen/nfa"
	"github.com/liran-funaro/lexgen/regex"
)

func TestWriteDot(t *testing.T) {
	n := build(t, regex.Bindings{}, regex.OneOrMore{Re: regex.Char{Value: 'a'}}, 0)
	d := dfa.Convert(n)

	var buf strings.Builder
	d.WriteDot(&buf, "g")
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "digraph g {\n"))
	require.True(t, strings.HasSuffix(out, "}\n"))
	require.Contains(t, out, `label="a"`)
	require.Contains(t, out, "color=green")
}

func TestWriteDotNamedEntries(t *testing.T) {
	n := nfa.New[int]()
	require.NoError(t, nfa.NewBuilder(n).AddRegex(regex.Bindings{}, regex.Char{Value: 'a'}, 0))
	d := dfa.Convert(n)
	d.SetEntry("Init", d.InitialState())

	var buf strings.Builder
	d.WriteDot(&buf, "g")
	require.Contains(t, buf.String(), `"Init" -> 0;`)
}

package dfa

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// WriteDot renders d in Graphviz DOT format, the flat-state-vector
// counterpart of the teacher's pointer-graph writeDotGraph: instead of
// following *node edges it walks StateIdx successors, reachable from
// state 0 and every named entry. Accepting states are filled green and
// labeled with their accepting values; fail transitions are drawn in
// red so a rendered graph still shows where unmatched input lands.
//
//	$ dot -Tps input.dot -o output.ps
func (d *DFA[A]) WriteDot(out io.Writer, id string) {
	_, _ = fmt.Fprintf(out, "digraph %v {\n  0[shape=box];\n", id)

	visited := make(map[StateIdx]bool)
	var worklist []StateIdx
	enqueue := func(s StateIdx) {
		if !visited[s] {
			visited[s] = true
			worklist = append(worklist, s)
		}
	}
	enqueue(d.InitialState())
	for _, name := range sortedNames(d.entries) {
		_, _ = fmt.Fprintf(out, "  %q -> %v;\n", name, d.entries[name])
		enqueue(d.entries[name])
	}

	for i := 0; i < len(worklist); i++ {
		u := worklist[i]
		s := d.states[u]

		if len(s.accept) > 0 {
			_, _ = fmt.Fprintf(out, "  %v[style=filled,color=green,label=%q];\n", u, fmt.Sprintf("%v: %v", u, s.accept))
		}

		for _, c := range sortedRunes(s.chars) {
			target := s.chars[c]
			_, _ = fmt.Fprintf(out, "  %v -> %v[label=%q];\n", u, target, runeToDot(c))
			enqueue(target)
		}
		for _, r := range s.ranges {
			label := runeToDot(r.Lo)
			if r.Lo != r.Hi {
				label += "-" + runeToDot(r.Hi)
			}
			_, _ = fmt.Fprintf(out, "  %v -> %v[label=%q];\n", u, r.To, label)
			enqueue(r.To)
		}
		if s.fail != nil {
			_, _ = fmt.Fprintf(out, "  %v -> %v[color=red];\n", u, *s.fail)
			enqueue(*s.fail)
		}
	}

	_, _ = fmt.Fprintln(out, "}")
}

func runeToDot(r rune) string {
	if strconv.IsPrint(r) {
		return string(r)
	}
	return fmt.Sprintf("U+%X", int(r))
}

func sortedRunes[V any](m map[rune]V) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedNames(m map[string]StateIdx) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

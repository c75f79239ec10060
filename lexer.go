// Package lexgen compiles a declarative description of tagged token
// classes — regex rule sets plus a shared binding environment — into a
// single composite DFA, via Thompson NFA construction and subset
// construction. It is the compilation core of a lexer generator; it
// does not parse a textual grammar (that is an external front end's
// job) and does not emit a runnable matcher (that is an external
// reifier's job) — see the package-level Compile for the boundary.
package lexgen

import "github.com/liran-funaro/lexgen/regex"

// Binding defines a named regex for later reference via regex.Var.
type Binding struct {
	Var string
	Re  regex.Regex
}

// Rule pairs a regex with the opaque value to report when it matches.
// A is not interpreted by this package; it only needs to be copyable
// by assignment, which every Go value is.
type Rule[A any] struct {
	LHS regex.Regex
	RHS A
}

// RuleSet is a named, ordered list of rules. Exactly one RuleSet among
// a Lexer's Rules must be named "Init"; it becomes the composite DFA's
// root. Every other RuleSet is compiled independently and exposed as a
// named entry state reachable from the composite DFA.
type RuleSet[A any] struct {
	Name  string
	Rules []Rule[A]
}

// Item is one entry in a Lexer's rule list: either a Binding or a
// RuleSet, processed in declared order.
type Item[A any] interface {
	isItem()
}

func (Binding) isItem()    {}
func (RuleSet[A]) isItem() {}

// Lexer is the input accepted from an external front end: the
// identifiers it wants threaded through unchanged (TypeName,
// UserStateType, TokenType) plus the rule list to compile.
type Lexer[A any] struct {
	TypeName      string
	UserStateType string
	TokenType     string
	Rules         []Item[A]
}

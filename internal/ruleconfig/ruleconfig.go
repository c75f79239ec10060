// Package ruleconfig decodes a declarative YAML rule-set document into
// the regex.Regex trees and lexgen.Lexer the compiler core expects.
// The document is a direct, structural encoding of those types (the
// kind of input a macro front end would already have produced), not a
// textual regex grammar — so loading it here does not reach into the
// excluded DSL front end.
package ruleconfig

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/liran-funaro/lexgen"
	"github.com/liran-funaro/lexgen/regex"
)

// Document is the top-level shape of a rule-set YAML file.
type Document struct {
	TypeName      string       `yaml:"type_name"`
	UserStateType string       `yaml:"user_state_type"`
	TokenType     string       `yaml:"token_type"`
	Bindings      []BindingDoc `yaml:"bindings"`
	RuleSets      []RuleSetDoc `yaml:"rule_sets"`
}

// BindingDoc names a regex.Var binding.
type BindingDoc struct {
	Var string `yaml:"var"`
	Re  Node   `yaml:"re"`
}

// RuleSetDoc is one named, ordered rule list. A document must contain
// exactly one RuleSetDoc named "Init"; lexgen.Compile enforces that.
type RuleSetDoc struct {
	Name  string    `yaml:"name"`
	Rules []RuleDoc `yaml:"rules"`
}

// RuleDoc pairs a regex with the string token name reported on match.
type RuleDoc struct {
	LHS Node   `yaml:"lhs"`
	RHS string `yaml:"rhs"`
}

// CharSetRange is one inclusive [Lo, Hi] element of a char_set node,
// each bound written as a single-rune YAML string.
type CharSetRange struct {
	Lo string `yaml:"lo"`
	Hi string `yaml:"hi"`
}

// Node is the YAML encoding of a regex.Regex: exactly one field must
// be set, naming which regex.Regex variant this node decodes to.
type Node struct {
	Char       string         `yaml:"char,omitempty"`
	String     string         `yaml:"string,omitempty"`
	CharSet    []CharSetRange `yaml:"char_set,omitempty"`
	ZeroOrMore *Node          `yaml:"zero_or_more,omitempty"`
	OneOrMore  *Node          `yaml:"one_or_more,omitempty"`
	ZeroOrOne  *Node          `yaml:"zero_or_one,omitempty"`
	Concat     []Node         `yaml:"concat,omitempty"`
	Or         []Node         `yaml:"or,omitempty"`
	Var        string         `yaml:"var,omitempty"`
}

// Load reads and decodes the rule-set document at path into a
// lexgen.Lexer[string] ready for lexgen.Compile.
func Load(path string) (lexgen.Lexer[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lexgen.Lexer[string]{}, errors.Wrapf(err, "reading %s", path)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return lexgen.Lexer[string]{}, errors.Wrapf(err, "parsing %s", path)
	}

	return doc.toLexer()
}

func (doc Document) toLexer() (lexgen.Lexer[string], error) {
	l := lexgen.Lexer[string]{
		TypeName:      doc.TypeName,
		UserStateType: doc.UserStateType,
		TokenType:     doc.TokenType,
	}

	for _, b := range doc.Bindings {
		re, err := b.Re.toRegex()
		if err != nil {
			return lexgen.Lexer[string]{}, errors.Wrapf(err, "binding %q", b.Var)
		}
		l.Rules = append(l.Rules, lexgen.Binding{Var: b.Var, Re: re})
	}

	for _, rs := range doc.RuleSets {
		rules := make([]lexgen.Rule[string], 0, len(rs.Rules))
		for i, r := range rs.Rules {
			re, err := r.LHS.toRegex()
			if err != nil {
				return lexgen.Lexer[string]{}, errors.Wrapf(err, "rule set %q, rule %d", rs.Name, i)
			}
			rules = append(rules, lexgen.Rule[string]{LHS: re, RHS: r.RHS})
		}
		l.Rules = append(l.Rules, lexgen.RuleSet[string]{Name: rs.Name, Rules: rules})
	}

	return l, nil
}

// toRegex converts one decoded Node into the regex.Regex it names. It
// is an error for a node to set zero or more than one of its fields.
func (n Node) toRegex() (regex.Regex, error) {
	var (
		re  regex.Regex
		set int
	)

	if n.Char != "" {
		r, err := singleRune(n.Char)
		if err != nil {
			return nil, errors.WithMessage(err, "char")
		}
		re, set = regex.Char{Value: r}, set+1
	}
	if n.String != "" {
		re, set = regex.String{Value: n.String}, set+1
	}
	if n.CharSet != nil {
		elems := make([]regex.CharSetElem, 0, len(n.CharSet))
		for i, c := range n.CharSet {
			lo, err := singleRune(c.Lo)
			if err != nil {
				return nil, errors.Wrapf(err, "char_set[%d].lo", i)
			}
			hi, err := singleRune(c.Hi)
			if err != nil {
				return nil, errors.Wrapf(err, "char_set[%d].hi", i)
			}
			elems = append(elems, regex.CharSetElem{Lo: lo, Hi: hi})
		}
		re, set = regex.CharSet{Elems: elems}, set+1
	}
	if n.ZeroOrMore != nil {
		sub, err := n.ZeroOrMore.toRegex()
		if err != nil {
			return nil, errors.WithMessage(err, "zero_or_more")
		}
		re, set = regex.ZeroOrMore{Re: sub}, set+1
	}
	if n.OneOrMore != nil {
		sub, err := n.OneOrMore.toRegex()
		if err != nil {
			return nil, errors.WithMessage(err, "one_or_more")
		}
		re, set = regex.OneOrMore{Re: sub}, set+1
	}
	if n.ZeroOrOne != nil {
		sub, err := n.ZeroOrOne.toRegex()
		if err != nil {
			return nil, errors.WithMessage(err, "zero_or_one")
		}
		re, set = regex.ZeroOrOne{Re: sub}, set+1
	}
	if n.Concat != nil {
		if len(n.Concat) == 0 {
			return nil, errors.New("ruleconfig: concat requires at least one operand")
		}
		subs, err := toRegexSlice(n.Concat)
		if err != nil {
			return nil, errors.WithMessage(err, "concat")
		}
		re, set = regex.Concat2(subs...), set+1
	}
	if n.Or != nil {
		if len(n.Or) == 0 {
			return nil, errors.New("ruleconfig: or requires at least one operand")
		}
		subs, err := toRegexSlice(n.Or)
		if err != nil {
			return nil, errors.WithMessage(err, "or")
		}
		re, set = regex.Or2(subs...), set+1
	}
	if n.Var != "" {
		re, set = regex.Var{Name: n.Var}, set+1
	}

	switch set {
	case 0:
		return nil, errors.New("ruleconfig: node sets no regex variant")
	case 1:
		return re, nil
	default:
		return nil, errors.New("ruleconfig: node sets more than one regex variant")
	}
}

func toRegexSlice(nodes []Node) ([]regex.Regex, error) {
	out := make([]regex.Regex, 0, len(nodes))
	for i, n := range nodes {
		re, err := n.toRegex()
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", i)
		}
		out = append(out, re)
	}
	return out, nil
}

func singleRune(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, errors.Errorf("ruleconfig: %q is not a single character", s)
	}
	return r[0], nil
}

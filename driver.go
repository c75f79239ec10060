package lexgen

import (
	"github.com/pkg/errors"

	"github.com/liran-funaro/lexgen/dfa"
	"github.com/liran-funaro/lexgen/nfa"
	"github.com/liran-funaro/lexgen/regex"
)

// initRuleSetName is the distinguished, mandatory root rule set.
const initRuleSetName = "Init"

// ErrDuplicateRuleSet is wrapped when the same rule-set name is
// declared twice.
var ErrDuplicateRuleSet = errors.New("rule set already defined")

// ErrInitRuleSetMissing is wrapped when no rule set named "Init" is
// declared, or a non-Init rule set is declared before it.
var ErrInitRuleSetMissing = errors.New(`no rule set named "Init"`)

// ErrDuplicateBinding re-exports regex.ErrDuplicateBinding so callers
// can errors.Is against either package.
var ErrDuplicateBinding = regex.ErrDuplicateBinding

// ErrUndefinedBinding re-exports regex.ErrUndefinedBinding so callers
// can errors.Is against either package.
var ErrUndefinedBinding = regex.ErrUndefinedBinding

// Compile builds l's rule list, in declared order, into a single
// composite DFA: the "Init" rule set becomes the DFA's root (state 0),
// and every other rule set is compiled independently and spliced in as
// a named, reachable entry state. All failures are construction-time
// and fatal to the whole compile; there is nothing to retry.
func Compile[A any](l Lexer[A]) (*dfa.DFA[A], error) {
	bindings := regex.Bindings{}
	var composite *dfa.DFA[A]
	declared := map[string]bool{}

	for _, item := range l.Rules {
		switch r := item.(type) {
		case Binding:
			if err := bindings.Define(r.Var, r.Re); err != nil {
				return nil, err
			}

		case RuleSet[A]:
			if declared[r.Name] {
				return nil, errors.Wrapf(ErrDuplicateRuleSet, "rule set %q", r.Name)
			}

			if r.Name == initRuleSetName {
				built, err := buildRuleSetDFA(bindings, r.Rules)
				if err != nil {
					return nil, errors.Wrapf(err, "rule set %q", r.Name)
				}
				composite = built
				composite.SetEntry(initRuleSetName, composite.InitialState())
				declared[r.Name] = true
				continue
			}

			if composite == nil {
				return nil, errors.Wrapf(ErrInitRuleSetMissing, "rule set %q declared before %q", r.Name, initRuleSetName)
			}

			sub, err := buildRuleSetDFA(bindings, r.Rules)
			if err != nil {
				return nil, errors.Wrapf(err, "rule set %q", r.Name)
			}
			entry := composite.AddDFA(sub)
			composite.SetEntry(r.Name, entry)
			declared[r.Name] = true

		default:
			return nil, errors.Errorf("lexgen: unhandled rule item %T", item)
		}
	}

	if composite == nil {
		return nil, ErrInitRuleSetMissing
	}

	return composite, nil
}

// buildRuleSetDFA compiles one rule set's regexes into its own NFA and
// converts that to a standalone DFA.
func buildRuleSetDFA[A any](bindings regex.Bindings, rules []Rule[A]) (*dfa.DFA[A], error) {
	n := nfa.New[A]()
	b := nfa.NewBuilder(n)
	for _, rule := range rules {
		if err := b.AddRegex(bindings, rule.LHS, rule.RHS); err != nil {
			return nil, err
		}
	}
	return dfa.Convert(n), nil
}

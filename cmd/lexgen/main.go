/*
Lexgen compiles a declarative YAML rule-set document into a composite
DFA and reports a summary of the result.

Usage:

	lexgen [flags] RULES.yaml

The flags are:

	--dot FILE
	    Write the compiled DFA in Graphviz DOT format to FILE.
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/liran-funaro/lexgen"
	"github.com/liran-funaro/lexgen/internal/ruleconfig"
)

var dotFile string

func main() {
	pflag.StringVar(&dotFile, "dot", "", "write the compiled DFA in Graphviz DOT format to this file")
	pflag.Parse()

	if pflag.NArg() != 1 {
		log.Fatalf("usage: lexgen [flags] RULES.yaml")
	}
	rulesPath := pflag.Arg(0)

	l, err := ruleconfig.Load(rulesPath)
	if err != nil {
		log.Fatalf("lexgen: %v", err)
	}

	d, err := lexgen.Compile(l)
	if err != nil {
		log.Fatalf("lexgen: %v", err)
	}

	fmt.Printf("compiled %d states, entries: %v\n", d.NumStates(), d.EntryNames())

	if dotFile != "" {
		f, err := os.Create(dotFile)
		if err != nil {
			log.Fatalf("lexgen: %v", err)
		}
		defer f.Close()
		d.WriteDot(f, "lexer")
	}
}

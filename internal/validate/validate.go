// Package validate drives the per-declaration check pipeline: kind
// filtering, the missing-docstring gate, docstring parsing, and the ordered
// check run, with noqa and select/ignore suppression applied uniformly.
package validate

import (
	"fmt"
	"strings"

	"numdoc/internal/check"
	"numdoc/internal/decl"
	"numdoc/internal/diag"
	"numdoc/internal/docstring"
)

// Options selects which declarations and codes participate in a run.
type Options struct {
	// Select keeps only codes matching one of these prefixes ("PR" keeps
	// every PR0* code). Empty keeps everything.
	Select []string
	// Ignore drops codes matching one of these prefixes. Ignore wins over
	// Select.
	Ignore []string

	IncludePrivate bool
	ExcludeMagic   bool
}

// enabled reports whether a code survives the select/ignore configuration.
func (o *Options) enabled(id string) bool {
	if len(o.Select) > 0 && !matchesPrefix(id, o.Select) {
		return false
	}
	return !matchesPrefix(id, o.Ignore)
}

func matchesPrefix(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// Validator applies the fixed check order to declarations. It is immutable
// after construction and safe for concurrent use.
type Validator struct {
	checks []check.Check
	opts   Options
}

// New builds a validator from the full registry, pre-filtered by the
// select/ignore configuration.
func New(opts Options) *Validator {
	var checks []check.Check
	for _, c := range check.Registry() {
		if opts.enabled(c.Code.ID()) {
			checks = append(checks, c)
		}
	}
	return &Validator{checks: checks, opts: opts}
}

// Validate runs the pipeline for one declaration. The returned stream
// preserves the fixed check-execution order; a terminating diagnostic ends
// the stream.
func (v *Validator) Validate(d *decl.Declaration) []diag.Diagnostic {
	if d.Private() && !v.opts.IncludePrivate {
		return nil
	}
	if d.Magic() && v.opts.ExcludeMagic {
		return nil
	}

	if !d.HasDocstring() {
		id := diag.GLMissingDocstring.ID()
		if !v.opts.enabled(id) || d.Suppressed(id) {
			return nil
		}
		dg := diag.New(diag.GLMissingDocstring, d.Span,
			fmt.Sprintf("The %s does not have a docstring", d.Kind))
		dg.Terminates = true
		return []diag.Diagnostic{dg}
	}

	doc, parseDiags := docstring.Parse(d.Doc)

	var out []diag.Diagnostic
	out = v.appendAllowed(out, d, parseDiags)
	for _, c := range v.checks {
		out = v.appendAllowed(out, d, v.runSafe(c, d, doc))
		if len(out) > 0 && out[len(out)-1].Terminates {
			break
		}
	}
	return out
}

// appendAllowed filters a batch through the declaration's noqa list and the
// run configuration. Both are pure membership tests; applying them in either
// order yields the same stream.
func (v *Validator) appendAllowed(out []diag.Diagnostic, d *decl.Declaration, batch []diag.Diagnostic) []diag.Diagnostic {
	for _, dg := range batch {
		id := dg.Code.ID()
		if !v.opts.enabled(id) || d.Suppressed(id) {
			continue
		}
		out = append(out, dg)
	}
	return out
}

// runSafe isolates a panicking check: the batch survives and the failure
// surfaces as a single engine diagnostic.
func (v *Validator) runSafe(c check.Check, d *decl.Declaration, doc *docstring.DocString) (out []diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			out = []diag.Diagnostic{diag.New(diag.CheckFailure, doc.Span,
				fmt.Sprintf("Check %s failed: %v", c.Code.ID(), r))}
		}
	}()
	return c.Run(d, doc)
}

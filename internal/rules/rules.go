// Package rules evaluates per-column predicates against a row.
package rules

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"tedit/datatable"
)

var validate = validator.New()

// Rule checks the value of a single column. A failing check returns the
// message to show the user.
type Rule interface {
	Column() string
	Check(v datatable.Value) (bool, string)
}

// Chain combines rules with AND logic. Rules whose column is absent from the
// row are skipped, and the first failure short-circuits.
type Chain []Rule

// Evaluate runs the chain against row.
func (c Chain) Evaluate(row *datatable.Row) (bool, string) {
	for _, rule := range c {
		v, ok := row.Get(rule.Column())
		if !ok {
			continue
		}
		if passes, msg := rule.Check(v); !passes {
			return false, msg // Short-circuit on first failure
		}
	}
	return true, ""
}

// OneOfRule accepts a value whose string form, after Normalize, is one of
// Allowed.
type OneOfRule struct {
	Name      string
	Allowed   []string
	Normalize func(string) string
	Message   string
}

// OneOf returns a rule matching the exact string form of the value.
func OneOf(column, message string, allowed ...string) *OneOfRule {
	return &OneOfRule{Name: column, Allowed: allowed, Message: message}
}

// OneOfFold returns a rule matching the trimmed, lower-cased string form.
func OneOfFold(column, message string, allowed ...string) *OneOfRule {
	r := OneOf(column, message, allowed...)
	r.Normalize = func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return r
}

// Column implements Rule.
func (r *OneOfRule) Column() string {
	return r.Name
}

// Check implements Rule.
func (r *OneOfRule) Check(v datatable.Value) (bool, string) {
	s := v.String()
	if r.Normalize != nil {
		s = r.Normalize(s)
	}
	if err := validate.Var(s, "oneof="+strings.Join(r.Allowed, " ")); err != nil {
		return false, r.Message
	}
	return true, ""
}

// NumberRule requires a numeric value satisfying a validator tag such as
// "gte=0" or "gt=0,lte=146".
type NumberRule struct {
	Name        string
	Tag         string
	NotNumeric  string
	OutOfBounds string
}

// Number returns a NumberRule.
func Number(column, tag, notNumeric, outOfBounds string) *NumberRule {
	return &NumberRule{
		Name:        column,
		Tag:         tag,
		NotNumeric:  notNumeric,
		OutOfBounds: outOfBounds,
	}
}

// Column implements Rule.
func (r *NumberRule) Column() string {
	return r.Name
}

// Check implements Rule.
func (r *NumberRule) Check(v datatable.Value) (bool, string) {
	f, ok := v.Number()
	if !ok {
		return false, r.NotNumeric
	}
	if err := validate.Var(f, r.Tag); err != nil {
		return false, r.OutOfBounds
	}
	return true, ""
}

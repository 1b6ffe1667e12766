// Package validation runs ordered per-field rule lists and collects the first
// failure of every field.
package validation

import (
	"sort"
	"strings"
)

// Errors maps a field name to its first failing rule message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Rule is a single check with the message reported when it fails.
type Rule struct {
	Check   func(value string) bool
	Message string
}

type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Pipeline is an ordered set of fields.
type Pipeline []Field

// Validate returns nil when every rule of every field passes.
// Rules of a field stop at the first failure.
func (p Pipeline) Validate() error {
	errs := Errors{}
	for _, f := range p {
		for _, r := range f.Rules {
			if !r.Check(f.Value) {
				errs[f.Name] = r.Message
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

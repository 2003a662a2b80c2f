package rules

import (
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

// OptionKey returns the persisted option key for a question slug of a
// rule. Regular answers are namespaced with the rule slug; keys that
// already carry the global prefix address all rules and stay as they are.
func OptionKey(ruleSlug, questionSlug string) string {
	if strings.HasPrefix(questionSlug, model.GlobalOptionPrefix) {
		return questionSlug
	}
	return ruleSlug + "_" + questionSlug
}

// Options is the read view a rule gets of the option store, namespaced to
// the rule's slug.
type Options struct {
	slug   string
	values map[string]string
}

// NewOptions creates the option view for a rule.
func NewOptions(ruleSlug string, values map[string]string) Options {
	return Options{slug: ruleSlug, values: values}
}

// Value returns the stored answer for one of the rule's own questions.
// An empty stored answer counts as unanswered, so the rule asks the
// question again instead of acting on a blank value.
func (o Options) Value(questionSlug string) (string, bool) {
	v := o.values[OptionKey(o.slug, questionSlug)]
	return v, v != ""
}

// Global returns a global option shared by all rules.
func (o Options) Global(name string) (string, bool) {
	v, ok := o.values[model.GlobalOptionPrefix+name]
	return v, ok
}

// GlobalFields returns a whitespace-separated global option as a slice,
// or nil when the option is unset or blank.
func (o Options) GlobalFields(name string) []string {
	v, ok := o.Global(name)
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

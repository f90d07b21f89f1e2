// Package validation runs local pre-submit checks over a FormState.
//
// A screen describes its rules as a list of Rule values; Validate applies
// them in order and keeps the first failing message per field. Nothing in
// this package touches the network.
package validation

import (
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

// Issue is a single field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of Validate. The zero value is a passing result.
type Result struct {
	Issues []Issue `json:"issues,omitempty"`
}

// OK reports whether no rule failed.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// FieldErrors returns the issues keyed by field name.
func (r Result) FieldErrors() map[string]string {
	if r.OK() {
		return nil
	}
	out := make(map[string]string, len(r.Issues))
	for _, is := range r.Issues {
		out[is.Field] = is.Message
	}
	return out
}

// First returns the message of the first issue, or "".
func (r Result) First() string {
	if r.OK() {
		return ""
	}
	return r.Issues[0].Message
}

// Err returns nil for a passing result, otherwise an error matching
// common.ErrValidation whose text is the first issue's message.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, r.First())
}

// Rule inspects form and returns an Issue when the check fails.
type Rule func(form models.FormState) *Issue

// Validate applies rules in order. Once a field has failed, later rules for
// the same field are skipped so each field reports one message.
func Validate(form models.FormState, rules ...Rule) Result {
	var res Result
	failed := make(map[string]struct{})

	for _, rule := range rules {
		is := rule(form)
		if is == nil {
			continue
		}
		if _, ok := failed[is.Field]; ok {
			continue
		}
		failed[is.Field] = struct{}{}
		res.Issues = append(res.Issues, *is)
	}
	return res
}

func issue(field, msg string) *Issue {
	return &Issue{Field: field, Message: msg}
}

// Required fails when the trimmed value of field is empty.
func Required(field, msg string) Rule {
	return func(form models.FormState) *Issue {
		if form.Trimmed(field) == "" {
			return issue(field, msg)
		}
		return nil
	}
}

// Digits fails unless field holds exactly n ASCII digits.
func Digits(field string, n int, msg string) Rule {
	return func(form models.FormState) *Issue {
		v := form.Get(field)
		if len(v) != n {
			return issue(field, msg)
		}
		for i := 0; i < len(v); i++ {
			if v[i] < '0' || v[i] > '9' {
				return issue(field, msg)
			}
		}
		return nil
	}
}

// MinLength fails when field holds fewer than n characters.
func MinLength(field string, n int, msg string) Rule {
	return func(form models.FormState) *Issue {
		if utf8.RuneCountInString(form.Get(field)) < n {
			return issue(field, msg)
		}
		return nil
	}
}

// PositiveFloat fails unless the trimmed field parses as a finite float > 0.
func PositiveFloat(field, msg string) Rule {
	return func(form models.FormState) *Issue {
		f, err := strconv.ParseFloat(form.Trimmed(field), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return issue(field, msg)
		}
		return nil
	}
}

// OneOf fails unless field equals one of allowed.
func OneOf(field string, allowed []string, msg string) Rule {
	return func(form models.FormState) *Issue {
		if !slices.Contains(allowed, form.Get(field)) {
			return issue(field, msg)
		}
		return nil
	}
}

// Matches fails when field differs from other. The issue is reported on field.
func Matches(field, other, msg string) Rule {
	return func(form models.FormState) *Issue {
		if form.Get(field) != form.Get(other) {
			return issue(field, msg)
		}
		return nil
	}
}

// Email fails unless field holds a bare address such as user@example.org.
func Email(field, msg string) Rule {
	return func(form models.FormState) *Issue {
		v := form.Trimmed(field)
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || !strings.Contains(v, "@") {
			return issue(field, msg)
		}
		return nil
	}
}

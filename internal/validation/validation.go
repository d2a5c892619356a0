// Package validation is the rule-map collaborator: given per-resource field
// rules and a caller-supplied field map, it returns either the validated
// writable subset or a per-field failure list.
package validation

import (
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

// Rules maps a field name to a validator tag expression, e.g.
// {"email": "required,email", "score": "required,min=1,max=5"}.
type Rules map[string]string

var validate = validator.New()

// Apply checks fields against rules for a create: required rules fire on
// absent fields, and only rule-listed fields pass through to the store.
func Apply(rules Rules, fields map[string]any) (map[string]any, error) {
	return run(rules, fields, false)
}

// ApplyPartial checks fields against rules for an update: absent fields are
// left alone, present ones must still satisfy their non-required rules.
func ApplyPartial(rules Rules, fields map[string]any) (map[string]any, error) {
	return run(rules, fields, true)
}

func run(rules Rules, fields map[string]any, partial bool) (map[string]any, error) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]any, len(fields))
	var items []apperrors.Item

	for _, name := range names {
		tag := rules[name]
		value, present := fields[name]

		if !present || value == nil {
			if !partial && hasRequired(tag) {
				items = append(items, apperrors.FieldError(name, "is required"))
			}
			if present {
				// explicit null clears a nullable field
				out[name] = nil
			}
			continue
		}

		checkTag := tag
		if partial {
			checkTag = stripRequired(tag)
		}
		if checkTag != "" {
			if err := validate.Var(value, checkTag); err != nil {
				items = append(items, apperrors.FieldError(name, message(err, checkTag)))
				continue
			}
		}
		out[name] = normalize(value)
	}

	if len(items) > 0 {
		return nil, apperrors.Validation(items...)
	}
	return out, nil
}

func hasRequired(tag string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == "required" {
			return true
		}
	}
	return false
}

func stripRequired(tag string) string {
	parts := strings.Split(tag, ",")
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "required" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ",")
}

func message(err error, tag string) string {
	var verrs validator.ValidationErrors
	if ok := errorsAs(err, &verrs); ok && len(verrs) > 0 {
		return "must satisfy " + verrs[0].Tag()
	}
	return "must satisfy " + tag
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}

// normalize folds JSON's float64 numbers back into int64 when they carry an
// integral value, so id and count fields bind to integer columns.
func normalize(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return v
}

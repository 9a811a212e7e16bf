// Package validation checks candidate resources against declarative field
// rules before they may be persisted.
package validation

import (
	"errors"
	"strings"

	"blog-service/internal/model"

	"github.com/go-playground/validator/v10"
)

// Violation is a single failed rule on a single field.
type Violation struct {
	PropertyPath string `json:"property_path"`
	Message      string `json:"message"`
}

// Constraint is one validator tag plus the message reported when it fails.
// "{limit}" in Message is replaced with the tag parameter.
type Constraint struct {
	Tag     string
	Message string
}

// FieldRule binds a field path to its constraints. A nil value only reports
// NotNull; the remaining constraints run against the dereferenced value.
type FieldRule struct {
	Field       string
	Value       func(in model.PostInput) *string
	NotNull     string
	Constraints []Constraint
}

var PostRules = []FieldRule{
	{
		Field:   "title",
		Value:   func(in model.PostInput) *string { return in.Title },
		NotNull: "title is required",
		Constraints: []Constraint{
			{Tag: "min=3", Message: "title must contain at least {limit} characters"},
			{Tag: "max=255", Message: "title must contain at most {limit} characters"},
		},
	},
	{
		Field:   "content",
		Value:   func(in model.PostInput) *string { return in.Content },
		NotNull: "content cannot be null",
	},
}

type Validator struct {
	validate *validator.Validate
	rules    []FieldRule
}

func NewPostValidator() *Validator {
	return &Validator{
		validate: validator.New(),
		rules:    PostRules,
	}
}

// ValidatePost evaluates every rule and returns all violations. An empty
// result means the candidate is valid.
func (v *Validator) ValidatePost(candidate model.PostInput) []Violation {
	violations := []Violation{}

	for _, rule := range v.rules {
		value := rule.Value(candidate)
		if value == nil {
			if rule.NotNull != "" {
				violations = append(violations, Violation{PropertyPath: rule.Field, Message: rule.NotNull})
			}
			continue
		}

		for _, c := range rule.Constraints {
			err := v.validate.Var(*value, c.Tag)
			if err == nil {
				continue
			}

			param := ""
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				param = fieldErrs[0].Param()
			}

			violations = append(violations, Violation{
				PropertyPath: rule.Field,
				Message:      strings.ReplaceAll(c.Message, "{limit}", param),
			})
		}
	}

	return violations
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation checks account form fields before they are sent to
// the API. Each field has a go-playground/validator tag rule.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Error messages shown next to invalid fields.
const (
	MsgUsername = "Username must be at least 3 characters."
	MsgEmail    = "Invalid email format."
	MsgPassword = "Password must be at least 6 characters, contain 1 number, 1 uppercase, and 1 lowercase letter."
)

// Validator tags per field. alphanum limits passwords to ASCII letters and
// digits.
const (
	UsernameTag = "trimmed_min=3"
	EmailTag    = "email_shape"
	PasswordTag = "min=6,alphanum," +
		"containsany=abcdefghijklmnopqrstuvwxyz," +
		"containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ," +
		"containsany=0123456789"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// fieldRules maps form field names to validator tags and messages.
var fieldRules = map[string]struct {
	tag string
	msg string
}{
	"username": {tag: UsernameTag, msg: MsgUsername},
	"email":    {tag: EmailTag, msg: MsgEmail},
	"password": {tag: PasswordTag, msg: MsgPassword},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registering validation " + tag + ": " + err.Error())
	}
}

// ValidateField returns the error message for a field value, or an empty
// string when the value is acceptable. Fields without a rule always pass.
func ValidateField(name, value string) string {
	rule, ok := fieldRules[name]
	if !ok {
		return ""
	}
	if err := validate.Var(value, rule.tag); err != nil {
		return rule.msg
	}
	return ""
}

// Errors maps field names to error messages. Valid fields are absent.
type Errors map[string]string

// Get returns the message for a field.
func (e Errors) Get(field string) string {
	return e[field]
}

// ValidateForm validates every field of form in one pass and returns the
// resulting errors and whether the form is valid. It keeps no state between
// calls.
func ValidateForm(form map[string]string) (Errors, bool) {
	errs := make(Errors)
	for name, value := range form {
		if msg := ValidateField(name, value); msg != "" {
			errs[name] = msg
		}
	}
	return errs, len(errs) == 0
}

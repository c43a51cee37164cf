// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)
)

// FieldError describes one failed rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the json name of the field.
func (e *FieldError) Field() string { return e.field }

// Tag returns the failed rule.
func (e *FieldError) Tag() string { return e.tag }

// Param returns the rule parameter, e.g. "5" for max=5.
func (e *FieldError) Param() string { return e.param }

// Value returns the rejected value.
func (e *FieldError) Value() interface{} { return e.value }

func (e *FieldError) Error() string { return e.message }

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual failures.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures into a VALIDATION_ERROR payload.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	case 1:
		fe := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: fe.message,
			Details: map[string]interface{}{
				"field": fe.field,
				"tag":   fe.tag,
				"value": fe.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		fe := ve.errors[i]
		fields[i] = map[string]interface{}{
			"field":   fe.field,
			"tag":     fe.tag,
			"message": fe.message,
		}
		messages[i] = fe.message
	}
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator, registering custom tags on
// first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		mustRegister(v, "timeslot", validateTimeSlot)
		mustRegister(v, "mbtitype", validateMBTIType)
		mustRegister(v, "orderid", validateOrderID)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	slot := fl.Field().Int()
	return slot == saju.TimeUnknown || (slot >= 0 && slot <= saju.MaxTimeSlot)
}

func validateMBTIType(fl validator.FieldLevel) bool {
	_, err := mbti.ParseType(fl.Field().String())
	return err == nil
}

func validateOrderID(fl validator.FieldLevel) bool {
	return orderIDPattern.MatchString(fl.Field().String())
}

// ValidateStruct validates s, returning nil on success.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{errors: []FieldError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var plainMessages = map[string]string{
	"required": "%s is required",
	"timeslot": "%s must be -1 (unknown) or a time slot from 0 to 11",
	"mbtitype": "%s must be a four-letter MBTI type such as INTJ",
	"orderid":  "%s must be 6-64 characters of letters, digits, '-' or '_'",
	"email":    "%s must be a valid email address",
	"datetime": "%s must be a date in YYYY-MM-DD format",
	"uuid4":    "%s must be a valid UUID",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"len":   "%s must have exactly %s items",
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tpl, field)
	}
	if tpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tpl, field, param)
	}

	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}

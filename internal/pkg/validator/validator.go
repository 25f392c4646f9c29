// Package validator wraps the go-playground validator with EN translations
// and error messages prefixed by the JSON path of the invalid value.
package validator

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const nestedFieldName = "__nested__"

type Validator interface {
	Validate(ctx context.Context, value any) error
	ValidateCtx(ctx context.Context, value any, tag string, namespace string) error
	ValidateValue(value any, tag string) error
}

// Rule is a custom validation rule.
type Rule struct {
	Tag          string
	Func         validator.FuncCtx
	FuncNoCtx    validator.Func
	ErrorMsg     string
	ErrorMsgFunc func(fe validator.FieldError) string
}

type wrapper struct {
	validator  *validator.Validate
	translator ut.Translator
}

func New(rules ...Rule) Validator {
	v := &wrapper{validator: validator.New()}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validator, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	// Use JSON field name in error messages
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedFieldName
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("xml"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	v.registerDefaultRules()
	for _, rule := range rules {
		v.registerRule(rule)
	}

	return v
}

// Validate validates a struct by its "validate" tags, or items of a slice/map.
func (v *wrapper) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

func (v *wrapper) ValidateValue(value any, tag string) error {
	return v.ValidateCtx(context.Background(), value, tag, "")
}

func (v *wrapper) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	var err error
	if tag == "dive" && isStruct(value) {
		err = v.validator.StructCtx(ctx, value)
	} else {
		err = v.validator.VarCtx(ctx, value, tag)
	}

	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.processValidateError(validationErrs, namespace)
		}
		panic(err)
	}
	return nil
}

func (v *wrapper) registerDefaultRules() {
	// Some values must be non-empty even if they are pointers or slices.
	v.registerRule(Rule{
		Tag: "required_not_empty",
		FuncNoCtx: func(fl validator.FieldLevel) bool {
			field := fl.Field()
			switch field.Kind() {
			case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
				return field.Len() > 0
			case reflect.Invalid:
				return false
			default:
				return !field.IsZero()
			}
		},
		ErrorMsg: "{0} is a required field",
	})
}

func (v *wrapper) registerRule(rule Rule) {
	var err error
	switch {
	case rule.Func != nil:
		err = v.validator.RegisterValidationCtx(rule.Tag, rule.Func)
	case rule.FuncNoCtx != nil:
		err = v.validator.RegisterValidation(rule.Tag, rule.FuncNoCtx)
	default:
		panic(errors.Errorf(`rule "%s" has no validation function`, rule.Tag))
	}
	if err != nil {
		panic(err)
	}

	// Register translation
	err = v.validator.RegisterTranslation(
		rule.Tag,
		v.translator,
		func(ut ut.Translator) error {
			if rule.ErrorMsg != "" {
				return ut.Add(rule.Tag, rule.ErrorMsg, true)
			}
			return nil
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			if rule.ErrorMsgFunc != nil {
				return fmt.Sprintf("%s %s", fe.Field(), rule.ErrorMsgFunc(fe))
			}
			msg, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				return fmt.Sprintf("%s is invalid", fe.Field())
			}
			return msg
		},
	)
	if err != nil {
		panic(err)
	}
}

func (v *wrapper) processValidateError(err validator.ValidationErrors, prefix string) error {
	result := errors.NewMultiError()
	for _, e := range err {
		// Field path without the root struct name and without anonymous fields
		path := processNamespace(e.Namespace())
		if prefix != "" {
			if path == "" {
				path = prefix
			} else {
				path = prefix + "." + path
			}
		}

		// Translate message and replace the field name by the full path
		msg := e.Translate(v.translator)
		if path == "" {
			msg = strings.TrimSpace(strings.TrimPrefix(msg, e.Field()))
		} else {
			msg = strings.Replace(msg, e.Field(), fmt.Sprintf(`"%s"`, path), 1)
		}
		result.Append(errors.New(msg))
	}
	return result.ErrorOrNil()
}

// processNamespace removes the root struct name and the nested parts.
func processNamespace(namespace string) string {
	namespace = strings.ReplaceAll(namespace, nestedFieldName+".", "")

	// A slice item "[0].field" has no root struct name
	if strings.HasPrefix(namespace, "[") {
		return namespace
	}

	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return ""
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/turftime/internal/pkg/strcase"
)

var rePhone = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

const maxPasswordBytes = 72

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := v10CustomValidation(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}
	return out
}

// rule is a custom tag with its English message.
type rule struct {
	tag     string
	message string
	check   func(s string) bool
}

var customRules = []rule{
	{
		tag:     "password",
		message: "{0} must be 1-72 bytes long",
		// bcrypt ignores input past 72 bytes
		check: func(s string) bool { return s != "" && len(s) <= maxPasswordBytes },
	},
	{
		tag:     "phone",
		message: "{0} must be a valid phone number",
		check:   rePhone.MatchString,
	},
}

func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) error {
	for _, r := range customRules {
		check := r.check
		if err := validate.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && check(s)
		}); err != nil {
			return err
		}

		msg := r.message
		if err := validate.RegisterTranslation(r.tag, enTrans,
			func(tr ut.Translator) error { return tr.Add(r.tag, msg, false) },
			translateField,
		); err != nil {
			return err
		}
	}
	return nil
}

func translateField(tr ut.Translator, fe validator.FieldError) string {
	t, err := tr.T(fe.Tag(), fe.Field())
	if err != nil {
		slog.Warn("validator: missing translation", "tag", fe.Tag(), "error", err)
		return fe.Error()
	}
	return t
}

// Package validate wires go-playground/validator with English translations
// for the portal's modal forms. Validation is local and synchronous: a form
// that fails here never reaches the data service, and the messages are
// surfaced inline next to the offending field.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Error messages name the field the way the form labels it: an explicit
	// `label` tag wins, otherwise the JSON name is title-cased, so a failing
	// `gt=0` on `amount` reads "Amount must be greater than 0".
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return titleCase(name)
	})
}

func titleCase(jsonName string) string {
	words := strings.Split(strings.ReplaceAll(jsonName, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Struct validates a form struct.
func Struct(form interface{}) error {
	return Validate.Struct(form)
}

// Fields flattens a validation error into a field → message map for inline
// rendering. A non-validation error yields a single "form" entry so the
// failure is still visible to the user.
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldKey(fe)] = fe.Translate(Translator)
	}
	return fields
}

// fieldKey returns the snake_case form name of the failing field so the
// front end can attach the message to the matching input.
func fieldKey(fe validator.FieldError) string {
	name := fe.Field()
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

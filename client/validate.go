package client

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

var labelPattern = regexp.MustCompile(`(?i)^[a-z0-9_ -]+$`)

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("client: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	custom := map[string]func(string) bool{
		"nonblank":     func(s string) bool { return !IsBlank(s) },
		"label":        ValidLabel,
		"nowhitespace": func(s string) bool { return !HasWhitespace(s) },
		"username":     func(s string) bool { return utf8.RuneCountInString(s) <= MaxExternalUserNameLength },
	}
	for tag, fn := range custom {
		err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			panic(err)
		}
	}
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidLabel reports whether s is usable as a team inbox source or
// project: letters, digits, underscores, hyphens and spaces.
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// HasWhitespace reports whether s contains any whitespace rune.
func HasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// check validates the provided model against its declared tags.
func check(val any) error {
	if err := validate.Struct(val); err != nil {
		var verrors validator.ValidationErrors
		if !errors.As(err, &verrors) {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			field := FieldError{
				Field: verror.Field(),
				Err:   customErrForTag(verror.Tag(), verror),
			}
			fields = append(fields, field)
		}
		return &InvalidParameterError{Fields: fields}
	}

	return nil
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required", "nonblank":
		return "must not be blank"
	case "label":
		return "may only contain letters, numbers, underscores, hyphens and spaces"
	case "nowhitespace":
		return "must not contain whitespace"
	case "username":
		return fmt.Sprintf("must be at most %d characters", MaxExternalUserNameLength)
	default:
		return verror.Translate(translator)
	}
}

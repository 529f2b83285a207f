package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var (
	trans     ut.Translator
	setupOnce sync.Once
)

// Setup registers the validator with English translations on Gin's binding engine.
// Safe to call more than once; only the first call has an effect.
func Setup() {
	setupOnce.Do(setup)
}

func setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register English translations.
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	must(en_translations.RegisterDefaultTranslations(v, trans))

	// required alone lets "   " through; the services trim before storing.
	register(v, "notblank", validators.NotBlank, "{0} is a required field")
	registerEnum(v, "designation", model.Designations)
	registerEnum(v, "subject_type", model.SubjectTypes)
	registerEnum(v, "program_level", model.ProgramLevels)
}

// registerEnum adds a tag that accepts exactly the given string values,
// including values with spaces that the builtin oneof cannot express.
func registerEnum[T ~string](v *govalidator.Validate, tag string, allowed []T) {
	set := make(map[string]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		set[string(a)] = struct{}{}
		names = append(names, string(a))
	}

	register(v, tag, func(fl govalidator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}, "{0} must be one of: "+strings.Join(names, ", "))
}

// register installs a custom tag together with its English message.
func register(v *govalidator.Validate, tag string, fn govalidator.Func, msg string) {
	must(v.RegisterValidation(tag, fn))
	must(v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
		func(ut ut.Translator, fe govalidator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	))
}

// must panics on a registration error. Setup runs once at startup.
func must(err error) {
	if err != nil {
		panic("validator: " + err.Error())
	}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

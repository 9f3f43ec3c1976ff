package validators

import (
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// errCodeTag names the struct tag that selects the error code reported when
// the field fails validation.
const errCodeTag = "errcode"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates a request struct. The code of the first failing field
// decides the code of the returned error; details map every failing field to
// a message.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}

	code := pkgerrors.CodeValidation
	details := map[string]string{}
	for i, fieldErr := range errs {
		details[fieldErr.Field()] = validationMessage(fieldErr)
		if i == 0 {
			code = fieldCode(req, fieldErr)
		}
	}

	first := errs[0]
	msg := fmt.Sprintf("%s %s", first.Field(), validationMessage(first))
	return pkgerrors.New(code, msg).WithDetails(details)
}

func fieldCode(req any, fe validator.FieldError) pkgerrors.Code {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return pkgerrors.CodeValidation
	}
	field, ok := t.FieldByName(fe.StructField())
	if !ok {
		return pkgerrors.CodeValidation
	}
	if code := field.Tag.Get(errCodeTag); code != "" {
		return pkgerrors.Code(code)
	}
	return pkgerrors.CodeValidation
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}

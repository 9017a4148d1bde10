package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"

	"lullaby/pkg/story"
)

type requestValidator struct {
	validate *validator.Validate
}

func newValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Validate reports the first missing field as a 400.
func (r *requestValidator) Validate(i any) error {
	err := r.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidJSON).SetInternal(err)
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field()
	}
	return echo.NewHTTPError(http.StatusBadRequest, missingFields(names)).
		SetInternal(fmt.Errorf("%w: %s", story.ErrInvalidInput, err))
}

func missingFields(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Il campo %q è obbligatorio nel corpo della richiesta.", names[0])
	}
	return fmt.Sprintf("Parametri mancanti. È necessario fornire %s.", strings.Join(names, " e "))
}

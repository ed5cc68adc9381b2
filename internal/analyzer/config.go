package analyzer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the options of one import run.
type Config struct {
	Paths        []string `flag:"paths" validate:"required,min=1,dive,required"`
	OutputFormat string   `flag:"output" validate:"required,oneof=table json csv summary xlsx chart"`
	OutputFile   string   `flag:"out" validate:"required_if=OutputFormat xlsx"`
	Timezone     string   `flag:"timezone" validate:"required,tzname"`
	Limit        int      `flag:"limit" validate:"gte=0"`
	Concurrency  int      `flag:"concurrency" validate:"gte=0"`
	Open         bool     `flag:"open"`
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("tzname", isTimezone)

	// Report errors by CLI flag name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("flag")
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

func isTimezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

// Validate checks the configuration and returns one error naming every
// invalid flag.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("--%s: %s", fe.Field(), describe(fe)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for this output format"
	case "min":
		return "needs at least one path"
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "tzname":
		return fmt.Sprintf("unknown timezone %q", fe.Value())
	case "gte":
		return "must not be negative"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

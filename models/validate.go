package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phillip/autoclub-go/apperr"
)

// Validator checks documents against their structural constraints and
// reports failures as *apperr.ValidationError keyed by JSON field name.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(garageVariant, Garage{})
	v.RegisterStructValidation(messageMedia, Message{})
	return &Validator{v: v}
}

// Struct validates s. It returns nil or a *apperr.ValidationError.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &apperr.ValidationError{Fields: map[string]string{"_": err.Error()}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return &apperr.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "variant":
		return fmt.Sprintf("not allowed for category %s", fe.Param())
	case "variant_required":
		return fmt.Sprintf("is required for category %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// garageVariant enforces the category discriminator: only the variant field
// belonging to the garage's category may be present.
func garageVariant(sl validator.StructLevel) {
	g := sl.Current().Interface().(Garage)

	forbid := func(set bool, field, name string) {
		if set {
			sl.ReportError(field, name, name, "variant", g.Category)
		}
	}

	switch g.Category {
	case CategoryGarage:
		if g.OpenHours == nil || len(strings.TrimSpace(*g.OpenHours)) < 2 {
			sl.ReportError(g.OpenHours, "open_hours", "OpenHours", "variant_required", g.Category)
		}
		forbid(g.Availability != nil, "availability", "Availability")
		forbid(g.MapURL != nil, "map_url", "MapURL")
	case CategoryParts:
		forbid(g.OpenHours != nil, "open_hours", "OpenHours")
		forbid(g.MapURL != nil, "map_url", "MapURL")
	case CategoryTravel:
		forbid(g.OpenHours != nil, "open_hours", "OpenHours")
		forbid(g.Availability != nil, "availability", "Availability")
		if g.MapURL != nil {
			if err := sl.Validator().Var(*g.MapURL, "url"); err != nil {
				sl.ReportError(*g.MapURL, "map_url", "MapURL", "url", "")
			}
		}
	}
}

// messageMedia requires a media URL whenever a media type is attached.
func messageMedia(sl validator.StructLevel) {
	m := sl.Current().Interface().(Message)
	if m.MediaType != "" && m.MediaType != MediaNone && m.MediaURL == "" {
		sl.ReportError(m.MediaURL, "media_url", "MediaURL", "required", "")
	}
}

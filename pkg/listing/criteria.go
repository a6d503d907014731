package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Criteria describes a rental search. Every field is optional; an empty
// Criteria matches everything.
type Criteria struct {
	Locations    []string `json:"location,omitempty" yaml:"location,omitempty" validate:"omitempty,dive,max=80" description:"Areas to search, e.g. 'Dublin 4' or 'Carrigaline, Cork'"`
	MinPrice     *float64 `json:"minPrice,omitempty" yaml:"minPrice,omitempty" validate:"omitempty,gte=0" description:"Minimum monthly rent in euro"`
	MaxPrice     *float64 `json:"maxPrice,omitempty" yaml:"maxPrice,omitempty" validate:"omitempty,gte=0" description:"Maximum monthly rent in euro"`
	Beds         *int     `json:"numBeds,omitempty" yaml:"numBeds,omitempty" validate:"omitempty,gte=0,lte=20" description:"Exact number of bedrooms"`
	PropertyType string   `json:"propertyType,omitempty" yaml:"propertyType,omitempty" validate:"omitempty,max=40" description:"Property type, e.g. apartment or house"`
}

// ValidationError lists every criteria field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "invalid search criteria: " + strings.Join(msgs, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the criteria for values the site could never satisfy.
// It returns a *ValidationError or nil.
func (c Criteria) Validate() error {
	var fields []FieldError

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: describeTag(fe),
			})
		}
	}

	for i, loc := range c.Locations {
		if strings.TrimSpace(loc) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("Locations[%d]", i),
				Message: "must not be blank",
			})
		}
	}

	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		fields = append(fields, FieldError{
			Field:   "MinPrice",
			Message: "must not exceed MaxPrice",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// IsEmpty reports whether the criteria constrain nothing.
func (c Criteria) IsEmpty() bool {
	return len(c.Locations) == 0 && c.MinPrice == nil && c.MaxPrice == nil &&
		c.Beds == nil && c.PropertyType == ""
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

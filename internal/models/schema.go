package models

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Schema validates and coerces raw create/update payloads against a model's
// field descriptors.
type Schema struct {
	model    *Model
	validate *validator.Validate
}

func NewSchema(model *Model) *Schema {
	return &Schema{model: model, validate: validator.New()}
}

func (s *Schema) Model() *Model {
	return s.model
}

// Clean returns a record containing only recognized, type-coerced fields, or
// a map of field-level error messages. With partial set, required fields may
// be absent: validation is driven by the keys actually present in the
// payload. Unknown keys are dropped silently. A non-empty error map means no
// mutation may happen downstream.
func (s *Schema) Clean(raw map[string]any, partial bool) (Record, map[string]string) {
	cleaned := make(Record, len(raw))
	fieldErrs := make(map[string]string)

	for _, f := range s.model.Fields {
		value, present := raw[f.Name]

		if !present {
			if f.Required && !partial {
				fieldErrs[f.Name] = "Missing data for required field."
			}

			continue
		}

		coerced, err := coerce(value, f.Kind)
		if err != nil {
			fieldErrs[f.Name] = err.Error()

			continue
		}

		if f.Rules != "" {
			if err := s.validate.Var(coerced, f.Rules); err != nil {
				fieldErrs[f.Name] = fmt.Sprintf("Value does not satisfy rule '%s'.", f.Rules)

				continue
			}
		}

		cleaned[f.Name] = coerced
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return cleaned, nil
}

// coerce maps a decoded JSON value onto the field's primitive type. JSON
// numbers arrive as float64 and must be whole to coerce to an integer.
func coerce(value any, kind Kind) (any, error) {
	switch kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("Not a valid string.")
		}

		return s, nil

	case KindInt:
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("Not a valid integer.")
			}

			return int64(v), nil
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		}

		return nil, fmt.Errorf("Not a valid integer.")

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("Not a valid boolean.")
		}

		return b, nil
	}

	return nil, fmt.Errorf("Unknown field type.")
}

package builder

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field path (e.g. "components[2].capacity") to a
// human-readable message. An empty mapping means the configuration is valid.
type FieldErrors map[string]string

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(configurationStructLevel, Configuration{})
}

// Validate checks a full configuration and returns every rule violation at
// once. It is deterministic and never mutates its input; the reconciler and
// this engine share ApplicableFields, so a field is either cleared or
// required, never both.
func Validate(cfg Configuration) FieldErrors {
	err := validate.Struct(cfg)
	if err == nil {
		return FieldErrors{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns InvalidValidationError for non-struct input.
		return FieldErrors{"configuration": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

// configurationStructLevel reports every violated rule with the field path as
// the reported name, so validator's error collection yields the mapping the
// rendering layer expects.
func configurationStructLevel(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Configuration)

	if strings.TrimSpace(cfg.BaseModel) == "" {
		sl.ReportError(cfg.BaseModel, "baseModel", "BaseModel", "required", "")
	}

	if len(cfg.Components) == 0 {
		sl.ReportError(cfg.Components, "components", "Components", "min", "1")
	}

	for i, rec := range cfg.Components {
		path := func(field string) string {
			return fmt.Sprintf("components[%d].%s", i, field)
		}
		if rec.Type == "" {
			sl.ReportError(rec.Type, path(FieldType), "Type", "required", "")
		} else if !rec.Type.Valid() {
			sl.ReportError(rec.Type, path(FieldType), "Type", "oneof", "cpu gpu ram storage")
		}
		if strings.TrimSpace(rec.Name) == "" {
			sl.ReportError(rec.Name, path(FieldName), "Name", "required", "")
		}
		if v, ok := ParsePrice(rec.Price); !ok || v <= 0 {
			sl.ReportError(rec.Price, path(FieldPrice), "Price", "price", "")
		}
		if FieldApplicable(rec.Type, FieldCapacity) && strings.TrimSpace(rec.Capacity) == "" {
			sl.ReportError(rec.Capacity, path(FieldCapacity), "Capacity", "required", "")
		}
		if FieldApplicable(rec.Type, FieldStorageType) {
			if rec.StorageType == "" {
				sl.ReportError(rec.StorageType, path(FieldStorageType), "StorageType", "required", "")
			} else if !rec.StorageType.Valid() {
				sl.ReportError(rec.StorageType, path(FieldStorageType), "StorageType", "oneof", "ssd hdd")
			}
		}
	}

	// Guards the zero/empty-list case; with one positively priced component
	// this is trivially satisfied.
	if cfg.TotalPrice <= 0 {
		sl.ReportError(cfg.TotalPrice, "totalPrice", "TotalPrice", "gt", "0")
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "add at least one component"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "price":
		return "price must be a number greater than 0"
	case "gt":
		return "total price must be greater than 0"
	}
	return "invalid value"
}

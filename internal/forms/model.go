package forms

import (
	"context"
	"errors"
	"time"
)

var (
	ErrFormNotFound     = errors.New("form config not found")
	ErrMissingFormName  = errors.New("form name is required")
	ErrMissingFieldName = errors.New("every field needs a name")
	ErrInvalidFieldType = errors.New("unknown field type")
	ErrMissingOptions   = errors.New("select fields need at least one option")
)

// FieldType enumerates the input widgets the dashboard's form builder offers.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldPhone    FieldType = "phone"
	FieldEmail    FieldType = "email"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldSelect, FieldCheckbox, FieldDate, FieldPhone, FieldEmail:
		return true
	}
	return false
}

type FormField struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// FormConfig is the editable field layout for one public-site form,
// keyed by form name.
type FormConfig struct {
	FormName  string
	Fields    []FormField
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, formName string) (*FormConfig, error)
	List(ctx context.Context) ([]FormConfig, error)
	Upsert(ctx context.Context, cfg *FormConfig) (*FormConfig, error)
	Delete(ctx context.Context, formName string) error
}

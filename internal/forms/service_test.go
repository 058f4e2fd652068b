package forms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	configs map[string]FormConfig
}

func (r *fakeRepo) Get(_ context.Context, formName string) (*FormConfig, error) {
	cfg, ok := r.configs[formName]
	if !ok {
		return nil, ErrFormNotFound
	}
	return &cfg, nil
}

func (r *fakeRepo) List(context.Context) ([]FormConfig, error) {
	var out []FormConfig
	for _, cfg := range r.configs {
		out = append(out, cfg)
	}
	return out, nil
}

func (r *fakeRepo) Upsert(_ context.Context, cfg *FormConfig) (*FormConfig, error) {
	c := *cfg
	c.UpdatedAt = time.Now()
	r.configs[c.FormName] = c
	return &c, nil
}

func (r *fakeRepo) Delete(_ context.Context, formName string) error {
	if _, ok := r.configs[formName]; !ok {
		return ErrFormNotFound
	}
	delete(r.configs, formName)
	return nil
}

func newTestService() *Service {
	return NewService(&fakeRepo{configs: make(map[string]FormConfig)}, zap.NewNop())
}

func TestSaveFormConfig(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("save and reload round-trips", func(t *testing.T) {
		_, err := svc.Save(ctx, FormConfig{
			FormName: "visit-request",
			Fields: []FormField{
				{Name: "patient_name", Label: "Your name", Type: FieldText, Required: true},
				{Name: "urgency", Label: "How urgent?", Type: FieldSelect, Options: []string{"routine", "urgent"}},
			},
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, "visit-request")
		require.NoError(t, err)
		require.Len(t, got.Fields, 2)
		assert.Equal(t, FieldSelect, got.Fields[1].Type)
	})

	t.Run("rejects nameless fields", func(t *testing.T) {
		_, err := svc.Save(ctx, FormConfig{
			FormName: "contact",
			Fields:   []FormField{{Label: "Anonymous", Type: FieldText}},
		})
		assert.ErrorIs(t, err, ErrMissingFieldName)
	})

	t.Run("rejects unknown field types", func(t *testing.T) {
		_, err := svc.Save(ctx, FormConfig{
			FormName: "contact",
			Fields:   []FormField{{Name: "f", Type: FieldType("slider")}},
		})
		assert.ErrorIs(t, err, ErrInvalidFieldType)
	})

	t.Run("select fields need options", func(t *testing.T) {
		_, err := svc.Save(ctx, FormConfig{
			FormName: "contact",
			Fields:   []FormField{{Name: "choice", Type: FieldSelect}},
		})
		assert.ErrorIs(t, err, ErrMissingOptions)
	})

	t.Run("form name required", func(t *testing.T) {
		_, err := svc.Save(ctx, FormConfig{})
		assert.ErrorIs(t, err, ErrMissingFormName)
	})
}

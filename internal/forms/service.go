package forms

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func validateFields(fields []FormField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			return ErrMissingFieldName
		}
		if !f.Type.Valid() {
			return ErrInvalidFieldType
		}
		if f.Type == FieldSelect && len(f.Options) == 0 {
			return ErrMissingOptions
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, formName string) (*FormConfig, error) {
	return s.repo.Get(ctx, formName)
}

func (s *Service) List(ctx context.Context) ([]FormConfig, error) {
	return s.repo.List(ctx)
}

func (s *Service) Save(ctx context.Context, cfg FormConfig) (*FormConfig, error) {
	if strings.TrimSpace(cfg.FormName) == "" {
		return nil, ErrMissingFormName
	}
	if err := validateFields(cfg.Fields); err != nil {
		return nil, err
	}
	if cfg.Fields == nil {
		cfg.Fields = []FormField{}
	}

	saved, err := s.repo.Upsert(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("form config saved",
		zap.String("form", saved.FormName), zap.Int("fields", len(saved.Fields)))
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, formName string) error {
	return s.repo.Delete(ctx, formName)
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type SettingService struct {
	repo   ports.SettingRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewSettingService(repo ports.SettingRepository, audit ports.AuditLogger, logger zerolog.Logger) *SettingService {
	return &SettingService{repo: repo, audit: audit, logger: logger}
}

func (s *SettingService) Get(ctx context.Context, id int64) (*domain.Setting, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SettingService) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	return s.repo.FindByKey(ctx, key)
}

func (s *SettingService) Value(ctx context.Context, key, def string) (string, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if errors.Is(err, domain.ErrSettingNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) ExistsByKey(ctx context.Context, key string) (bool, error) {
	return s.repo.ExistsByKey(ctx, key)
}

func (s *SettingService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.repo.List(ctx)
}

func (s *SettingService) Create(ctx context.Context, setting *domain.Setting) (*domain.Setting, error) {
	if taken, err := s.repo.ExistsByKey(ctx, setting.Key); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrSettingExists
	}
	if err := s.repo.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) Update(ctx context.Context, id int64, details *domain.Setting) (*domain.Setting, error) {
	setting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setting.Key = details.Key
	setting.Value = details.Value
	if err := s.repo.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// SetByKey upserts a value. Changes to the current_semester key are audited;
// other keys are plain configuration writes.
func (s *SettingService) SetByKey(ctx context.Context, key, value, actor string) (*domain.Setting, error) {
	existing, err := s.repo.FindByKey(ctx, key)
	oldValue := "null"
	switch {
	case err == nil:
		oldValue = existing.Value
		existing.Value = value
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrSettingNotFound):
		existing = &domain.Setting{Key: key, Value: value}
		if err := s.repo.Create(ctx, existing); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if key == domain.SettingCurrentSemester {
		s.audit.Record(ctx, actor, domain.ActionUpdateSemester, map[string]any{
			"key":      key,
			"oldValue": oldValue,
			"newValue": value,
		})
	}
	return existing, nil
}

func (s *SettingService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *SettingService) DeleteByKey(ctx context.Context, key string) error {
	return s.repo.DeleteByKey(ctx, key)
}

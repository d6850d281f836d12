package service

import (
	"context"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/models"
)

type settingService struct {
	settings store.SettingRepository

	logger *logger.Logger
}

// NewSettingService wires the persisted key-value configuration service.
func NewSettingService(settings store.SettingRepository, log *logger.Logger) SettingService {
	return &settingService{
		settings: settings,
		logger:   log,
	}
}

func (s *settingService) Get(ctx context.Context, key, fallback string) (string, error) {
	return s.settings.GetValue(ctx, key, fallback)
}

func (s *settingService) Set(ctx context.Context, key, value string) error {
	return s.settings.SetValue(ctx, key, value)
}

func (s *settingService) BulkSet(ctx context.Context, settings map[string]string) error {
	return s.settings.BulkSet(ctx, settings)
}

func (s *settingService) All(ctx context.Context) ([]models.Setting, error) {
	return s.settings.FindAll(ctx, 0, 0)
}

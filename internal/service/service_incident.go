package service

import (
	"context"
	"strings"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/models"
)

type incidentService struct {
	incidents store.IncidentRepository

	logger *logger.Logger
}

// NewIncidentService wires the incident management service.
func NewIncidentService(incidents store.IncidentRepository, log *logger.Logger) IncidentService {
	return &incidentService{
		incidents: incidents,
		logger:    log,
	}
}

func (s *incidentService) Create(ctx context.Context, name, description string, startDate time.Time) (*models.Incident, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	id, err := s.incidents.Create(ctx, models.Incident{
		Name:        name,
		Description: description,
		StartDate:   startDate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "incidentService.Create").
		Int64("incident_id", id).
		Str("name", name).
		Msg("incident created")

	return s.Get(ctx, id)
}

func (s *incidentService) Get(ctx context.Context, id int64) (*models.Incident, error) {
	incident, err := s.incidents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, store.ErrNotFound
	}
	return incident, nil
}

func (s *incidentService) GetByName(ctx context.Context, name string) (*models.Incident, error) {
	incident, err := s.incidents.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, store.ErrNotFound
	}
	return incident, nil
}

func (s *incidentService) List(ctx context.Context, limit, offset uint64) ([]models.Incident, error) {
	return s.incidents.FindAll(ctx, limit, offset)
}

func (s *incidentService) ListActive(ctx context.Context) ([]models.Incident, error) {
	return s.incidents.FindActive(ctx)
}

func (s *incidentService) Close(ctx context.Context, id int64, endDate time.Time) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if endDate.IsZero() {
		endDate = time.Now().UTC()
	}
	_, err := s.incidents.SetClosed(ctx, id, endDate)
	return err
}

func (s *incidentService) Reopen(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	_, err := s.incidents.SetReopened(ctx, id)
	return err
}

package template_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rope-coach/internal/models"
	"rope-coach/internal/repository"
	"rope-coach/internal/service"
)

type templateService struct {
	templateRepo repository.TemplateRepository
	log          *zap.Logger
}

func NewTemplateService(templateRepo repository.TemplateRepository, log *zap.Logger) service.TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		log:          log.Named("template"),
	}
}

func (s *templateService) GetAll(ctx context.Context) ([]models.TrainingTemplate, error) {
	return s.templateRepo.GetAll(ctx)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*models.TrainingTemplate, error) {
	t, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("template %s: %w", id, models.ErrTemplateNotFound)
	}
	return t, nil
}

// Save проверяет периоды: у шаблона PREP/SPEC/COMP, у блока ещё допускается ALL
func (s *templateService) Save(ctx context.Context, t *models.TrainingTemplate) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return models.ErrEmptyName
	}
	if !t.Period.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidPeriod, t.Period)
	}
	for i := range t.Blocks {
		b := &t.Blocks[i]
		if b.Period != models.PeriodAll && !b.Period.Valid() {
			return fmt.Errorf("block %q: %w: %q", b.Title, models.ErrInvalidPeriod, b.Period)
		}
		for _, q := range b.Qualities {
			if !q.Valid() {
				return fmt.Errorf("block %q: %w: %q", b.Title, models.ErrUnknownQuality, q)
			}
		}
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := s.templateRepo.Upsert(ctx, t); err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	s.log.Info("шаблон сохранён", zap.String("template_id", t.ID), zap.Int("blocks", len(t.Blocks)))
	return nil
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

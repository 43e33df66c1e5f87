package service

import (
	"context"

	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/search"
	"github.com/morleaf/leaf_chain/internal/transport"
)

// LogisticsService covers expeditions and shipping departures. Expeditions
// are additionally mirrored into the search index; indexing is best-effort
// and never fails the write.
type LogisticsService struct {
	Repo  *repo.GormRepo
	Index *search.ExpeditionIndex
}

func (s *LogisticsService) CreateExpedition(ctx context.Context, req transport.ExpeditionRequest) (*models.Expedition, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}
	rec := models.Expedition{Name: req.Name}
	if err := s.Repo.CreateExpedition(ctx, &rec); err != nil {
		return nil, err
	}

	if err := s.Index.Index(ctx, rec); err != nil {
		logging.FromContext(ctx).Warn("expedition_index_failed", "expedition_id", rec.ID, "error", err)
	}
	return &rec, nil
}

func (s *LogisticsService) ListExpeditions(ctx context.Context, offset, limit int) (int64, []models.Expedition, error) {
	return s.Repo.ListExpeditions(ctx, offset, limit)
}

func (s *LogisticsService) SearchExpeditions(ctx context.Context, query string, offset, limit int) (int64, []models.Expedition, error) {
	if query == "" {
		return 0, nil, ErrValidation
	}
	return s.Index.Search(ctx, query, offset, limit)
}

// CreateShipping checks the referenced expedition exists so the foreign key
// failure surfaces as not-found.
func (s *LogisticsService) CreateShipping(ctx context.Context, req transport.ShippingRequest) (*models.Shipping, error) {
	if req.ExpeditionID == 0 {
		return nil, ErrValidation
	}
	if _, err := s.Repo.ExpeditionByID(ctx, req.ExpeditionID); err != nil {
		return nil, err
	}
	rec := models.Shipping{DepartureDate: req.DepartureDate, ExpeditionID: req.ExpeditionID}
	if err := s.Repo.CreateShipping(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *LogisticsService) ListShipping(ctx context.Context, offset, limit int) (int64, []models.Shipping, error) {
	return s.Repo.ListShipping(ctx, offset, limit)
}

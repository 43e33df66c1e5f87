package service

import (
	"context"

	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/transport"
)

// RecordService covers the centra-side stage records: wet leaves, dry leaves
// and flour.
type RecordService struct {
	Repo *repo.GormRepo
}

func (s *RecordService) CreateWetLeaves(ctx context.Context, req transport.WetLeavesRequest) (*models.WetLeaves, error) {
	if req.Weight <= 0 {
		return nil, ErrValidation
	}
	rec := models.WetLeaves{RetrievalDate: req.RetrievalDate, Weight: req.Weight}
	if err := s.Repo.CreateWetLeaves(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService) ListWetLeaves(ctx context.Context, offset, limit int) (int64, []models.WetLeaves, error) {
	return s.Repo.ListWetLeaves(ctx, offset, limit)
}

func (s *RecordService) PatchWetLeaves(ctx context.Context, id uint, req transport.PatchWetLeavesRequest) (*models.WetLeaves, error) {
	if req.Weight != nil && *req.Weight <= 0 {
		return nil, ErrValidation
	}
	return s.Repo.PatchWetLeaves(ctx, id, req)
}

func (s *RecordService) DeleteWetLeaves(ctx context.Context, id uint) error {
	return s.Repo.DeleteWetLeaves(ctx, id)
}

func (s *RecordService) CreateDryLeaves(ctx context.Context, req transport.DryLeavesRequest) (*models.DryLeaves, error) {
	if req.Weight <= 0 {
		return nil, ErrValidation
	}
	rec := models.DryLeaves{ExpDate: req.ExpDate, Weight: req.Weight}
	if err := s.Repo.CreateDryLeaves(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService) ListDryLeaves(ctx context.Context, offset, limit int) (int64, []models.DryLeaves, error) {
	return s.Repo.ListDryLeaves(ctx, offset, limit)
}

func (s *RecordService) PatchDryLeaves(ctx context.Context, id uint, req transport.PatchDryLeavesRequest) (*models.DryLeaves, error) {
	if req.Weight != nil && *req.Weight <= 0 {
		return nil, ErrValidation
	}
	return s.Repo.PatchDryLeaves(ctx, id, req)
}

func (s *RecordService) DeleteDryLeaves(ctx context.Context, id uint) error {
	return s.Repo.DeleteDryLeaves(ctx, id)
}

func (s *RecordService) CreateFlour(ctx context.Context, req transport.FlourRequest) (*models.Flour, error) {
	if req.Weight <= 0 {
		return nil, ErrValidation
	}
	rec := models.Flour{FinishTime: req.FinishTime, Weight: req.Weight}
	if err := s.Repo.CreateFlour(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService) ListFlour(ctx context.Context, offset, limit int) (int64, []models.Flour, error) {
	return s.Repo.ListFlour(ctx, offset, limit)
}

func (s *RecordService) PatchFlour(ctx context.Context, id uint, req transport.PatchFlourRequest) (*models.Flour, error) {
	if req.Weight != nil && *req.Weight <= 0 {
		return nil, ErrValidation
	}
	return s.Repo.PatchFlour(ctx, id, req)
}

func (s *RecordService) DeleteFlour(ctx context.Context, id uint) error {
	return s.Repo.DeleteFlour(ctx, id)
}

// CheckpointService covers the guard-harbor side verification records.
type CheckpointService struct {
	Repo *repo.GormRepo
}

// CreateCheckpoint verifies the referenced shipping row exists before
// inserting; a dangling shipping_id surfaces as not-found, not a 500.
func (s *CheckpointService) CreateCheckpoint(ctx context.Context, req transport.CheckpointRequest) (*models.Checkpoint, error) {
	if req.TotalWeight <= 0 || req.TotalPackages < 0 {
		return nil, ErrValidation
	}
	if _, err := s.Repo.ShippingByID(ctx, req.ShippingID); err != nil {
		return nil, err
	}
	rec := models.Checkpoint{
		ArrivalDate:   req.ArrivalDate,
		TotalWeight:   req.TotalWeight,
		TotalPackages: req.TotalPackages,
		ShippingID:    req.ShippingID,
	}
	if err := s.Repo.CreateCheckpoint(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *CheckpointService) ListCheckpoints(ctx context.Context, offset, limit int) (int64, []models.Checkpoint, error) {
	return s.Repo.ListCheckpoints(ctx, offset, limit)
}

func (s *CheckpointService) PatchCheckpoint(ctx context.Context, id uint, req transport.PatchCheckpointRequest) (*models.Checkpoint, error) {
	if req.TotalWeight != nil && *req.TotalWeight <= 0 {
		return nil, ErrValidation
	}
	return s.Repo.PatchCheckpoint(ctx, id, req)
}

func (s *CheckpointService) DeleteCheckpoint(ctx context.Context, id uint) error {
	return s.Repo.DeleteCheckpoint(ctx, id)
}

package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/transport"
)

func (r *GormRepo) CreateWetLeaves(ctx context.Context, rec *models.WetLeaves) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ListWetLeaves(ctx context.Context, offset, limit int) (int64, []models.WetLeaves, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.WetLeaves{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.WetLeaves
	if err := r.DB.WithContext(ctx).Model(&models.WetLeaves{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) PatchWetLeaves(ctx context.Context, id uint, req transport.PatchWetLeavesRequest) (*models.WetLeaves, error) {
	var rec models.WetLeaves
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	if req.RetrievalDate != nil {
		rec.RetrievalDate = *req.RetrievalDate
	}
	if req.Weight != nil {
		rec.Weight = *req.Weight
	}
	if err := r.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) DeleteWetLeaves(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.WetLeaves{}, id)
}

func (r *GormRepo) CreateDryLeaves(ctx context.Context, rec *models.DryLeaves) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ListDryLeaves(ctx context.Context, offset, limit int) (int64, []models.DryLeaves, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.DryLeaves{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.DryLeaves
	if err := r.DB.WithContext(ctx).Model(&models.DryLeaves{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) PatchDryLeaves(ctx context.Context, id uint, req transport.PatchDryLeavesRequest) (*models.DryLeaves, error) {
	var rec models.DryLeaves
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	if req.ExpDate != nil {
		rec.ExpDate = *req.ExpDate
	}
	if req.Weight != nil {
		rec.Weight = *req.Weight
	}
	if err := r.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) DeleteDryLeaves(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.DryLeaves{}, id)
}

func (r *GormRepo) CreateFlour(ctx context.Context, rec *models.Flour) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ListFlour(ctx context.Context, offset, limit int) (int64, []models.Flour, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Flour{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Flour
	if err := r.DB.WithContext(ctx).Model(&models.Flour{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) PatchFlour(ctx context.Context, id uint, req transport.PatchFlourRequest) (*models.Flour, error) {
	var rec models.Flour
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	if req.FinishTime != nil {
		rec.FinishTime = *req.FinishTime
	}
	if req.Weight != nil {
		rec.Weight = *req.Weight
	}
	if err := r.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) DeleteFlour(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.Flour{}, id)
}

func (r *GormRepo) CreateShipping(ctx context.Context, rec *models.Shipping) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ListShipping(ctx context.Context, offset, limit int) (int64, []models.Shipping, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Shipping{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Shipping
	if err := r.DB.WithContext(ctx).Model(&models.Shipping{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ShippingByID(ctx context.Context, id uint) (*models.Shipping, error) {
	var rec models.Shipping
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) CreateCheckpoint(ctx context.Context, rec *models.Checkpoint) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) CheckpointByID(ctx context.Context, id uint) (*models.Checkpoint, error) {
	var rec models.Checkpoint
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) ListCheckpoints(ctx context.Context, offset, limit int) (int64, []models.Checkpoint, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Checkpoint{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Checkpoint
	if err := r.DB.WithContext(ctx).Model(&models.Checkpoint{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) PatchCheckpoint(ctx context.Context, id uint, req transport.PatchCheckpointRequest) (*models.Checkpoint, error) {
	var rec models.Checkpoint
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	if req.ArrivalDate != nil {
		rec.ArrivalDate = *req.ArrivalDate
	}
	if req.TotalWeight != nil {
		rec.TotalWeight = *req.TotalWeight
	}
	if req.TotalPackages != nil {
		rec.TotalPackages = *req.TotalPackages
	}
	if err := r.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) DeleteCheckpoint(ctx context.Context, id uint) error {
	return deleteByID(r.DB.WithContext(ctx), &models.Checkpoint{}, id)
}

func (r *GormRepo) CreateExpedition(ctx context.Context, rec *models.Expedition) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ExpeditionByID(ctx context.Context, id uint) (*models.Expedition, error) {
	var rec models.Expedition
	if err := r.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepo) ListExpeditions(ctx context.Context, offset, limit int) (int64, []models.Expedition, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Expedition{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var items []models.Expedition
	if err := r.DB.WithContext(ctx).Model(&models.Expedition{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func deleteByID(tx *gorm.DB, model any, id uint) error {
	res := tx.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

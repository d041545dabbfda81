package repositories

import (
	"context"
	"time"

	"maintdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Machine Repository
// ============================================================

type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) Create(ctx context.Context, machine *models.Machine) error {
	return r.db.WithContext(ctx).Create(machine).Error
}

func (r *machineRepository) GetByID(ctx context.Context, id uint) (*models.Machine, error) {
	var machine models.Machine
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) List(ctx context.Context, offset, limit int) ([]*models.Machine, int64, error) {
	var machines []*models.Machine
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Machine{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&machines).Error
	if err != nil {
		return nil, 0, err
	}
	return machines, total, nil
}

func (r *machineRepository) Update(ctx context.Context, machine *models.Machine) error {
	return r.db.WithContext(ctx).Save(machine).Error
}

func (r *machineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Machine{}, id).Error
}

// ============================================================
// Part Repository
// ============================================================

type partRepository struct {
	db *gorm.DB
}

// NewPartRepository creates a new part repository
func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *partRepository) GetByID(ctx context.Context, id uint) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) List(ctx context.Context, offset, limit int) ([]*models.Part, int64, error) {
	var parts []*models.Part
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Part{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("part_no ASC").
		Offset(offset).
		Limit(limit).
		Find(&parts).Error
	if err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}

func (r *partRepository) Update(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *partRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Part{}, id).Error
}

// ============================================================
// Certificate Repository
// ============================================================

type certificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *certificateRepository) GetByID(ctx context.Context, id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Certificate, error) {
	var certs []*models.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expires_at ASC").
		Find(&certs).Error
	if err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *certificateRepository) ListExpiringBefore(ctx context.Context, deadline time.Time) ([]*models.Certificate, error) {
	var certs []*models.Certificate
	err := r.db.WithContext(ctx).
		Where("expires_at < ?", deadline).
		Order("expires_at ASC").
		Find(&certs).Error
	if err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *certificateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Certificate{}, id).Error
}

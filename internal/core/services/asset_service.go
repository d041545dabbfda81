package services

import (
	"context"
	"errors"
	"log"
	"time"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Asset errors
var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrDuplicateAsset = errors.New("asset already exists")
)

// AssetService manages master data: machines, spare parts and
// technician certificates.
type AssetService struct {
	machineRepo     repositories.MachineRepository
	partRepo        repositories.PartRepository
	certificateRepo repositories.CertificateRepository
	notify          *NotificationService
}

// NewAssetService creates a new asset service
func NewAssetService(
	machineRepo repositories.MachineRepository,
	partRepo repositories.PartRepository,
	certificateRepo repositories.CertificateRepository,
	notify *NotificationService,
) *AssetService {
	return &AssetService{
		machineRepo:     machineRepo,
		partRepo:        partRepo,
		certificateRepo: certificateRepo,
		notify:          notify,
	}
}

// ============================================================
// Machines
// ============================================================

// CreateMachineInput represents machine creation input
type CreateMachineInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location"`
	SerialNo string `json:"serial_no" validate:"required,max=50"`
}

// CreateMachine registers a machine
func (s *AssetService) CreateMachine(ctx context.Context, input *CreateMachineInput) (*models.Machine, error) {
	machine := &models.Machine{
		Name:     input.Name,
		Location: input.Location,
		SerialNo: input.SerialNo,
		IsActive: true,
	}

	if err := s.machineRepo.Create(ctx, machine); err != nil {
		return nil, err
	}

	log.Printf("✅ Machine registered: %s (%s)", machine.Name, machine.SerialNo)
	return machine, nil
}

// GetMachine returns a machine by ID
func (s *AssetService) GetMachine(ctx context.Context, id uint) (*models.Machine, error) {
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return machine, nil
}

// ListMachines returns machines with pagination
func (s *AssetService) ListMachines(ctx context.Context, offset, limit int) ([]*models.Machine, int64, error) {
	return s.machineRepo.List(ctx, offset, limit)
}

// UpdateMachineInput represents machine update input
type UpdateMachineInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}

// UpdateMachine updates machine fields
func (s *AssetService) UpdateMachine(ctx context.Context, id uint, input *UpdateMachineInput) (*models.Machine, error) {
	machine, err := s.GetMachine(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		machine.Name = input.Name
	}
	if input.Location != "" {
		machine.Location = input.Location
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}

	if err := s.machineRepo.Update(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// DeleteMachine soft-deletes a machine
func (s *AssetService) DeleteMachine(ctx context.Context, id uint) error {
	if _, err := s.GetMachine(ctx, id); err != nil {
		return err
	}
	return s.machineRepo.Delete(ctx, id)
}

// ============================================================
// Parts
// ============================================================

// CreatePartInput represents part creation input
type CreatePartInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	PartNo   string `json:"part_no" validate:"required,max=50"`
	StockQty int    `json:"stock_qty"`
	Unit     string `json:"unit"`
}

// CreatePart registers a spare part
func (s *AssetService) CreatePart(ctx context.Context, input *CreatePartInput) (*models.Part, error) {
	if input.StockQty < 0 {
		return nil, ErrInvalidQuantity
	}

	part := &models.Part{
		Name:     input.Name,
		PartNo:   input.PartNo,
		StockQty: input.StockQty,
		Unit:     input.Unit,
	}
	if part.Unit == "" {
		part.Unit = "pcs"
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}

	log.Printf("✅ Part registered: %s (%s), stock %d", part.Name, part.PartNo, part.StockQty)
	return part, nil
}

// GetPart returns a part by ID
func (s *AssetService) GetPart(ctx context.Context, id uint) (*models.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return part, nil
}

// ListParts returns parts with pagination
func (s *AssetService) ListParts(ctx context.Context, offset, limit int) ([]*models.Part, int64, error) {
	return s.partRepo.List(ctx, offset, limit)
}

// RestockPart adds quantity to a part's stock
func (s *AssetService) RestockPart(ctx context.Context, id uint, qty int) (*models.Part, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	part, err := s.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	part.StockQty += qty
	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}

	log.Printf("✅ Part %s restocked by %d (now %d)", part.PartNo, qty, part.StockQty)
	return part, nil
}

// DeletePart soft-deletes a part
func (s *AssetService) DeletePart(ctx context.Context, id uint) error {
	if _, err := s.GetPart(ctx, id); err != nil {
		return err
	}
	return s.partRepo.Delete(ctx, id)
}

// ============================================================
// Certificates
// ============================================================

// CreateCertificateInput represents certificate upload input
type CreateCertificateInput struct {
	UserID    uint      `json:"user_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
	FileRef   string    `json:"file_ref"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// CreateCertificate records a technician qualification
func (s *AssetService) CreateCertificate(ctx context.Context, input *CreateCertificateInput) (*models.Certificate, error) {
	cert := &models.Certificate{
		UserID:    input.UserID,
		Name:      input.Name,
		FileRef:   input.FileRef,
		IssuedAt:  input.IssuedAt,
		ExpiresAt: input.ExpiresAt,
	}

	if err := s.certificateRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	log.Printf("✅ Certificate recorded: %s for user %d", cert.Name, cert.UserID)
	return cert, nil
}

// ListCertificatesByUser returns a user's certificates
func (s *AssetService) ListCertificatesByUser(ctx context.Context, userID uint) ([]*models.Certificate, error) {
	return s.certificateRepo.ListByUser(ctx, userID)
}

// ListExpiringCertificates returns certificates expiring within the window
func (s *AssetService) ListExpiringCertificates(ctx context.Context, window time.Duration) ([]*models.Certificate, error) {
	return s.certificateRepo.ListExpiringBefore(ctx, time.Now().Add(window))
}

// DeleteCertificate removes a certificate record
func (s *AssetService) DeleteCertificate(ctx context.Context, id uint) error {
	if _, err := s.certificateRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssetNotFound
		}
		return err
	}
	return s.certificateRepo.Delete(ctx, id)
}

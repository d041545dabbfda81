package config

import (
	"log"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedMachines(); err != nil {
		log.Printf("⚠️ Machine seeder skipped: %v", err)
	}
	if err := s.seedParts(); err != nil {
		log.Printf("⚠️ Part seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@maintdesk.local",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("✅ Default admin user created (admin / admin123456)")
	return nil
}

// seedMachines seeds a starter machine list for development
func (s *Seeder) seedMachines() error {
	var count int64
	s.db.Model(&models.Machine{}).Count(&count)
	if count > 0 {
		return nil
	}

	machines := []models.Machine{
		{Name: "CNC Lathe 01", Location: "Hall A", SerialNo: "CNC-A-001", IsActive: true},
		{Name: "Hydraulic Press", Location: "Hall A", SerialNo: "HYD-A-002", IsActive: true},
		{Name: "Conveyor Line 3", Location: "Hall B", SerialNo: "CNV-B-003", IsActive: true},
	}

	if err := s.db.Create(&machines).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d machines", len(machines))
	return nil
}

// seedParts seeds a starter spare part inventory for development
func (s *Seeder) seedParts() error {
	var count int64
	s.db.Model(&models.Part{}).Count(&count)
	if count > 0 {
		return nil
	}

	parts := []models.Part{
		{Name: "Drive Belt", PartNo: "BLT-100", StockQty: 25, Unit: "pcs"},
		{Name: "Hydraulic Oil", PartNo: "OIL-220", StockQty: 40, Unit: "l"},
		{Name: "Bearing 6204", PartNo: "BRG-6204", StockQty: 60, Unit: "pcs"},
		{Name: "Control Fuse 10A", PartNo: "FUS-010", StockQty: 8, Unit: "pcs"},
	}

	if err := s.db.Create(&parts).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d parts", len(parts))
	return nil
}

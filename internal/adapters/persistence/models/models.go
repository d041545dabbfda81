package models

import (
	"time"

	"maintdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'employee'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Master Data Tables
// ============================================================

// Machine represents machines table
type Machine struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Location  string         `gorm:"size:100" json:"location"`
	SerialNo  string         `gorm:"uniqueIndex;size:50;not null" json:"serial_no"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Machine) TableName() string {
	return "machines"
}

// Part represents parts table (inventory)
type Part struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	PartNo    string         `gorm:"uniqueIndex;size:50;not null" json:"part_no"`
	StockQty  int            `gorm:"not null;default:0" json:"stock_qty"`
	Unit      string         `gorm:"size:20;default:'pcs'" json:"unit"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Part) TableName() string {
	return "parts"
}

// Certificate represents certificates table (technician qualifications)
type Certificate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	FileRef   string         `gorm:"size:255" json:"file_ref"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiresAt time.Time      `gorm:"index" json:"expires_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// ============================================================
// Workflow Tables
// ============================================================

// Issue represents issues table (employee problem reports)
type Issue struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	MachineID   uint           `gorm:"index;not null" json:"machine_id"`
	PhotoRef    string         `gorm:"size:255" json:"photo_ref,omitempty"`
	Status      string         `gorm:"size:20;index;default:'open'" json:"status"`
	CreatedBy   uint           `gorm:"index;not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Machine     Machine        `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	Reporter    User           `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Issue) TableName() string {
	return "issues"
}

// WorkOrder represents work_orders table (technician-facing unit of work)
type WorkOrder struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	IssueID            uint           `gorm:"uniqueIndex;not null" json:"issue_id"`
	AssignedTechnician uint           `gorm:"index;not null" json:"assigned_technician"`
	Priority           string         `gorm:"size:10;default:'medium'" json:"priority"`
	Status             string         `gorm:"size:20;index;default:'open'" json:"status"`
	ScheduledDate      time.Time      `gorm:"index" json:"scheduled_date"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Issue              Issue          `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	Technician         User           `gorm:"foreignKey:AssignedTechnician" json:"-"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

// PartRequest represents part_requests table
type PartRequest struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"` // uuid
	WorkOrderID uint              `gorm:"index;not null" json:"work_order_id"`
	RequestedBy uint              `gorm:"index;not null" json:"requested_by"`
	Status      string            `gorm:"size:20;index;default:'pending'" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	Items       []PartRequestItem `gorm:"foreignKey:PartRequestID" json:"items"`
	WorkOrder   WorkOrder         `gorm:"foreignKey:WorkOrderID" json:"-"`
}

func (PartRequest) TableName() string {
	return "part_requests"
}

// IsTerminal reports whether the request reached an immutable status.
func (pr *PartRequest) IsTerminal() bool {
	s := domain.Status(pr.Status)
	return s == domain.StatusFulfilled || s == domain.StatusRejected
}

// PartRequestItem represents part_request_items table
type PartRequestItem struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PartRequestID string `gorm:"index;size:36;not null" json:"part_request_id"`
	PartID        uint   `gorm:"index;not null" json:"part_id"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	Part          Part   `gorm:"foreignKey:PartID" json:"part,omitempty"`
}

func (PartRequestItem) TableName() string {
	return "part_request_items"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Machine{},
		&Part{},
		&Certificate{},
		&Issue{},
		&WorkOrder{},
		&PartRequest{},
		&PartRequestItem{},
	)
}

package services

import (
	"context"
	"time"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles per-role dashboard aggregations
type DashboardService struct {
	db              *gorm.DB
	issueRepo       repositories.IssueRepository
	workOrderRepo   repositories.WorkOrderRepository
	partRequestRepo repositories.PartRequestRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	db *gorm.DB,
	issueRepo repositories.IssueRepository,
	workOrderRepo repositories.WorkOrderRepository,
	partRequestRepo repositories.PartRequestRepository,
) *DashboardService {
	return &DashboardService{
		db:              db,
		issueRepo:       issueRepo,
		workOrderRepo:   workOrderRepo,
		partRequestRepo: partRequestRepo,
	}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalUsers      int64            `json:"total_users"`
	UsersByRole     map[string]int64 `json:"users_by_role"`
	IssuesByStatus  map[string]int64 `json:"issues_by_status"`
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	TotalMachines   int64            `json:"total_machines"`
	TotalParts      int64            `json:"total_parts"`
	PendingRequests int64            `json:"pending_part_requests"`
}

// GetAdminDashboard aggregates system-wide statistics
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{UsersByRole: make(map[string]int64)}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&data.TotalUsers).Error; err != nil {
		return nil, err
	}
	for _, role := range domain.Roles {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", string(role)).Count(&count).Error; err != nil {
			return nil, err
		}
		data.UsersByRole[string(role)] = count
	}

	var err error
	if data.IssuesByStatus, err = s.issueRepo.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if data.OrdersByStatus, err = s.workOrderRepo.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Machine{}).Count(&data.TotalMachines).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Part{}).Count(&data.TotalParts).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.PartRequest{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&data.PendingRequests).Error; err != nil {
		return nil, err
	}
	return data, nil
}

// EmployeeDashboardData represents employee dashboard data
type EmployeeDashboardData struct {
	MyIssuesByStatus map[string]int64 `json:"my_issues_by_status"`
	RecentIssues     []*models.Issue  `json:"recent_issues"`
}

// GetEmployeeDashboard aggregates the reporting employee's view
func (s *DashboardService) GetEmployeeDashboard(ctx context.Context, userID uint) (*EmployeeDashboardData, error) {
	data := &EmployeeDashboardData{MyIssuesByStatus: make(map[string]int64)}

	for _, status := range []domain.Status{domain.StatusOpen, domain.StatusInProgress, domain.StatusResolved} {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Issue{}).
			Where("created_by = ? AND status = ?", userID, string(status)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		data.MyIssuesByStatus[string(status)] = count
	}

	issues, _, err := s.issueRepo.List(ctx, repositories.IssueFilter{CreatedBy: userID}, 0, 5)
	if err != nil {
		return nil, err
	}
	data.RecentIssues = issues
	return data, nil
}

// TechnicianDashboardData represents technician dashboard data
type TechnicianDashboardData struct {
	MyOrdersByStatus map[string]int64    `json:"my_orders_by_status"`
	UpcomingOrders   []*models.WorkOrder `json:"upcoming_orders"`
}

// GetTechnicianDashboard aggregates the technician's work queue
func (s *DashboardService) GetTechnicianDashboard(ctx context.Context, userID uint) (*TechnicianDashboardData, error) {
	data := &TechnicianDashboardData{MyOrdersByStatus: make(map[string]int64)}

	for _, status := range []domain.Status{domain.StatusOpen, domain.StatusInProgress, domain.StatusResolved} {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.WorkOrder{}).
			Where("assigned_technician = ? AND status = ?", userID, string(status)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		data.MyOrdersByStatus[string(status)] = count
	}

	orders, _, err := s.workOrderRepo.List(ctx,
		repositories.WorkOrderFilter{Technician: userID, Status: domain.StatusOpen}, 0, 5)
	if err != nil {
		return nil, err
	}
	data.UpcomingOrders = orders
	return data, nil
}

// ManagerDashboardData represents manager dashboard data
type ManagerDashboardData struct {
	IssuesByStatus  map[string]int64    `json:"issues_by_status"`
	OrdersByStatus  map[string]int64    `json:"orders_by_status"`
	OverdueOrders   []*models.WorkOrder `json:"overdue_orders"`
	PendingRequests int64               `json:"pending_part_requests"`
}

// GetManagerDashboard aggregates the workflow health view
func (s *DashboardService) GetManagerDashboard(ctx context.Context) (*ManagerDashboardData, error) {
	data := &ManagerDashboardData{}

	var err error
	if data.IssuesByStatus, err = s.issueRepo.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if data.OrdersByStatus, err = s.workOrderRepo.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if data.OverdueOrders, err = s.workOrderRepo.ListOverdue(ctx, time.Now()); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.PartRequest{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&data.PendingRequests).Error; err != nil {
		return nil, err
	}
	return data, nil
}

// LogisticsDashboardData represents logistics dashboard data
type LogisticsDashboardData struct {
	RequestsByStatus map[string]int64 `json:"requests_by_status"`
	LowStockParts    []*models.Part   `json:"low_stock_parts"`
}

// LowStockThreshold marks parts that need reordering
const LowStockThreshold = 5

// GetLogisticsDashboard aggregates the inventory view
func (s *DashboardService) GetLogisticsDashboard(ctx context.Context) (*LogisticsDashboardData, error) {
	data := &LogisticsDashboardData{RequestsByStatus: make(map[string]int64)}

	for _, status := range []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusFulfilled, domain.StatusRejected} {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.PartRequest{}).
			Where("status = ?", string(status)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		data.RequestsByStatus[string(status)] = count
	}

	err := s.db.WithContext(ctx).
		Where("stock_qty < ?", LowStockThreshold).
		Order("stock_qty ASC").
		Find(&data.LowStockParts).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}

package services

import (
	"context"
	"log"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/pkg/events"
)

// NotificationService publishes workflow events for downstream
// consumers (mail, chat, the UI's toast feed). Publishing is best
// effort: a broker hiccup is logged, never surfaced to the actor whose
// mutation already committed.
type NotificationService struct {
	publisher events.Publisher
}

// NewNotificationService creates a new notification service
func NewNotificationService(publisher events.Publisher) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotificationService{publisher: publisher}
}

func (s *NotificationService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("⚠️ publish %s failed: %v", routingKey, err)
	}
}

// IssueReported announces a freshly filed issue
func (s *NotificationService) IssueReported(ctx context.Context, issue *models.Issue) {
	s.publish(ctx, "issue.reported", issue)
}

// IssueResolved announces a resolved issue
func (s *NotificationService) IssueResolved(ctx context.Context, issue *models.Issue) {
	s.publish(ctx, "issue.resolved", issue)
}

// WorkOrderAssigned announces a new work order to its technician
func (s *NotificationService) WorkOrderAssigned(ctx context.Context, workOrder *models.WorkOrder) {
	s.publish(ctx, "work_order.assigned", workOrder)
}

// WorkOrderResolved announces a completed work order
func (s *NotificationService) WorkOrderResolved(ctx context.Context, workOrder *models.WorkOrder) {
	s.publish(ctx, "work_order.resolved", workOrder)
}

// WorkOrderOverdue reminds about a work order past its scheduled date
func (s *NotificationService) WorkOrderOverdue(ctx context.Context, workOrder *models.WorkOrder) {
	s.publish(ctx, "work_order.overdue", workOrder)
}

// PartRequestFiled announces a new part request to logistics
func (s *NotificationService) PartRequestFiled(ctx context.Context, request *models.PartRequest) {
	s.publish(ctx, "part_request.filed", request)
}

// PartRequestApproved announces an approved part request
func (s *NotificationService) PartRequestApproved(ctx context.Context, request *models.PartRequest) {
	s.publish(ctx, "part_request.approved", request)
}

// PartRequestRejected announces a rejected part request
func (s *NotificationService) PartRequestRejected(ctx context.Context, request *models.PartRequest) {
	s.publish(ctx, "part_request.rejected", request)
}

// PartRequestFulfilled announces a fulfilled part request
func (s *NotificationService) PartRequestFulfilled(ctx context.Context, request *models.PartRequest) {
	s.publish(ctx, "part_request.fulfilled", request)
}

// CertificateExpiring reminds about a certificate nearing expiry
func (s *NotificationService) CertificateExpiring(ctx context.Context, cert *models.Certificate) {
	s.publish(ctx, "certificate.expiring", cert)
}

package services

import (
	"context"
	"log"
	"time"

	"maintdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CertificateExpiryWindow is how far ahead expiring certificates are
// flagged.
const CertificateExpiryWindow = 30 * 24 * time.Hour

// CronService runs the daily maintenance reminders: overdue work
// orders and certificates nearing expiry.
type CronService struct {
	workOrderRepo   repositories.WorkOrderRepository
	certificateRepo repositories.CertificateRepository
	refreshRepo     repositories.RefreshTokenRepository
	notify          *NotificationService
	cron            *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	workOrderRepo repositories.WorkOrderRepository,
	certificateRepo repositories.CertificateRepository,
	refreshRepo repositories.RefreshTokenRepository,
	notify *NotificationService,
) *CronService {
	return &CronService{
		workOrderRepo:   workOrderRepo,
		certificateRepo: certificateRepo,
		refreshRepo:     refreshRepo,
		notify:          notify,
		cron:            cron.New(),
	}
}

// Start schedules the daily jobs (08:30 reminders, 03:00 token sweep)
func (s *CronService) Start() {
	s.cron.AddFunc("30 8 * * *", s.runReminders)
	s.cron.AddFunc("0 3 * * *", s.cleanupExpiredTokens)
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// runReminders publishes reminder events for overdue work orders and
// expiring certificates
func (s *CronService) runReminders() {
	ctx := context.Background()

	overdue, err := s.workOrderRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("⚠️ overdue scan failed: %v", err)
	} else {
		for _, workOrder := range overdue {
			s.notify.WorkOrderOverdue(ctx, workOrder)
		}
		if len(overdue) > 0 {
			log.Printf("⏰ %d overdue work orders flagged", len(overdue))
		}
	}

	expiring, err := s.certificateRepo.ListExpiringBefore(ctx, time.Now().Add(CertificateExpiryWindow))
	if err != nil {
		log.Printf("⚠️ certificate scan failed: %v", err)
		return
	}
	for _, cert := range expiring {
		s.notify.CertificateExpiring(ctx, cert)
	}
	if len(expiring) > 0 {
		log.Printf("⏰ %d expiring certificates flagged", len(expiring))
	}
}

// cleanupExpiredTokens hard-deletes long-expired refresh tokens
func (s *CronService) cleanupExpiredTokens() {
	if err := s.refreshRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️ refresh token cleanup failed: %v", err)
	}
}

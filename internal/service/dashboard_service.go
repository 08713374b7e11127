package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
)

const (
	dashboardCacheKey = "studiodesk:dashboard:summary"
	dashboardCacheTTL = time.Minute
)

// DashboardSummary is the aggregate panel on the landing screen.
type DashboardSummary struct {
	ActiveContracts     int   `json:"active_contracts"`
	OutstandingCents    int64 `json:"outstanding_cents"`
	OverdueCents        int64 `json:"overdue_cents"`
	StagesDueThisWeek   int   `json:"stages_due_this_week"`
	UnreadNotifications int   `json:"unread_notifications"`
}

// DashboardService computes the summary and caches it in redis; every
// mutating service invalidates the cache.
type DashboardService struct {
	contractRepo     *repository.ContractRepository
	installmentRepo  *repository.InstallmentRepository
	scheduleRepo     *repository.ScheduleRepository
	notificationRepo *repository.NotificationRepository
	rdb              *redis.Client
	logger           *zap.Logger
}

func NewDashboardService(
	contractRepo *repository.ContractRepository,
	installmentRepo *repository.InstallmentRepository,
	scheduleRepo *repository.ScheduleRepository,
	notificationRepo *repository.NotificationRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		contractRepo:     contractRepo,
		installmentRepo:  installmentRepo,
		scheduleRepo:     scheduleRepo,
		notificationRepo: notificationRepo,
		rdb:              rdb,
		logger:           logger,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var summary DashboardSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache dashboard summary", zap.Error(err))
			}
		}
	}
	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardSummary, error) {
	active, err := s.contractRepo.CountByStatus(ctx, model.ContractActive)
	if err != nil {
		return nil, err
	}

	pending, err := s.installmentRepo.SumCentsByStatus(ctx, model.PaymentPending)
	if err != nil {
		return nil, err
	}
	overdue, err := s.installmentRepo.SumCentsByStatus(ctx, model.PaymentOverdue)
	if err != nil {
		return nil, err
	}

	today := model.Today()
	dueThisWeek, err := s.scheduleRepo.StagesDueBetween(ctx, today, today.AddDays(7))
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.ListUnread(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		ActiveContracts:     active,
		OutstandingCents:    pending + overdue,
		OverdueCents:        overdue,
		StagesDueThisWeek:   dueThisWeek,
		UnreadNotifications: len(unread),
	}, nil
}

// Invalidate drops the cached summary. Errors are logged, not
// propagated.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}

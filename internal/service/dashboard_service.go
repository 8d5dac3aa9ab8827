package service

import (
	"time"

	"honesty-store-backend/internal/repository"
)

type DashboardService interface {
	GetDailyMovement(days int) ([]repository.DailyMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	recordRepo        repository.StockRecordRepository
	lowStockThreshold int
}

func NewDashboardService(recordRepo repository.StockRecordRepository, lowStockThreshold int) DashboardService {
	return &dashboardService{recordRepo: recordRepo, lowStockThreshold: lowStockThreshold}
}

func (s *dashboardService) GetDailyMovement(days int) ([]repository.DailyMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.recordRepo.GetDailyMovement(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.recordRepo.GetDashboardStats(s.lowStockThreshold, time.Now())
}

package service

import (
	"context"
	"fmt"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

type dashboardService struct {
	userRepo repository.IUserRepository
	testRepo repository.ITestRepository
	runRepo  repository.IRunRepository
}

func NewDashboardService(userRepo repository.IUserRepository, testRepo repository.ITestRepository, runRepo repository.IRunRepository) IDashboardService {
	return &dashboardService{
		userRepo: userRepo,
		testRepo: testRepo,
		runRepo:  runRepo,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	activeUsers, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting active users: %w", err)
	}

	totalTests, err := s.testRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting tests: %w", err)
	}

	totalRuns, err := s.runRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting runs: %w", err)
	}

	passedRuns, err := s.runRepo.CountByStatus(ctx, model.RunStatusPassed)
	if err != nil {
		return nil, fmt.Errorf("counting passed runs: %w", err)
	}

	avgRate, err := s.runRepo.AverageSuccessRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("averaging success rate: %w", err)
	}

	return &model.DashboardStats{
		ActiveUsers:        activeUsers,
		TotalTests:         totalTests,
		TotalRuns:          totalRuns,
		PassedRuns:         passedRuns,
		AverageSuccessRate: avgRate,
	}, nil
}

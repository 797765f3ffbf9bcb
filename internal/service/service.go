package service

import (
	"context"

	"github.com/qaportal-net/qaportal-be/internal/config"
	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

type IAuthService interface {
	Login(ctx context.Context, req *model.DTOLoginRequest) (*model.DTOLoginResponse, error)
	Register(ctx context.Context, req *model.DTORegisterRequest) (int, error)
	Logout(ctx context.Context, userID int) error
	ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error)
}

type ITestService interface {
	Create(ctx context.Context, req *model.DTOCreateTestRequest) (int, error)
	List(ctx context.Context, page, limit int) ([]*model.APITest, model.Pagination, error)
	Delete(ctx context.Context, id, requestingUserID int) (int, error)
}

type IExecutorService interface {
	Execute(ctx context.Context, testID, startedBy int) (*model.DTORunTestResponse, error)
}

type IRunService interface {
	List(ctx context.Context, page, limit int) ([]*model.RunSummary, model.Pagination, error)
	Detail(ctx context.Context, runID int) (*model.RunDetail, []*model.PerformanceRun, error)
	Delete(ctx context.Context, runID, requestingUserID int) (int, error)
}

type IPerformanceService interface {
	Run(ctx context.Context, req *model.DTOPerformanceRunRequest) (int, *model.PerformanceResults, error)
}

type IDashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type INewsletterService interface {
	Subscribe(ctx context.Context, email, source string) error
}

// IService aggregates the individual service interfaces for wiring into
// the HTTP layer.
type IService interface {
	Auth() IAuthService
	Tests() ITestService
	Executor() IExecutorService
	Runs() IRunService
	Performance() IPerformanceService
	Dashboard() IDashboardService
	Newsletter() INewsletterService
}

type Service struct {
	auth        IAuthService
	tests       ITestService
	executor    IExecutorService
	runs        IRunService
	performance IPerformanceService
	dashboard   IDashboardService
	newsletter  INewsletterService
}

func NewService(repo repository.IRepository, cfg *config.Config) *Service {
	return &Service{
		auth:        NewAuthService(repo.User(), repo.Audit(), repo.Newsletter(), cfg.JWT),
		tests:       NewTestService(repo.Test(), repo.Audit()),
		executor:    NewExecutorService(repo.Test(), repo.Run(), cfg.Executor.RequestTimeout),
		runs:        NewRunService(repo.Run(), repo.Test(), repo.Audit()),
		performance: NewPerformanceService(repo.Run(), NewRandomStatsGenerator()),
		dashboard:   NewDashboardService(repo.User(), repo.Test(), repo.Run()),
		newsletter:  NewNewsletterService(repo.Newsletter()),
	}
}

func (s *Service) Auth() IAuthService               { return s.auth }
func (s *Service) Tests() ITestService              { return s.tests }
func (s *Service) Executor() IExecutorService       { return s.executor }
func (s *Service) Runs() IRunService                { return s.runs }
func (s *Service) Performance() IPerformanceService { return s.performance }
func (s *Service) Dashboard() IDashboardService     { return s.dashboard }
func (s *Service) Newsletter() INewsletterService   { return s.newsletter }

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePageQuery applies the list-endpoint input policy: positive
// page and limit are required, limit is clamped to a sane maximum.
func normalizePageQuery(page, limit int) (int, int, error) {
	if page <= 0 || limit <= 0 {
		return 0, 0, ErrValidation
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, nil
}

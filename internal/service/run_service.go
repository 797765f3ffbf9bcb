package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

type runService struct {
	runRepo   repository.IRunRepository
	testRepo  repository.ITestRepository
	auditRepo repository.IAuditRepository
}

func NewRunService(runRepo repository.IRunRepository, testRepo repository.ITestRepository, auditRepo repository.IAuditRepository) IRunService {
	return &runService{
		runRepo:   runRepo,
		testRepo:  testRepo,
		auditRepo: auditRepo,
	}
}

func (s *runService) List(ctx context.Context, page, limit int) ([]*model.RunSummary, model.Pagination, error) {
	page, limit, err := normalizePageQuery(page, limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	total, err := s.runRepo.Count(ctx)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("counting runs: %w", err)
	}

	runs, err := s.runRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("listing runs: %w", err)
	}
	if runs == nil {
		runs = []*model.RunSummary{}
	}
	for _, run := range runs {
		if run.TestName == "" {
			run.TestName = "Unknown Test"
		}
	}

	return runs, model.NewPagination(page, limit, total), nil
}

// Detail resolves a run against whichever definition it references and
// applies caller-visible defaults for every nullable field, so the UI
// never has to deal with missing values.
func (s *runService) Detail(ctx context.Context, runID int) (*model.RunDetail, []*model.PerformanceRun, error) {
	summary, err := s.runRepo.GetSummaryByID(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up run %d: %w", runID, err)
	}
	if summary == nil {
		return nil, nil, ErrNotFound
	}

	detail := model.RunDetail{RunSummary: *summary}

	if summary.APITestID != nil {
		test, err := s.testRepo.GetByID(ctx, *summary.APITestID)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving test for run %d: %w", runID, err)
		}
		if test != nil {
			detail.TestName = test.Name
			detail.EndpointURL = test.EndpointURL
			detail.HTTPMethod = test.HTTPMethod
			detail.RequestHeaders = test.RequestHeaders
			detail.RequestBody = test.RequestBody
		}
	} else if summary.SuiteID != nil {
		name, err := s.runRepo.GetSuiteName(ctx, *summary.SuiteID)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving suite for run %d: %w", runID, err)
		}
		if name != "" {
			detail.TestName = name
		}
	}

	if detail.TestName == "" {
		detail.TestName = "Unknown Test"
	}
	if detail.FinishedAt != nil {
		detail.FinishedAtText = detail.FinishedAt.Format(time.RFC3339)
	} else {
		detail.FinishedAtText = "Not finished"
	}

	metrics, err := s.runRepo.ListPerformanceRuns(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching metrics for run %d: %w", runID, err)
	}
	if metrics == nil {
		metrics = []*model.PerformanceRun{}
	}

	return &detail, metrics, nil
}

func (s *runService) Delete(ctx context.Context, runID, requestingUserID int) (int, error) {
	run, err := s.runRepo.GetSummaryByID(ctx, runID)
	if err != nil {
		return 0, fmt.Errorf("looking up run %d: %w", runID, err)
	}
	if run == nil {
		return 0, ErrNotFound
	}

	if err := s.runRepo.DeleteCascade(ctx, runID); err != nil {
		return 0, err
	}

	if requestingUserID > 0 {
		details, _ := json.Marshal(map[string]any{"name": run.Name})
		if err := s.auditRepo.Insert(ctx, &model.AuditLog{
			UserID:       requestingUserID,
			Action:       "delete",
			ResourceType: "test_run",
			Details:      string(details),
		}); err != nil {
			return 0, fmt.Errorf("writing audit log: %w", err)
		}
	}

	return runID, nil
}

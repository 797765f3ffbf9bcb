package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

type testService struct {
	testRepo  repository.ITestRepository
	auditRepo repository.IAuditRepository
}

func NewTestService(testRepo repository.ITestRepository, auditRepo repository.IAuditRepository) ITestService {
	return &testService{
		testRepo:  testRepo,
		auditRepo: auditRepo,
	}
}

func (s *testService) Create(ctx context.Context, req *model.DTOCreateTestRequest) (int, error) {
	headers := req.RequestHeaders
	if headers == "" {
		headers = "{}"
	} else if !json.Valid([]byte(headers)) {
		return 0, fmt.Errorf("%w: request_headers must be a JSON object", ErrValidation)
	}

	tags := req.Tags
	if tags == "" {
		tags = "[]"
	}

	test := model.APITest{
		OwnerUserID:    req.OwnerUserID,
		Name:           req.Name,
		Description:    req.Description,
		EndpointURL:    req.EndpointURL,
		HTTPMethod:     req.HTTPMethod,
		RequestHeaders: headers,
		RequestBody:    req.RequestBody,
		Tags:           tags,
	}

	testID, err := s.testRepo.Create(ctx, &test)
	if err != nil {
		return 0, fmt.Errorf("failed to create test: %w", err)
	}
	return testID, nil
}

func (s *testService) List(ctx context.Context, page, limit int) ([]*model.APITest, model.Pagination, error) {
	page, limit, err := normalizePageQuery(page, limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	total, err := s.testRepo.Count(ctx)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("counting tests: %w", err)
	}

	tests, err := s.testRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("listing tests: %w", err)
	}
	if tests == nil {
		tests = []*model.APITest{}
	}

	return tests, model.NewPagination(page, limit, total), nil
}

// Delete removes the definition and its dependent runs. The requesting
// user id is recorded in the audit trail; ownership is not enforced in
// this portal.
func (s *testService) Delete(ctx context.Context, id, requestingUserID int) (int, error) {
	test, err := s.testRepo.GetByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("looking up test %d: %w", id, err)
	}
	if test == nil {
		return 0, ErrNotFound
	}

	if err := s.testRepo.DeleteCascade(ctx, id); err != nil {
		return 0, err
	}

	if requestingUserID > 0 {
		details, _ := json.Marshal(map[string]any{"name": test.Name})
		if err := s.auditRepo.Insert(ctx, &model.AuditLog{
			UserID:       requestingUserID,
			Action:       "delete",
			ResourceType: "api_test",
			Details:      string(details),
		}); err != nil {
			return 0, fmt.Errorf("writing audit log: %w", err)
		}
	}

	return id, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qaportal-net/qaportal-be/internal/metric"
	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

const (
	// maxResponseSnippet bounds the response body stored in a response
	// log row.
	maxResponseSnippet = 64 * 1024

	defaultRequestTimeout = 30 * time.Second
)

// bodyMethods are the HTTP methods a definition body is attached to.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

type executorService struct {
	testRepo   repository.ITestRepository
	runRepo    repository.IRunRepository
	httpClient *http.Client
	timeout    time.Duration
}

func NewExecutorService(testRepo repository.ITestRepository, runRepo repository.IRunRepository, timeout time.Duration) IExecutorService {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &executorService{
		testRepo:   testRepo,
		runRepo:    runRepo,
		httpClient: &http.Client{Transport: transport},
		timeout:    timeout,
	}
}

// Execute runs a saved definition once, synchronously: it creates a
// running test_runs row, issues the single outbound call and writes the
// terminal state. Outbound failures (bad URL, network error, timeout)
// mark the run failed and are reported in the result, never as a server
// error. A crash between the insert and the terminal update leaves the
// run in `running`; the two statements are deliberately not wrapped in
// a transaction spanning the outbound call.
func (s *executorService) Execute(ctx context.Context, testID, startedBy int) (*model.DTORunTestResponse, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("looking up test %d: %w", testID, err)
	}
	if test == nil {
		return nil, ErrNotFound
	}

	run := model.TestRun{
		APITestID: &test.ID,
		StartedBy: startedBy,
		Name:      fmt.Sprintf("%s - Run %d", test.Name, time.Now().UnixMilli()),
		Reference: uuid.NewString(),
		Status:    model.RunStatusRunning,
	}

	runID, err := s.runRepo.Create(ctx, &run)
	if err != nil {
		return nil, fmt.Errorf("creating test run: %w", err)
	}
	run.ID = runID

	outcome, buildOrCallErr := s.probe(ctx, test)
	if buildOrCallErr != nil {
		if err := s.finishRun(ctx, &run, false, outcome.elapsedMs); err != nil {
			return nil, err
		}
		metric.TestRunsTotal.WithLabelValues(string(model.RunStatusFailed)).Inc()
		return &model.DTORunTestResponse{
			Message:        "Test execution failed",
			RunID:          runID,
			Status:         model.RunStatusFailed,
			ResponseTimeMs: outcome.elapsedMs,
			Error:          buildOrCallErr.Error(),
		}, nil
	}

	entry := model.ResponseLog{
		TestRunID:      runID,
		RequestIndex:   1,
		RequestMethod:  test.HTTPMethod,
		RequestURL:     test.EndpointURL,
		ResponseStatus: outcome.status,
		ResponseTimeMs: outcome.elapsedMs,
		IsSuccess:      outcome.success,
		ResponseBody:   outcome.body,
	}
	if err := s.runRepo.InsertResponseLog(ctx, &entry); err != nil {
		return nil, fmt.Errorf("writing response log: %w", err)
	}

	if err := s.finishRun(ctx, &run, outcome.success, outcome.elapsedMs); err != nil {
		return nil, err
	}

	metric.TestRunsTotal.WithLabelValues(string(run.Status)).Inc()

	return &model.DTORunTestResponse{
		Message:        "Test executed successfully",
		RunID:          runID,
		Status:         run.Status,
		ResponseTimeMs: outcome.elapsedMs,
		ResponseStatus: outcome.status,
	}, nil
}

type probeOutcome struct {
	status    int
	body      string
	elapsedMs int64
	success   bool
}

// probe issues the definition's single outbound call. Success is an
// HTTP status in the 200-299 range; there are no retries.
func (s *executorService) probe(ctx context.Context, test *model.APITest) (probeOutcome, error) {
	startTime := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	httpRequest, err := buildOutboundRequest(reqCtx, test)
	if err != nil {
		return probeOutcome{elapsedMs: time.Since(startTime).Milliseconds()}, err
	}

	httpResponse, err := s.httpClient.Do(httpRequest)
	elapsed := time.Since(startTime)
	metric.OutboundRequestDuration.Observe(elapsed.Seconds())
	if err != nil {
		return probeOutcome{elapsedMs: elapsed.Milliseconds()},
			fmt.Errorf("failed to execute request to target server: %w", err)
	}
	defer httpResponse.Body.Close()

	limitedReader := &io.LimitedReader{R: httpResponse.Body, N: maxResponseSnippet}
	bodyBytes, readErr := io.ReadAll(limitedReader)
	body := string(bodyBytes)
	if readErr != nil {
		body = fmt.Sprintf("failed to read response body: %v", readErr)
	}

	return probeOutcome{
		status:    httpResponse.StatusCode,
		body:      body,
		elapsedMs: elapsed.Milliseconds(),
		success:   httpResponse.StatusCode >= 200 && httpResponse.StatusCode <= 299,
	}, nil
}

func buildOutboundRequest(ctx context.Context, test *model.APITest) (*http.Request, error) {
	parsedURL, err := url.Parse(test.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: %s. Only 'http' and 'https' are allowed", parsedURL.Scheme)
	}

	var definitionHeaders map[string]string
	if test.RequestHeaders != "" {
		if err := json.Unmarshal([]byte(test.RequestHeaders), &definitionHeaders); err != nil {
			return nil, fmt.Errorf("failed to parse request headers: %w", err)
		}
	}

	var bodyReader io.Reader
	if test.RequestBody != "" && bodyMethods[test.HTTPMethod] {
		bodyReader = strings.NewReader(test.RequestBody)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, test.HTTPMethod, parsedURL.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	// Definition headers override the default content type.
	httpRequest.Header.Set("Content-Type", "application/json")
	for key, value := range definitionHeaders {
		httpRequest.Header.Set(key, value)
	}

	return httpRequest, nil
}

func (s *executorService) finishRun(ctx context.Context, run *model.TestRun, success bool, elapsedMs int64) error {
	run.DurationMs = elapsedMs
	run.TotalRequests = 1
	if success {
		run.Status = model.RunStatusPassed
		run.SuccessCount = 1
		run.SuccessRate = 100.0
	} else {
		run.Status = model.RunStatusFailed
		run.FailedCount = 1
		run.SuccessRate = 0.0
	}

	if err := s.runRepo.Finish(ctx, run); err != nil {
		return fmt.Errorf("updating test run %d: %w", run.ID, err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/qaportal-net/qaportal-be/internal/metric"
	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
)

// StatsGenerator synthesizes load-test statistics. The portal does not
// generate real load; the default implementation is randomized and tests
// inject a deterministic one.
type StatsGenerator interface {
	Generate(virtualUsers, durationSeconds int) model.PerformanceResults
}

type randomStatsGenerator struct {
	rnd *rand.Rand
}

func NewRandomStatsGenerator() StatsGenerator {
	return &randomStatsGenerator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *randomStatsGenerator) Generate(virtualUsers, durationSeconds int) model.PerformanceResults {
	requestsPerSec := float64(virtualUsers) * (g.rnd.Float64()*2 + 0.5)
	return model.PerformanceResults{
		AverageMs:      g.rnd.Float64()*500 + 100,
		MinMs:          g.rnd.Float64()*100 + 50,
		MaxMs:          g.rnd.Float64()*1000 + 500,
		P95Ms:          g.rnd.Float64()*800 + 200,
		RequestsPerSec: requestsPerSec,
		TotalRequests:  int(float64(virtualUsers) * float64(durationSeconds) * (g.rnd.Float64()*2 + 0.5)),
		ErrorRate:      g.rnd.Float64() * 10,
	}
}

type performanceService struct {
	runRepo repository.IRunRepository
	stats   StatsGenerator
}

func NewPerformanceService(runRepo repository.IRunRepository, stats StatsGenerator) IPerformanceService {
	return &performanceService{
		runRepo: runRepo,
		stats:   stats,
	}
}

// Run creates a passed run with synthesized statistics. There is no real
// failure path: the simulated error rate is folded into the run counters
// instead.
func (s *performanceService) Run(ctx context.Context, req *model.DTOPerformanceRunRequest) (int, *model.PerformanceResults, error) {
	environment, err := json.Marshal(map[string]string{"endpoint_url": req.EndpointURL})
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling run environment: %w", err)
	}

	run := model.TestRun{
		StartedBy:   req.StartedBy,
		Name:        fmt.Sprintf("Performance Test - %d users", req.VirtualUsers),
		Reference:   uuid.NewString(),
		Status:      model.RunStatusRunning,
		Environment: string(environment),
	}

	runID, err := s.runRepo.Create(ctx, &run)
	if err != nil {
		return 0, nil, fmt.Errorf("creating performance run: %w", err)
	}
	run.ID = runID

	results := s.stats.Generate(req.VirtualUsers, req.TestDurationSeconds)

	if err := s.runRepo.InsertPerformanceRun(ctx, &model.PerformanceRun{
		TestRunID:           runID,
		VirtualUsers:        req.VirtualUsers,
		TestDurationSeconds: req.TestDurationSeconds,
		AverageMs:           results.AverageMs,
		MinMs:               results.MinMs,
		MaxMs:               results.MaxMs,
		P95Ms:               results.P95Ms,
		RequestsPerSec:      results.RequestsPerSec,
		TotalRequests:       results.TotalRequests,
		ErrorRate:           results.ErrorRate,
	}); err != nil {
		return 0, nil, fmt.Errorf("saving performance stats: %w", err)
	}

	// Fold the error rate into consistent counters: failed is rounded
	// from the rate, success takes the remainder, and the stored rate is
	// recomputed from the counts so they always add up.
	total := results.TotalRequests
	failed := int(math.Round(float64(total) * results.ErrorRate / 100))
	if failed > total {
		failed = total
	}
	success := total - failed

	run.Status = model.RunStatusPassed
	run.DurationMs = int64(req.TestDurationSeconds) * 1000
	run.TotalRequests = total
	run.SuccessCount = success
	run.FailedCount = failed
	if total > 0 {
		run.SuccessRate = float64(success) / float64(total) * 100
	}

	if err := s.runRepo.Finish(ctx, &run); err != nil {
		return 0, nil, fmt.Errorf("updating performance run %d: %w", runID, err)
	}

	metric.PerformanceRunsTotal.Inc()

	return runID, &results, nil
}

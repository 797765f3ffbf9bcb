package service

import (
	"context"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

// --- in-memory repository fakes shared by the service tests ---

type fakeUserRepo struct {
	users map[string]*model.User

	createdID   int
	created     []*model.User
	exists      bool
	lastLoginOf []int
	activeCount int
	err         error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, user)
	return f.createdID, nil
}

func (f *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[login], nil
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return f.exists, f.err
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int) error {
	f.lastLoginOf = append(f.lastLoginOf, id)
	return f.err
}

func (f *fakeUserRepo) CountActive(ctx context.Context) (int, error) {
	return f.activeCount, f.err
}

type fakeTestRepo struct {
	tests map[int]*model.APITest

	createdID int
	created   []*model.APITest
	listOut   []*model.APITest
	total     int
	deleted   []int
	err       error
}

func (f *fakeTestRepo) Create(ctx context.Context, test *model.APITest) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, test)
	return f.createdID, nil
}

func (f *fakeTestRepo) GetByID(ctx context.Context, id int) (*model.APITest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tests[id], nil
}

func (f *fakeTestRepo) List(ctx context.Context, limit, offset int) ([]*model.APITest, error) {
	return f.listOut, f.err
}

func (f *fakeTestRepo) Count(ctx context.Context) (int, error) {
	return f.total, f.err
}

func (f *fakeTestRepo) DeleteCascade(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRunRepo struct {
	nextID    int
	created   []*model.TestRun
	finished  []*model.TestRun
	summaries map[int]*model.RunSummary

	listOut       []*model.RunSummary
	total         int
	statusCounts  map[model.RunStatus]int
	avgRate       float64
	deleted       []int
	responseLogs  []*model.ResponseLog
	perfInserted  []*model.PerformanceRun
	perfOut       []*model.PerformanceRun
	suiteNames    map[int]string
	err           error
	finishErr     error
	responseErr   error
	perfInsertErr error
}

func (f *fakeRunRepo) Create(ctx context.Context, run *model.TestRun) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.created = append(f.created, run)
	return f.nextID, nil
}

func (f *fakeRunRepo) Finish(ctx context.Context, run *model.TestRun) error {
	if f.finishErr != nil {
		return f.finishErr
	}
	snapshot := *run
	f.finished = append(f.finished, &snapshot)
	return nil
}

func (f *fakeRunRepo) GetSummaryByID(ctx context.Context, id int) (*model.RunSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries[id], nil
}

func (f *fakeRunRepo) List(ctx context.Context, limit, offset int) ([]*model.RunSummary, error) {
	return f.listOut, f.err
}

func (f *fakeRunRepo) Count(ctx context.Context) (int, error) {
	return f.total, f.err
}

func (f *fakeRunRepo) CountByStatus(ctx context.Context, status model.RunStatus) (int, error) {
	return f.statusCounts[status], f.err
}

func (f *fakeRunRepo) AverageSuccessRate(ctx context.Context) (float64, error) {
	return f.avgRate, f.err
}

func (f *fakeRunRepo) DeleteCascade(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRunRepo) InsertResponseLog(ctx context.Context, entry *model.ResponseLog) error {
	if f.responseErr != nil {
		return f.responseErr
	}
	f.responseLogs = append(f.responseLogs, entry)
	return nil
}

func (f *fakeRunRepo) InsertPerformanceRun(ctx context.Context, stats *model.PerformanceRun) error {
	if f.perfInsertErr != nil {
		return f.perfInsertErr
	}
	f.perfInserted = append(f.perfInserted, stats)
	return nil
}

func (f *fakeRunRepo) ListPerformanceRuns(ctx context.Context, runID int) ([]*model.PerformanceRun, error) {
	return f.perfOut, f.err
}

func (f *fakeRunRepo) GetSuiteName(ctx context.Context, suiteID int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.suiteNames[suiteID], nil
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
	err     error
}

func (f *fakeAuditRepo) Insert(ctx context.Context, entry *model.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type newsletterSignup struct {
	email  string
	source string
}

type fakeNewsletterRepo struct {
	signups []newsletterSignup
	err     error
}

func (f *fakeNewsletterRepo) Subscribe(ctx context.Context, email, source string) error {
	if f.err != nil {
		return f.err
	}
	f.signups = append(f.signups, newsletterSignup{email: email, source: source})
	return nil
}

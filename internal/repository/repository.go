package repository

import (
	"context"
	"database/sql"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (int, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int) error
	CountActive(ctx context.Context) (int, error)
}

type ITestRepository interface {
	Create(ctx context.Context, test *model.APITest) (int, error)
	GetByID(ctx context.Context, id int) (*model.APITest, error)
	List(ctx context.Context, limit, offset int) ([]*model.APITest, error)
	Count(ctx context.Context) (int, error)
	// DeleteCascade removes the definition together with its dependent
	// runs, response logs and performance rows in one transaction.
	DeleteCascade(ctx context.Context, id int) error
}

type IRunRepository interface {
	Create(ctx context.Context, run *model.TestRun) (int, error)
	Finish(ctx context.Context, run *model.TestRun) error
	GetSummaryByID(ctx context.Context, id int) (*model.RunSummary, error)
	List(ctx context.Context, limit, offset int) ([]*model.RunSummary, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.RunStatus) (int, error)
	AverageSuccessRate(ctx context.Context) (float64, error)
	DeleteCascade(ctx context.Context, id int) error
	InsertResponseLog(ctx context.Context, entry *model.ResponseLog) error
	InsertPerformanceRun(ctx context.Context, stats *model.PerformanceRun) error
	ListPerformanceRuns(ctx context.Context, runID int) ([]*model.PerformanceRun, error)
	GetSuiteName(ctx context.Context, suiteID int) (string, error)
}

type IAuditRepository interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
}

type INewsletterRepository interface {
	Subscribe(ctx context.Context, email, source string) error
}

type IRepository interface {
	User() IUserRepository
	Test() ITestRepository
	Run() IRunRepository
	Audit() IAuditRepository
	Newsletter() INewsletterRepository
}

type Repository struct {
	user       IUserRepository
	test       ITestRepository
	run        IRunRepository
	audit      IAuditRepository
	newsletter INewsletterRepository
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		user:       NewUserRepository(db),
		test:       NewTestRepository(db),
		run:        NewRunRepository(db),
		audit:      NewAuditRepository(db),
		newsletter: NewNewsletterRepository(db),
	}
}

func (r *Repository) User() IUserRepository {
	return r.user
}

func (r *Repository) Test() ITestRepository {
	return r.test
}

func (r *Repository) Run() IRunRepository {
	return r.run
}

func (r *Repository) Audit() IAuditRepository {
	return r.audit
}

func (r *Repository) Newsletter() INewsletterRepository {
	return r.newsletter
}

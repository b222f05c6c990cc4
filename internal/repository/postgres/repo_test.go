package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kailas-cloud/bizdex/internal/domain"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
	"github.com/kailas-cloud/bizdex/internal/seed"
)

var cols = []string{
	"id", "name", "category", "category_id", "description", "city", "address", "lat", "lng",
	"is_verified", "is_featured", "is_premium", "is_remote", "rating", "review_count", "years_of_experience",
	"images", "phone", "email", "website", "owner_id", "created_at", "updated_at",
}

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	repo := New(conn)
	repo.now = func() time.Time { return created }
	return repo, mock
}

func sandtonRow() *sqlmock.Rows {
	return sqlmock.NewRows(cols).AddRow(
		"sandton-legal-group", "Sandton Legal Group", "Legal", "legal", "Commercial law", "Johannesburg",
		"15 Alice Lane", -26.1067, 28.0567,
		true, true, true, true, 4.9, int64(312), int64(14),
		"{https://img/1,https://img/2}", "+27 11 123 4567", "info@sandtonlegal.co.za", "https://sandtonlegal.co.za", "",
		created, created,
	)
}

func TestFetch_BuildsEqualityFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM businesses WHERE category_id = $1 AND is_remote = $2 ORDER BY created_at, id LIMIT $3")).
		WithArgs("legal", true, 20).
		WillReturnRows(sandtonRow())

	expr := filter.Build(filter.Options{CategoryID: "legal", RemoteOnly: true})
	results, err := repo.Fetch(context.Background(), expr, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	b := results[0]
	if b.ID != "sandton-legal-group" || b.Rating != 4.9 || b.YearsOfExperience != 14 {
		t.Errorf("unexpected record: %+v", b)
	}
	if len(b.Images) != 2 || b.Images[1] != "https://img/2" {
		t.Errorf("unexpected images: %v", b.Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetch_NoFilterNoLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(cols))

	results, err := repo.Fetch(context.Background(), filter.Expression{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetch_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM businesses").WillReturnError(errors.New("connection reset"))

	if _, err := repo.Fetch(context.Background(), filter.Expression{}, 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM businesses WHERE id = $1")).
		WithArgs("sandton-legal-group").
		WillReturnRows(sandtonRow())

	b, err := repo.Get(context.Background(), "sandton-legal-group")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsRemote || b.City != "Johannesburg" {
		t.Errorf("unexpected record: %+v", b)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM businesses WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSave_StampsCreatedAt(t *testing.T) {
	repo, mock := newMockRepo(t)
	b, _ := seed.ByID("prime-property-sa")

	args := make([]driver.Value, len(cols))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[0] = "prime-property-sa"
	args[21] = created
	args[22] = created

	mock.ExpectExec("INSERT INTO businesses").
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveMany_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO businesses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO businesses").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.SaveMany(context.Background(), seed.Businesses()[:3])
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveMany_Commits(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO businesses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO businesses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveMany(context.Background(), seed.Businesses()[:2]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountAndExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM businesses")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(8)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	n, err := repo.Count(context.Background())
	if err != nil || n != 8 {
		t.Fatalf("expected 8, got %d (%v)", n, err)
	}
	ok, err := repo.Exists(context.Background(), "x")
	if err != nil || ok {
		t.Fatalf("expected false, got %v (%v)", ok, err)
	}
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS businesses").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildFetch_RejectsBadBool(t *testing.T) {
	c, err := filter.NewMatch(filter.KeyIsRemote, "maybe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expr, err := filter.NewExpression(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := buildFetch(expr, 0); err == nil {
		t.Fatal("expected error")
	}
}

package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/google/go-cmp/cmp"
)

const (
	insertQ = `(?s)^INSERT\s+INTO\s+tasks\s*\(id,\s*user_id,\s*title,\s*completed\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at$`
	listQ   = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*completed,\s*created_at\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id$`
	findQ   = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*completed,\s*created_at\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	deleteQ = `^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1$`
	updateQ = `(?s)^UPDATE\s+tasks\s+SET\s+completed\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING\s+id,\s*user_id,\s*title,\s*completed,\s*created_at$`
)

var taskCols = []string{"id", "user_id", "title", "completed", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs("t1", "u1", "Buy milk", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.Task{ID: "t1", UserID: "u1", Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	want := &models.Task{ID: "t1", UserID: "u1", Title: "Buy milk", CreatedAt: created}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Create mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WithArgs("t1", "u1", "", false).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Task{ID: "t1", UserID: "u1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByOwner_Rows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(taskCols).
		AddRow("t1", "u1", "Buy milk", false, ts).
		AddRow("t2", "u1", "Walk dog", true, ts.Add(time.Minute))
	mock.ExpectQuery(listQ).WithArgs("u1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	want := []*models.Task{
		{ID: "t1", UserID: "u1", Title: "Buy milk", Completed: false, CreatedAt: ts},
		{ID: "t2", UserID: "u1", Title: "Walk dog", Completed: true, CreatedAt: ts.Add(time.Minute)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListByOwner mismatch (-want +got):\n%s", diff)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("u1").WillReturnRows(sqlmock.NewRows(taskCols))

	got, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tasks, got %d", len(got))
	}
}

func TestListByOwner_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("u1").WillReturnError(errors.New("boom"))

	if _, err := repo.ListByOwner(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestListByOwner_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(taskCols).
		AddRow("t1", "u1", "a", false, time.Now()).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(listQ).WithArgs("u1").WillReturnRows(rows)

	_, err := repo.ListByOwner(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`row broke`).MatchString(err.Error()) {
		t.Fatalf("expected row error, got %v", err)
	}
}

func TestFindByIDAndOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Now()
	mock.ExpectQuery(findQ).WithArgs("t1", "u1").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "u1", "x", false, ts))
	mock.ExpectQuery(findQ).WithArgs("t1", "u2").WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByIDAndOwner(context.Background(), "t1", "u1")
	if err != nil || got.ID != "t1" {
		t.Fatalf("owner lookup: got (%+v, %v)", got, err)
	}

	_, err = repo.FindByIDAndOwner(context.Background(), "t1", "u2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign owner: want ErrorNotFound, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQ).WithArgs("t2").WillReturnError(errors.New("db err"))
	mock.ExpectExec(deleteQ).WithArgs("t3").WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	if err := repo.DeleteByID(context.Background(), "t1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.DeleteByID(context.Background(), "t1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("second delete: want ErrorNotFound, got %v", err)
	}
	if err := repo.DeleteByID(context.Background(), "t2"); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("exec error: got %v", err)
	}
	if err := repo.DeleteByID(context.Background(), "t3"); err == nil || !regexp.MustCompile(`rows affected error`).MatchString(err.Error()) {
		t.Fatalf("rows affected: got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCompleted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Now()
	mock.ExpectQuery(updateQ).WithArgs("t1", "u1", true).
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "u1", "x", true, ts))
	mock.ExpectQuery(updateQ).WithArgs("t1", "u2", true).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(updateQ).WithArgs("t1", "u1", false).WillReturnError(errors.New("db err"))

	got, err := repo.UpdateCompleted(context.Background(), "t1", "u1", true)
	if err != nil || !got.Completed {
		t.Fatalf("update: got (%+v, %v)", got, err)
	}

	if _, err := repo.UpdateCompleted(context.Background(), "t1", "u2", true); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign owner: want ErrorNotFound, got %v", err)
	}

	if _, err := repo.UpdateCompleted(context.Background(), "t1", "u1", false); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("db error: got %v", err)
	}
}

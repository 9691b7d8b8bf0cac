package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

func newTestEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &eventRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	event := models.Event{
		EventID:   "6f1f9a2e-0000-4000-8000-000000000001",
		VaultID:   testVaultID,
		Kind:      models.EventRequestCreated,
		Payload:   json.RawMessage(`{"request_id":"aa"}`),
		CreatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO events").
		WithArgs(event.EventID, event.VaultID, event.Kind, []byte(event.Payload), event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateEvent_ExecError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO events").
		WillReturnError(errors.New("connection reset"))

	err := repo.CreateEvent(context.Background(), models.Event{EventID: "x"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetUndispatched_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	createdAt := time.Now().Add(-time.Minute)

	rows := sqlmock.NewRows([]string{"event_id", "vault_id", "kind", "payload", "created_at", "dispatched_at"}).
		AddRow("id-1", string(testVaultID), "request.created", []byte(`{"a":1}`), createdAt, nil).
		AddRow("id-2", string(testVaultID), "delay.changed", []byte(`{"b":2}`), time.Now(), nil)

	mock.ExpectQuery("SELECT (.+) FROM events").
		WithArgs(50).
		WillReturnRows(rows)

	events, err := repo.GetUndispatched(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventID != "id-1" {
		t.Errorf("expected oldest event first, got %s", events[0].EventID)
	}
	if events[0].Kind != models.EventRequestCreated {
		t.Errorf("unexpected kind: %s", events[0].Kind)
	}
	if events[0].DispatchedAt != nil {
		t.Errorf("expected nil dispatched_at, got %v", events[0].DispatchedAt)
	}
}

func TestGetUndispatched_QueryError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM events").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetUndispatched(context.Background(), 10)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestMarkDispatched_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	dispatchedAt := time.Now()

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("UPDATE events")
	stmt.ExpectExec().WithArgs(dispatchedAt, "id-1").WillReturnResult(sqlmock.NewResult(0, 1))
	stmt.ExpectExec().WithArgs(dispatchedAt, "id-2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkDispatched(context.Background(), []string{"id-1", "id-2"}, dispatchedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expErr := mock.ExpectationsWereMet(); expErr != nil {
		t.Fatalf("unmet expectations: %v", expErr)
	}
}

func TestMarkDispatched_NoIDsIsNoOp(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	if err := repo.MarkDispatched(context.Background(), nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expErr := mock.ExpectationsWereMet(); expErr != nil {
		t.Fatalf("unexpected database interaction: %v", expErr)
	}
}

func TestMarkDispatched_ExecErrorRollsBack(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	dispatchedAt := time.Now()

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("UPDATE events")
	stmt.ExpectExec().WithArgs(dispatchedAt, "id-1").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.MarkDispatched(context.Background(), []string{"id-1"}, dispatchedAt)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

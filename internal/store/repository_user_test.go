package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userTestColumns = []string{
	"user_id", "email", "name", "password_hash", "google_id", "picture", "is_google_user",
	"kpi_daily_target", "kpi_level", "kpi_dream_companies",
	"stats_total", "stats_month", "stats_week", "stats_today", "stats_last_application_at", "created_at",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRow(userID int64, email, name string) *sqlmock.Rows {
	return sqlmock.NewRows(userTestColumns).
		AddRow(userID, email, name, "bcrypt-hash", nil, nil, false,
			10, models.LevelJustLooking, []byte(`[]`),
			0, 0, 0, 0, nil, time.Now())
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "john@example.com",
		Name:         "John",
		PasswordHash: "bcrypt-hash",
		KPISettings:  models.DefaultKPISettings(),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.Name, nullIfEmpty(user.PasswordHash), nullIfEmpty(""), nullIfEmpty(""),
			false, 10, models.LevelJustLooking, user.KPISettings.DreamCompanies).
		WillReturnRows(userRow(1, user.Email, user.Name))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	rows := sqlmock.
		NewRows([]string{"user_id"}). // intentionally wrong shape → scan error
		AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(ctx, user)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("john@example.com").
		WillReturnRows(userRow(7, "john@example.com", "John"))

	found, err := repo.FindUserByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
	if found.PasswordHash != "bcrypt-hash" {
		t.Errorf("expected password hash to be scanned, got %q", found.PasswordHash)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(userRow(7, "john@example.com", "John"))

	found, err := repo.FindUserByID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "john@example.com" {
		t.Errorf("expected email to be scanned, got %q", found.Email)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateKPISettings_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	settings := models.KPISettings{
		DailyTarget:    5,
		Level:          models.LevelDesperate,
		DreamCompanies: models.StringSlice{"Acme"},
	}

	rows := sqlmock.NewRows(userTestColumns).
		AddRow(7, "john@example.com", "John", "bcrypt-hash", nil, nil, false,
			5, models.LevelDesperate, []byte(`["Acme"]`),
			0, 0, 0, 0, nil, time.Now())

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(7), settings.DailyTarget, settings.Level, settings.DreamCompanies).
		WillReturnRows(rows)

	updated, err := repo.UpdateKPISettings(ctx, 7, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.KPISettings.DailyTarget != 5 {
		t.Errorf("expected daily target 5, got %d", updated.KPISettings.DailyTarget)
	}
	if len(updated.KPISettings.DreamCompanies) != 1 || updated.KPISettings.DreamCompanies[0] != "Acme" {
		t.Errorf("expected dream companies to round-trip, got %v", updated.KPISettings.DreamCompanies)
	}
}

func TestUpdateKPISettings_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateKPISettings(ctx, 404, models.DefaultKPISettings())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateStats_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	last := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	stats := models.Stats{
		TotalApplications:     12,
		ApplicationsThisMonth: 6,
		ApplicationsThisWeek:  3,
		ApplicationsToday:     1,
		LastApplicationDate:   &last,
	}

	rows := sqlmock.NewRows(userTestColumns).
		AddRow(7, "john@example.com", "John", "bcrypt-hash", nil, nil, false,
			10, models.LevelJustLooking, []byte(`[]`),
			12, 6, 3, 1, last, time.Now())

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(7), 12, 6, 3, 1, sql.NullTime{Time: last, Valid: true}).
		WillReturnRows(rows)

	updated, err := repo.UpdateStats(ctx, 7, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Stats.TotalApplications != 12 {
		t.Errorf("expected total 12, got %d", updated.Stats.TotalApplications)
	}
	if updated.Stats.LastApplicationDate == nil || !updated.Stats.LastApplicationDate.Equal(last) {
		t.Errorf("expected last application date %v, got %v", last, updated.Stats.LastApplicationDate)
	}
}

// Recomputes that carry no fresh stamp pass NULL, and the statement keeps
// the stored value through COALESCE instead of clearing it.
func TestUpdateStats_NilLastDateKeepsStoredStamp(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(userTestColumns).
		AddRow(7, "john@example.com", "John", "bcrypt-hash", nil, nil, false,
			10, models.LevelJustLooking, []byte(`[]`),
			0, 0, 0, 0, stored, time.Now())

	mock.ExpectQuery(`UPDATE users(.|\n)+COALESCE`).
		WithArgs(int64(7), 0, 0, 0, 0, sql.NullTime{}).
		WillReturnRows(rows)

	updated, err := repo.UpdateStats(ctx, 7, models.Stats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Stats.LastApplicationDate == nil || !updated.Stats.LastApplicationDate.Equal(stored) {
		t.Errorf("expected stored stamp %v to survive, got %v", stored, updated.Stats.LastApplicationDate)
	}
}

func TestLinkGoogleAccount_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	profile := models.GoogleProfile{ID: "g-123", Name: "John G", Picture: "https://img.example.com/p.png"}

	rows := sqlmock.NewRows(userTestColumns).
		AddRow(7, "john@example.com", "John G", "bcrypt-hash", "g-123", profile.Picture, true,
			10, models.LevelJustLooking, []byte(`[]`),
			0, 0, 0, 0, nil, time.Now())

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(7), profile.ID, profile.Name, nullIfEmpty(profile.Picture)).
		WillReturnRows(rows)

	updated, err := repo.LinkGoogleAccount(ctx, 7, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsGoogleUser {
		t.Error("expected IsGoogleUser=true after linking")
	}
	if updated.GoogleID != "g-123" {
		t.Errorf("expected google id to be scanned, got %q", updated.GoogleID)
	}
}

func TestLinkGoogleAccount_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.LinkGoogleAccount(ctx, 404, models.GoogleProfile{ID: "g-404"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

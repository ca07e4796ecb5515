package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO users").
		WithArgs("google:123", "a@b.test", "A B", "A", "B", "https://pic").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Upsert(context.Background(), User{
		ID:         "google:123",
		Email:      "a@b.test",
		FullName:   "A B",
		GivenName:  "A",
		FamilyName: "B",
		PictureURL: "https://pic",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "given_name", "family_name", "picture_url", "created_at", "updated_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "u1", Email: "a@b.test"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	first, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	time.Sleep(time.Millisecond)
	if err := repo.Upsert(ctx, User{ID: "u1", Email: "new@b.test"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("CreatedAt changed on upsert")
	}
	if second.Email != "new@b.test" {
		t.Errorf("email = %q", second.Email)
	}
}

package repository

import (
	"Clipvault/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

func seedToken(t *testing.T, repo TokenRepo, access string, expiresOn time.Time) *model.Token {
	t.Helper()
	row, err := model.NewToken(&oauth2.Token{
		AccessToken: access,
		TokenType:   "bearer",
		Expiry:      expiresOn,
	})
	if err != nil {
		t.Fatalf("encode token: %v", err)
	}
	if err = repo.Insert(context.Background(), row); err != nil {
		t.Fatalf("insert token: %v", err)
	}
	return row
}

func TestLatestEmpty(t *testing.T) {
	repo := NewTokenRepository(newTestDB(t))

	_, err := repo.Latest(context.Background())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestLatestPicksLongestLived(t *testing.T) {
	repo := NewTokenRepository(newTestDB(t))

	now := time.Now().UTC().Truncate(time.Second)
	seedToken(t, repo, "old", now.Add(time.Hour))
	seedToken(t, repo, "new", now.Add(2*time.Hour))
	seedToken(t, repo, "middle", now.Add(90*time.Minute))

	row, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	tok, err := row.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.AccessToken != "new" {
		t.Errorf("access token = %q, want %q", tok.AccessToken, "new")
	}
}

func TestDeleteExpired(t *testing.T) {
	repo := NewTokenRepository(newTestDB(t))

	now := time.Now().UTC()
	seedToken(t, repo, "dead", now.Add(-time.Hour))
	seedToken(t, repo, "dying", now.Add(-time.Minute))
	live := seedToken(t, repo, "live", now.Add(time.Hour))

	count, err := repo.DeleteExpired(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted = %d, want 2", count)
	}

	row, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if row.ID != live.ID {
		t.Errorf("surviving token id = %d, want %d", row.ID, live.ID)
	}
}

//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/migrations"
	"github.com/manemajef/clients-app/internal/repository"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL must be set for integration tests")
	}

	ctx := context.Background()
	require.NoError(t, migrations.Run(ctx, dbURL))

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE meetings, contacts, clients, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) domain.User {
	t.Helper()
	user, err := repository.NewPostgresUserRepo(pool).Create(context.Background(), domain.User{
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func TestUserRepoRoundTrip(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := repository.NewPostgresUserRepo(pool)

	created, err := repo.Create(ctx, domain.User{Email: "a@x.com", FullName: "A", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// UNIQUE(email) surfaces as a conflict.
	_, err = repo.Create(ctx, domain.User{Email: "a@x.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestClientRepoUniquePerUser(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := repository.NewPostgresClientRepo(pool)

	jeff := seedUser(t, pool, "jeff@x.com")
	dana := seedUser(t, pool, "dana@x.com")

	_, err := repo.Create(ctx, domain.Client{Name: "alice", UserID: jeff.ID})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.Client{Name: "alice", UserID: jeff.ID})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Same name under another user is allowed.
	_, err = repo.Create(ctx, domain.Client{Name: "alice", UserID: dana.ID})
	require.NoError(t, err)
}

func TestContactDefaultsAndLookup(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	user := seedUser(t, pool, "jeff@x.com")
	client, err := repository.NewPostgresClientRepo(pool).Create(ctx, domain.Client{Name: "alice", UserID: user.ID})
	require.NoError(t, err)

	contacts := repository.NewPostgresContactRepo(pool)
	created, err := contacts.CreateMany(ctx, []domain.Contact{
		{Kind: domain.ContactKindPhone, Contact: "+972538713139", ClientID: client.ID},
		{Kind: "", Contact: "somewhere", ClientID: client.ID},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, domain.ContactKindElse, created[1].Kind)

	listed, err := contacts.GetByClientID(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestMeetingRepoFilters(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	user := seedUser(t, pool, "jeff@x.com")
	client, err := repository.NewPostgresClientRepo(pool).Create(ctx, domain.Client{Name: "alice", UserID: user.ID})
	require.NoError(t, err)

	meetings := repository.NewPostgresMeetingRepo(pool)
	_, err = meetings.Create(ctx, domain.Meeting{Revenue: 100, Date: time.Now().UTC(), Duration: 1.5, UserID: user.ID, ClientID: &client.ID})
	require.NoError(t, err)
	_, err = meetings.Create(ctx, domain.Meeting{Date: time.Now().UTC(), Duration: 1, UserID: user.ID})
	require.NoError(t, err)

	byUser, err := meetings.GetAllByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	byClient, err := meetings.GetAllByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	require.Equal(t, int64(100), byClient[0].Revenue)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	user := seedUser(t, pool, "jeff@x.com")
	clients := repository.NewPostgresClientRepo(pool)
	contacts := repository.NewPostgresContactRepo(pool)

	boom := errors.New("boom")
	err := repository.NewTxManager(pool).WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		created, err := clients.WithTx(tx).Create(ctx, domain.Client{Name: "alice", UserID: user.ID})
		if err != nil {
			return err
		}
		if _, err := contacts.WithTx(tx).Create(ctx, domain.Contact{Kind: domain.ContactKindPhone, Contact: "123", ClientID: created.ID}); err != nil {
			return err
		}
		return fmt.Errorf("after inserts: %w", boom)
	})
	require.ErrorIs(t, err, boom)

	_, err = clients.GetByUserAndName(ctx, user.ID, "alice")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

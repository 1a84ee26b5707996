// Package repository contains pure data-access objects for the Postgres
// store. Repositories perform persistence operations only; business rules
// and commit timing belong to the service layer.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manemajef/clients-app/internal/domain"
)

// Querier is the subset of pgx used by repositories. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so the same repository code runs inside or outside a
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx runs a function inside one database transaction. The service layer
// groups multiple repository calls under a single Tx so a root entity and its
// dependent rows commit or roll back together.
type Tx interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// TxManager implements Tx over a pgx connection pool.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTx begins a transaction, runs fn with the transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown. The
// transaction is owned exclusively by the calling request; it is never shared.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, tx)
	return err
}

// UserRepository persists users.
type UserRepository interface {
	WithTx(tx pgx.Tx) UserRepository
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}

// ClientRepository persists clients.
type ClientRepository interface {
	WithTx(tx pgx.Tx) ClientRepository
	GetByID(ctx context.Context, id int64) (domain.Client, error)
	GetByUserAndName(ctx context.Context, userID int64, name string) (domain.Client, error)
	GetAllByUser(ctx context.Context, userID int64) ([]domain.Client, error)
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
}

// ContactRepository persists contacts.
type ContactRepository interface {
	WithTx(tx pgx.Tx) ContactRepository
	Create(ctx context.Context, contact domain.Contact) (domain.Contact, error)
	CreateMany(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error)
	GetByClientID(ctx context.Context, clientID int64) ([]domain.Contact, error)
}

// MeetingRepository persists meetings.
type MeetingRepository interface {
	WithTx(tx pgx.Tx) MeetingRepository
	Create(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error)
	GetByID(ctx context.Context, id int64) (domain.Meeting, error)
	GetAllByUser(ctx context.Context, userID int64) ([]domain.Meeting, error)
	GetAllByClient(ctx context.Context, clientID int64) ([]domain.Meeting, error)
}

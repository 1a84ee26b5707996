package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/repository"
)

// memStore is a shared in-memory backing store for the fake repositories.
// Unique constraints are enforced on insert the way Postgres would enforce
// them at commit time.
type memStore struct {
	users    []domain.User
	clients  []domain.Client
	contacts []domain.Contact
	meetings []domain.Meeting
	nextID   int64

	// failContactAt forces the Nth contact insert (1-based) to fail,
	// for exercising rollback.
	failContactAt  int
	contactInserts int
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// memTx snapshots the store before running fn and restores it when fn fails,
// mimicking transaction rollback.
type memTx struct {
	s *memStore
}

func (t *memTx) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	snapshot := *t.s
	snapshot.users = append([]domain.User(nil), t.s.users...)
	snapshot.clients = append([]domain.Client(nil), t.s.clients...)
	snapshot.contacts = append([]domain.Contact(nil), t.s.contacts...)
	snapshot.meetings = append([]domain.Meeting(nil), t.s.meetings...)

	if err := fn(ctx, nil); err != nil {
		*t.s = snapshot
		return err
	}
	return nil
}

type memUserRepo struct {
	s *memStore
}

func (r *memUserRepo) WithTx(tx pgx.Tx) repository.UserRepository { return r }

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, fmt.Errorf("get user by email: %w", domain.ErrNotFound)
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	for _, user := range r.s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, fmt.Errorf("get user by id: %w", domain.ErrNotFound)
}

func (r *memUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domain.User{}, fmt.Errorf("create user: %w", domain.ErrConflict)
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = time.Now().UTC()
	r.s.users = append(r.s.users, user)
	return user, nil
}

func (r *memUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.s.users...), nil
}

type memClientRepo struct {
	s *memStore
}

func (r *memClientRepo) WithTx(tx pgx.Tx) repository.ClientRepository { return r }

func (r *memClientRepo) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	for _, client := range r.s.clients {
		if client.ID == id {
			return client, nil
		}
	}
	return domain.Client{}, fmt.Errorf("get client by id: %w", domain.ErrNotFound)
}

func (r *memClientRepo) GetByUserAndName(ctx context.Context, userID int64, name string) (domain.Client, error) {
	for _, client := range r.s.clients {
		if client.UserID == userID && client.Name == name {
			return client, nil
		}
	}
	return domain.Client{}, fmt.Errorf("get client by name: %w", domain.ErrNotFound)
}

func (r *memClientRepo) GetAllByUser(ctx context.Context, userID int64) ([]domain.Client, error) {
	var clients []domain.Client
	for _, client := range r.s.clients {
		if client.UserID == userID {
			clients = append(clients, client)
		}
	}
	return clients, nil
}

func (r *memClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	for _, existing := range r.s.clients {
		if existing.UserID == client.UserID && existing.Name == client.Name {
			return domain.Client{}, fmt.Errorf("create client: %w", domain.ErrConflict)
		}
	}
	client.ID = r.s.id()
	r.s.clients = append(r.s.clients, client)
	return client, nil
}

type memContactRepo struct {
	s *memStore
}

func (r *memContactRepo) WithTx(tx pgx.Tx) repository.ContactRepository { return r }

func (r *memContactRepo) Create(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	r.s.contactInserts++
	if r.s.failContactAt > 0 && r.s.contactInserts >= r.s.failContactAt {
		return domain.Contact{}, errors.New("create contact: forced failure")
	}
	contact.ID = r.s.id()
	contact.Kind = contact.Kind.Normalize()
	r.s.contacts = append(r.s.contacts, contact)
	return contact, nil
}

func (r *memContactRepo) CreateMany(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error) {
	created := make([]domain.Contact, 0, len(contacts))
	for _, contact := range contacts {
		inserted, err := r.Create(ctx, contact)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}
	return created, nil
}

func (r *memContactRepo) GetByClientID(ctx context.Context, clientID int64) ([]domain.Contact, error) {
	var contacts []domain.Contact
	for _, contact := range r.s.contacts {
		if contact.ClientID == clientID {
			contacts = append(contacts, contact)
		}
	}
	return contacts, nil
}

type memMeetingRepo struct {
	s *memStore
}

func (r *memMeetingRepo) WithTx(tx pgx.Tx) repository.MeetingRepository { return r }

func (r *memMeetingRepo) Create(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error) {
	meeting.ID = r.s.id()
	r.s.meetings = append(r.s.meetings, meeting)
	return meeting, nil
}

func (r *memMeetingRepo) GetByID(ctx context.Context, id int64) (domain.Meeting, error) {
	for _, meeting := range r.s.meetings {
		if meeting.ID == id {
			return meeting, nil
		}
	}
	return domain.Meeting{}, fmt.Errorf("get meeting by id: %w", domain.ErrNotFound)
}

func (r *memMeetingRepo) GetAllByUser(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	var meetings []domain.Meeting
	for _, meeting := range r.s.meetings {
		if meeting.UserID == userID {
			meetings = append(meetings, meeting)
		}
	}
	return meetings, nil
}

func (r *memMeetingRepo) GetAllByClient(ctx context.Context, clientID int64) ([]domain.Meeting, error) {
	var meetings []domain.Meeting
	for _, meeting := range r.s.meetings {
		if meeting.ClientID != nil && *meeting.ClientID == clientID {
			meetings = append(meetings, meeting)
		}
	}
	return meetings, nil
}

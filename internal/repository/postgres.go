package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/manemajef/clients-app/internal/domain"
)

// Compile-time interface assertions.
var (
	_ UserRepository    = (*PostgresUserRepo)(nil)
	_ ClientRepository  = (*PostgresClientRepo)(nil)
	_ ContactRepository = (*PostgresContactRepo)(nil)
	_ MeetingRepository = (*PostgresMeetingRepo)(nil)
)

const pgUniqueViolation = "23505"

// wrapError translates driver errors into the domain taxonomy: absent rows
// become ErrNotFound, unique-constraint violations become ErrConflict. The
// constraint check at commit time is what closes the check-then-insert race.
func wrapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// PostgresUserRepo implements UserRepository over pgx.
type PostgresUserRepo struct {
	q Querier
}

func NewPostgresUserRepo(q Querier) *PostgresUserRepo {
	return &PostgresUserRepo{q: q}
}

// WithTx returns a copy bound to the given transaction.
func (r *PostgresUserRepo) WithTx(tx pgx.Tx) UserRepository {
	return &PostgresUserRepo{q: tx}
}

const selectUserSQL = `SELECT id, email, full_name, password_hash, created_at FROM users`

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRow(ctx, selectUserSQL+` WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, wrapError("get user by email", err)
	}
	return user, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.q.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return domain.User{}, wrapError("get user by id", err)
	}
	return user, nil
}

const insertUserSQL = `INSERT INTO users (email, full_name, password_hash)
VALUES ($1, $2, $3)
RETURNING id, email, full_name, password_hash, created_at`

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.q.QueryRow(ctx, insertUserSQL, user.Email, user.FullName, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, wrapError("create user", err)
	}
	return created, nil
}

func (r *PostgresUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.Query(ctx, selectUserSQL+` ORDER BY id`)
	if err != nil {
		return nil, wrapError("list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, wrapError("list users", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list users", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.CreatedAt)
	return user, err
}

// PostgresClientRepo implements ClientRepository.
type PostgresClientRepo struct {
	q Querier
}

func NewPostgresClientRepo(q Querier) *PostgresClientRepo {
	return &PostgresClientRepo{q: q}
}

func (r *PostgresClientRepo) WithTx(tx pgx.Tx) ClientRepository {
	return &PostgresClientRepo{q: tx}
}

const selectClientSQL = `SELECT id, name, user_id FROM clients`

func (r *PostgresClientRepo) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	row := r.q.QueryRow(ctx, selectClientSQL+` WHERE id = $1`, id)
	client, err := scanClient(row)
	if err != nil {
		return domain.Client{}, wrapError("get client by id", err)
	}
	return client, nil
}

func (r *PostgresClientRepo) GetByUserAndName(ctx context.Context, userID int64, name string) (domain.Client, error) {
	row := r.q.QueryRow(ctx, selectClientSQL+` WHERE user_id = $1 AND name = $2`, userID, name)
	client, err := scanClient(row)
	if err != nil {
		return domain.Client{}, wrapError("get client by name", err)
	}
	return client, nil
}

func (r *PostgresClientRepo) GetAllByUser(ctx context.Context, userID int64) ([]domain.Client, error) {
	rows, err := r.q.Query(ctx, selectClientSQL+` WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, wrapError("list clients", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, wrapError("list clients", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list clients", err)
	}
	return clients, nil
}

const insertClientSQL = `INSERT INTO clients (name, user_id)
VALUES ($1, $2)
RETURNING id, name, user_id`

// Create inserts the client and returns it with the generated id populated.
// When called inside a transaction the row stays provisional until the
// caller commits.
func (r *PostgresClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	row := r.q.QueryRow(ctx, insertClientSQL, client.Name, client.UserID)
	created, err := scanClient(row)
	if err != nil {
		return domain.Client{}, wrapError("create client", err)
	}
	return created, nil
}

func scanClient(row pgx.Row) (domain.Client, error) {
	var client domain.Client
	err := row.Scan(&client.ID, &client.Name, &client.UserID)
	return client, err
}

// PostgresContactRepo implements ContactRepository.
type PostgresContactRepo struct {
	q Querier
}

func NewPostgresContactRepo(q Querier) *PostgresContactRepo {
	return &PostgresContactRepo{q: q}
}

func (r *PostgresContactRepo) WithTx(tx pgx.Tx) ContactRepository {
	return &PostgresContactRepo{q: tx}
}

const insertContactSQL = `INSERT INTO contacts (type, contact, client_id)
VALUES ($1, $2, $3)
RETURNING id, type, contact, client_id`

func (r *PostgresContactRepo) Create(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	row := r.q.QueryRow(ctx, insertContactSQL, contact.Kind.Normalize(), contact.Contact, contact.ClientID)
	created, err := scanContact(row)
	if err != nil {
		return domain.Contact{}, wrapError("create contact", err)
	}
	return created, nil
}

func (r *PostgresContactRepo) CreateMany(ctx context.Context, contacts []domain.Contact) ([]domain.Contact, error) {
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

func (r *PostgresContactRepo) GetByClientID(ctx context.Context, clientID int64) ([]domain.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT id, type, contact, client_id FROM contacts WHERE client_id = $1 ORDER BY id`, clientID)
	if err != nil {
		return nil, wrapError("list contacts", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, wrapError("list contacts", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list contacts", err)
	}
	return contacts, nil
}

func scanContact(row pgx.Row) (domain.Contact, error) {
	var contact domain.Contact
	err := row.Scan(&contact.ID, &contact.Kind, &contact.Contact, &contact.ClientID)
	return contact, err
}

// PostgresMeetingRepo implements MeetingRepository.
type PostgresMeetingRepo struct {
	q Querier
}

func NewPostgresMeetingRepo(q Querier) *PostgresMeetingRepo {
	return &PostgresMeetingRepo{q: q}
}

func (r *PostgresMeetingRepo) WithTx(tx pgx.Tx) MeetingRepository {
	return &PostgresMeetingRepo{q: tx}
}

const selectMeetingSQL = `SELECT id, revenue, date, duration, user_id, client_id FROM meetings`

const insertMeetingSQL = `INSERT INTO meetings (revenue, date, duration, user_id, client_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, revenue, date, duration, user_id, client_id`

func (r *PostgresMeetingRepo) Create(ctx context.Context, meeting domain.Meeting) (domain.Meeting, error) {
	row := r.q.QueryRow(ctx, insertMeetingSQL,
		meeting.Revenue,
		meeting.Date,
		meeting.Duration,
		meeting.UserID,
		meeting.ClientID,
	)
	created, err := scanMeeting(row)
	if err != nil {
		return domain.Meeting{}, wrapError("create meeting", err)
	}
	return created, nil
}

func (r *PostgresMeetingRepo) GetByID(ctx context.Context, id int64) (domain.Meeting, error) {
	row := r.q.QueryRow(ctx, selectMeetingSQL+` WHERE id = $1`, id)
	meeting, err := scanMeeting(row)
	if err != nil {
		return domain.Meeting{}, wrapError("get meeting by id", err)
	}
	return meeting, nil
}

func (r *PostgresMeetingRepo) GetAllByUser(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	return r.list(ctx, selectMeetingSQL+` WHERE user_id = $1 ORDER BY date`, userID)
}

func (r *PostgresMeetingRepo) GetAllByClient(ctx context.Context, clientID int64) ([]domain.Meeting, error) {
	return r.list(ctx, selectMeetingSQL+` WHERE client_id = $1 ORDER BY date`, clientID)
}

func (r *PostgresMeetingRepo) list(ctx context.Context, sql string, arg any) ([]domain.Meeting, error) {
	rows, err := r.q.Query(ctx, sql, arg)
	if err != nil {
		return nil, wrapError("list meetings", err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, wrapError("list meetings", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("list meetings", err)
	}
	return meetings, nil
}

func scanMeeting(row pgx.Row) (domain.Meeting, error) {
	var meeting domain.Meeting
	err := row.Scan(&meeting.ID, &meeting.Revenue, &meeting.Date, &meeting.Duration, &meeting.UserID, &meeting.ClientID)
	return meeting, err
}

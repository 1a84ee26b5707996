package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/config"
	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/repository"
)

// ContactInput is one dependent contact supplied with a new client.
type ContactInput struct {
	Kind    domain.ContactKind
	Contact string
}

// AddClientInput is the payload for the client+contacts write.
type AddClientInput struct {
	Name     string
	Contacts []ContactInput
}

// ClientService enforces client ownership and uniqueness invariants and owns
// the transaction boundary for the client+contacts write.
type ClientService struct {
	tx       repository.Tx
	clients  repository.ClientRepository
	contacts repository.ContactRepository
	users    repository.UserRepository
	cfg      config.Config
	logger   *zap.Logger
}

// NewClientService wires the client service.
func NewClientService(
	txm repository.Tx,
	clients repository.ClientRepository,
	contacts repository.ContactRepository,
	users repository.UserRepository,
	cfg config.Config,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		tx:       txm,
		clients:  clients,
		contacts: contacts,
		users:    users,
		cfg:      cfg,
		logger:   logger,
	}
}

// AddClient creates a client and its contacts atomically. The owning user is
// resolved first (ErrNotFound when absent), then (user, name) uniqueness is
// checked (ErrConflict on duplicate) before any write. The client insert and
// every contact insert run inside one transaction: the client id is obtained
// from the provisional insert and used to build the contact rows, and nothing
// persists unless all inserts succeed. A concurrent duplicate slipping past
// the pre-check is caught by the unique constraint at commit and surfaces as
// ErrConflict.
func (s *ClientService) AddClient(ctx context.Context, userEmail string, in AddClientInput) (domain.Client, []domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Client{}, nil, fmt.Errorf("add client: name: %w", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return domain.Client{}, nil, err
	}

	if _, err := s.clients.GetByUserAndName(ctx, user.ID, name); err == nil {
		return domain.Client{}, nil, fmt.Errorf("add client %q: %w", name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Client{}, nil, fmt.Errorf("check client name: %w", err)
	}

	var (
		created  domain.Client
		contacts []domain.Contact
	)
	err = s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		created, err = s.clients.WithTx(tx).Create(ctx, domain.Client{Name: name, UserID: user.ID})
		if err != nil {
			return err
		}

		if len(in.Contacts) == 0 {
			return nil
		}

		rows := make([]domain.Contact, 0, len(in.Contacts))
		for _, c := range in.Contacts {
			rows = append(rows, domain.Contact{
				Kind:     c.Kind.Normalize(),
				Contact:  c.Contact,
				ClientID: created.ID,
			})
		}
		contacts, err = s.contacts.WithTx(tx).CreateMany(ctx, rows)
		return err
	})
	if err != nil {
		return domain.Client{}, nil, err
	}

	s.logger.Info("client created",
		zap.Int64("client_id", created.ID),
		zap.Int64("user_id", user.ID),
		zap.Int("contacts", len(contacts)),
	)
	return created, contacts, nil
}

// GetClient loads a client with its contacts. A client owned by a different
// user is reported as absent.
func (s *ClientService) GetClient(ctx context.Context, userID, clientID int64) (domain.Client, []domain.Contact, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return domain.Client{}, nil, err
	}
	if client.UserID != userID {
		return domain.Client{}, nil, fmt.Errorf("get client %d: %w", clientID, domain.ErrNotFound)
	}

	contacts, err := s.contacts.GetByClientID(ctx, clientID)
	if err != nil {
		return domain.Client{}, nil, err
	}
	return client, contacts, nil
}

// ListClients returns every client owned by userID.
func (s *ClientService) ListClients(ctx context.Context, userID int64) ([]domain.Client, error) {
	return s.clients.GetAllByUser(ctx, userID)
}

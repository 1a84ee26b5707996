package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/config"
	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/repository"
)

// AddMeetingInput is the payload for creating a meeting. Nil fields take the
// defaults: revenue 0, duration 1.0, date now.
type AddMeetingInput struct {
	Revenue  *int64
	Date     *time.Time
	Duration *float64
	ClientID *int64
}

// MeetingService enforces the meeting ownership invariant: a meeting may only
// reference a client owned by the same user.
type MeetingService struct {
	tx       repository.Tx
	meetings repository.MeetingRepository
	users    repository.UserRepository
	clients  repository.ClientRepository
	cfg      config.Config
	logger   *zap.Logger
}

// NewMeetingService wires the meeting service.
func NewMeetingService(
	txm repository.Tx,
	meetings repository.MeetingRepository,
	users repository.UserRepository,
	clients repository.ClientRepository,
	cfg config.Config,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		tx:       txm,
		meetings: meetings,
		users:    users,
		clients:  clients,
		cfg:      cfg,
		logger:   logger,
	}
}

// AddMeeting creates a meeting for userID. The user must exist, and when a
// client id is supplied that client must belong to the same user; either
// failed resolution aborts before the insert.
func (s *MeetingService) AddMeeting(ctx context.Context, userID int64, in AddMeetingInput) (domain.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return domain.Meeting{}, err
	}

	if in.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *in.ClientID)
		if err != nil {
			return domain.Meeting{}, err
		}
		if client.UserID != userID {
			return domain.Meeting{}, fmt.Errorf("client %d not owned by user %d: %w", client.ID, userID, domain.ErrNotFound)
		}
	}

	meeting := domain.Meeting{
		Duration: 1.0,
		Date:     time.Now().UTC(),
		UserID:   userID,
		ClientID: in.ClientID,
	}
	if in.Revenue != nil {
		meeting.Revenue = *in.Revenue
	}
	if in.Duration != nil {
		meeting.Duration = *in.Duration
	}
	if in.Date != nil {
		meeting.Date = *in.Date
	}

	var created domain.Meeting
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		created, err = s.meetings.WithTx(tx).Create(ctx, meeting)
		return err
	})
	if err != nil {
		return domain.Meeting{}, err
	}

	s.logger.Info("meeting created", zap.Int64("meeting_id", created.ID), zap.Int64("user_id", userID))
	return created, nil
}

// GetMeeting loads a meeting owned by userID. Foreign meetings are reported
// as absent.
func (s *MeetingService) GetMeeting(ctx context.Context, userID, meetingID int64) (domain.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return domain.Meeting{}, err
	}
	if meeting.UserID != userID {
		return domain.Meeting{}, fmt.Errorf("get meeting %d: %w", meetingID, domain.ErrNotFound)
	}
	return meeting, nil
}

// ListByUser returns every meeting owned by userID.
func (s *MeetingService) ListByUser(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	return s.meetings.GetAllByUser(ctx, userID)
}

// ListByClient returns the meetings referencing clientID, after checking the
// client belongs to userID.
func (s *MeetingService) ListByClient(ctx context.Context, userID, clientID int64) ([]domain.Meeting, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.UserID != userID {
		return nil, fmt.Errorf("list meetings for client %d: %w", clientID, domain.ErrNotFound)
	}
	return s.meetings.GetAllByClient(ctx, clientID)
}

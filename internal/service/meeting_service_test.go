package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/domain"
	"github.com/manemajef/clients-app/internal/service"
)

func newMeetingService(store *memStore) *service.MeetingService {
	return service.NewMeetingService(
		&memTx{s: store},
		&memMeetingRepo{s: store},
		&memUserRepo{s: store},
		&memClientRepo{s: store},
		testConfig(),
		zap.NewNop(),
	)
}

func seedClient(t *testing.T, store *memStore, userID int64, name string) domain.Client {
	t.Helper()
	client, err := (&memClientRepo{s: store}).Create(context.Background(), domain.Client{Name: name, UserID: userID})
	require.NoError(t, err)
	return client
}

func TestAddMeetingDefaults(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	svc := newMeetingService(store)

	before := time.Now().UTC()
	meeting, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{})
	require.NoError(t, err)

	require.NotZero(t, meeting.ID)
	require.Equal(t, int64(0), meeting.Revenue)
	require.Equal(t, 1.0, meeting.Duration)
	require.Nil(t, meeting.ClientID)
	require.False(t, meeting.Date.Before(before))
}

func TestAddMeetingExplicitFields(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	client := seedClient(t, store, jeff.ID, "alice")
	svc := newMeetingService(store)

	revenue := int64(500)
	duration := 2.5
	date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	meeting, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{
		Revenue:  &revenue,
		Duration: &duration,
		Date:     &date,
		ClientID: &client.ID,
	})
	require.NoError(t, err)
	require.Equal(t, revenue, meeting.Revenue)
	require.Equal(t, duration, meeting.Duration)
	require.Equal(t, date, meeting.Date)
	require.NotNil(t, meeting.ClientID)
	require.Equal(t, client.ID, *meeting.ClientID)
}

func TestAddMeetingUnknownUser(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newMeetingService(store)

	_, err := svc.AddMeeting(ctx, 42, service.AddMeetingInput{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, store.meetings)
}

func TestAddMeetingForeignClient(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	dana := seedUser(t, store, "dana@x.com")
	client := seedClient(t, store, dana.ID, "alice")
	svc := newMeetingService(store)

	_, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{ClientID: &client.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, store.meetings)
}

func TestAddMeetingUnknownClient(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	svc := newMeetingService(store)

	missing := int64(99)
	_, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{ClientID: &missing})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, store.meetings)
}

func TestListMeetings(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	client := seedClient(t, store, jeff.ID, "alice")
	svc := newMeetingService(store)

	_, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{})
	require.NoError(t, err)
	_, err = svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{ClientID: &client.ID})
	require.NoError(t, err)

	all, err := svc.ListByUser(ctx, jeff.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byClient, err := svc.ListByClient(ctx, jeff.ID, client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
}

func TestListByClientForeignClient(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	dana := seedUser(t, store, "dana@x.com")
	client := seedClient(t, store, dana.ID, "alice")
	svc := newMeetingService(store)

	_, err := svc.ListByClient(ctx, jeff.ID, client.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetMeetingOwnership(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	jeff := seedUser(t, store, "jeff@x.com")
	dana := seedUser(t, store, "dana@x.com")
	svc := newMeetingService(store)

	meeting, err := svc.AddMeeting(ctx, jeff.ID, service.AddMeetingInput{})
	require.NoError(t, err)

	got, err := svc.GetMeeting(ctx, jeff.ID, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, meeting.ID, got.ID)

	_, err = svc.GetMeeting(ctx, dana.ID, meeting.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-manager/internal/models"
)

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardSummary), args.Error(1)
}

type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
	err      error
	closed   bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{messages: make(map[string][][]byte)}
}

func (f *fakePublisher) Publish(topic string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages[topic] = append(f.messages[topic], payload)
	return nil
}

func (f *fakePublisher) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakePublisher) count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages[topic])
}

func sampleSummary() *models.DashboardSummary {
	return &models.DashboardSummary{
		Stats: models.DashboardStats{TotalVehicles: 3, TotalDrivers: 2, TripsThisMonth: 1, MaintenanceCosts: 150},
		MonthlyTrips: []models.MonthlyTripData{
			{Month: "2024-06", TripCount: 1},
		},
		MaintenanceCosts: []models.MaintenanceCostData{
			{Month: "2024-06", Cost: 150},
		},
	}
}

func TestNewRunner(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()

	r, err := NewRunner(provider, pub, "fleet/summary", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, r.interval)

	_, err = NewRunner(nil, pub, "fleet/summary", time.Second)
	assert.Error(t, err)
	_, err = NewRunner(provider, pub, "", time.Second)
	assert.Error(t, err)
}

func TestRunner_PublishOnce(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()
	provider.On("Summary", mock.Anything).Return(sampleSummary(), nil)

	r, err := NewRunner(provider, pub, "fleet/summary", time.Second)
	require.NoError(t, err)
	require.NoError(t, r.PublishOnce(context.Background()))

	require.Len(t, pub.messages["fleet/summary"], 1)
	var got models.DashboardSummary
	require.NoError(t, json.Unmarshal(pub.messages["fleet/summary"][0], &got))
	assert.Equal(t, 3, got.Stats.TotalVehicles)
	assert.Equal(t, 150.0, got.Stats.MaintenanceCosts)
	assert.Equal(t, "2024-06", got.MonthlyTrips[0].Month)
	provider.AssertExpectations(t)
}

func TestRunner_PublishOnce_SummaryError(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()
	provider.On("Summary", mock.Anything).Return(nil, errors.New("store down"))

	r, err := NewRunner(provider, pub, "fleet/summary", time.Second)
	require.NoError(t, err)

	err = r.PublishOnce(context.Background())
	assert.ErrorContains(t, err, "store down")
	assert.Equal(t, 0, pub.count("fleet/summary"))
}

func TestRunner_PublishOnce_PublishError(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()
	pub.err = ErrPublishTimeout
	provider.On("Summary", mock.Anything).Return(sampleSummary(), nil)

	r, err := NewRunner(provider, pub, "fleet/summary", time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, r.PublishOnce(context.Background()), ErrPublishTimeout)
}

func TestRunner_Run(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()
	provider.On("Summary", mock.Anything).Return(sampleSummary(), nil)

	r, err := NewRunner(provider, pub, "fleet/summary", 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool { return pub.count("fleet/summary") >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunner_Run_SkipsFailedTicks(t *testing.T) {
	provider := &MockSummaryProvider{}
	pub := newFakePublisher()
	provider.On("Summary", mock.Anything).Return(nil, errors.New("boom")).Once()
	provider.On("Summary", mock.Anything).Return(sampleSummary(), nil)

	r, err := NewRunner(provider, pub, "fleet/summary", 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	assert.Eventually(t, func() bool { return pub.count("fleet/summary") >= 1 }, time.Second, 5*time.Millisecond)
}

func TestNewMQTTPublisher_RequiresBroker(t *testing.T) {
	_, err := NewMQTTPublisher(MQTTOptions{})
	assert.Error(t, err)
}

package outbox

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGallery struct {
	mock.Mock
}

func (m *mockGallery) Upload(ctx context.Context, data []byte, originalFilename, contentType string, size int64) (*entity.Image, error) {
	return nil, nil
}

func (m *mockGallery) List(ctx context.Context) ([]*entity.Image, error) {
	return nil, nil
}

func (m *mockGallery) Rename(ctx context.Context, id uuid.UUID, newName string) error {
	return nil
}

func (m *mockGallery) Delete(ctx context.Context, storeKey string) error {
	return nil
}

func (m *mockGallery) Download(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	return nil, nil, nil
}

func (m *mockGallery) DownloadThumb(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	return nil, nil, nil
}

func (m *mockGallery) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OutboxEvent), args.Error(1)
}

func (m *mockGallery) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockGallery) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockGallery) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockGallery) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	args := m.Called(ctx, maxRetries)
	return args.Error(0)
}

func (m *mockGallery) CleanupOutbox(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEvents(ctx context.Context, events []*entity.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *mockSender) Close() error {
	args := m.Called()
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

func testConfig() Config {
	return Config{
		PollInterval:        time.Hour,
		MarkFailedInterval:  time.Hour,
		CleanupInterval:     time.Hour,
		ProcessBatchTimeout: time.Second,
		BatchSize:           100,
		MaxRetries:          3,
	}
}

func pendingEvents(n int) []*entity.OutboxEvent {
	events := make([]*entity.OutboxEvent, n)
	for i := range events {
		events[i] = &entity.OutboxEvent{
			ID:          uuid.New(),
			AggregateID: uuid.New(),
			Kind:        entity.EventUploaded,
			Payload:     []byte(`{}`),
			Status:      entity.Pending,
			CreatedAt:   time.Now(),
		}
	}
	return events
}

func TestProcessEventsBatch_PublishesAndMarksProcessed(t *testing.T) {
	gallery := new(mockGallery)
	sender := new(mockSender)
	relay := New(gallery, sender, nopLogger{}, testConfig())
	events := pendingEvents(2)

	gallery.On("GetPendingEvents", mock.Anything, 3, 100).Return(events, nil)
	gallery.On("MarkAsProcessingBatch", mock.Anything, events).Return(nil)
	sender.On("SendEvents", mock.Anything, events).Return(nil)
	gallery.On("MarkAsProcessedBatch", mock.Anything, events).Return(nil)

	relay.processEventsBatch(context.Background())

	gallery.AssertExpectations(t)
	sender.AssertExpectations(t)
	gallery.AssertNotCalled(t, "IncrementRetryCountBatch", mock.Anything, mock.Anything)
}

func TestProcessEventsBatch_SendFailureBumpsRetries(t *testing.T) {
	gallery := new(mockGallery)
	sender := new(mockSender)
	relay := New(gallery, sender, nopLogger{}, testConfig())
	events := pendingEvents(1)

	gallery.On("GetPendingEvents", mock.Anything, 3, 100).Return(events, nil)
	gallery.On("MarkAsProcessingBatch", mock.Anything, events).Return(nil)
	sender.On("SendEvents", mock.Anything, events).Return(errors.New("broker unavailable"))
	gallery.On("IncrementRetryCountBatch", mock.Anything, events).Return(nil)

	relay.processEventsBatch(context.Background())

	gallery.AssertExpectations(t)
	gallery.AssertNotCalled(t, "MarkAsProcessedBatch", mock.Anything, mock.Anything)
}

func TestProcessEventsBatch_NothingPending(t *testing.T) {
	gallery := new(mockGallery)
	sender := new(mockSender)
	relay := New(gallery, sender, nopLogger{}, testConfig())

	gallery.On("GetPendingEvents", mock.Anything, 3, 100).Return([]*entity.OutboxEvent{}, nil)

	relay.processEventsBatch(context.Background())

	sender.AssertNotCalled(t, "SendEvents", mock.Anything, mock.Anything)
	gallery.AssertNotCalled(t, "MarkAsProcessingBatch", mock.Anything, mock.Anything)
}

func TestStart_Twice(t *testing.T) {
	gallery := new(mockGallery)
	sender := new(mockSender)
	relay := New(gallery, sender, nopLogger{}, testConfig())

	sender.On("Close").Return(nil)

	require.NoError(t, relay.Start(context.Background()))
	assert.Error(t, relay.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Shutdown(ctx))
}

func TestShutdown_NeverStarted(t *testing.T) {
	relay := New(new(mockGallery), new(mockSender), nopLogger{}, testConfig())

	assert.NoError(t, relay.Shutdown(context.Background()))
}

package submission

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/gateway"
	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/notify"
	"labelverse/contributor-portal/portal-console/internal/wallet"
)

// MockGateway is a mock implementation of the Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetDataset(ctx context.Context, id string) (*models.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockGateway) CreateContribution(ctx context.Context, upload gateway.ContributionUpload) (*models.Contribution, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func connectedSession(t *testing.T) wallet.Session {
	t.Helper()
	session := &wallet.StaticSession{Addr: "0xabc", Chain: wallet.SepoliaChainID}
	_, err := session.Connect(context.Background())
	require.NoError(t, err)
	return session
}

func textDataset() *models.Dataset {
	return &models.Dataset{
		ID:       "ds-text",
		Name:     "Sentiment Analysis Corpus",
		DataType: models.DataTypeText,
		Status:   models.DatasetActive,
	}
}

func audioDataset() *models.Dataset {
	return &models.Dataset{
		ID:       "ds-audio",
		Name:     "Tamil Voice Recognition",
		DataType: models.DataTypeAudio,
		Status:   models.DatasetActive,
	}
}

func newTestFlow(t *testing.T, gw Gateway, session wallet.Session) (*Flow, *notify.Feed) {
	t.Helper()
	feed := notify.NewFeed(10, zap.NewNop())
	return NewFlow(gw, session, feed, zap.NewNop()), feed
}

func TestBeginDatasetNotFound(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "missing").Return(nil, gateway.ErrNotFound)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	err := flow.Begin(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, PhaseNotFound, flow.Phase())
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

func TestSubmitEmptyTextRejectedBeforeNetwork(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(textDataset(), nil)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("   \n\t ")
	_, err := flow.Submit(context.Background())

	assert.ErrorIs(t, err, ErrMissingText)
	assert.Equal(t, PhaseReady, flow.Phase())
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

func TestSubmitMissingFileRejectedBeforeNetwork(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-audio").Return(audioDataset(), nil)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-audio"))

	_, err := flow.Submit(context.Background())

	assert.ErrorIs(t, err, ErrMissingFile)
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

func TestSubmitRequiresWallet(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(textDataset(), nil)

	session := &wallet.StaticSession{Addr: "0xabc", Chain: wallet.SepoliaChainID}
	flow, _ := newTestFlow(t, mockGW, session)
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("a perfectly fine sample")
	_, err := flow.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNoWallet)
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

func TestSubmitClosedDatasetRejected(t *testing.T) {
	closed := textDataset()
	closed.Status = models.DatasetClosed

	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(closed, nil)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("sample")
	_, err := flow.Submit(context.Background())

	assert.ErrorIs(t, err, ErrDatasetClosed)
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

func TestSubmitTextTravelsAsFilePart(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(textDataset(), nil)

	var captured gateway.ContributionUpload
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(gateway.ContributionUpload)
		}).
		Return(&models.Contribution{ID: "c-1", Status: models.VerificationPending}, nil)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("  the actual sample  ")
	flow.SetDescription("context note")
	created, err := flow.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, created.Status)
	assert.Equal(t, PhaseSucceeded, flow.Phase())

	assert.Equal(t, "0xabc", captured.UserID)
	assert.Equal(t, "ds-text", captured.DatasetID)
	assert.Equal(t, "content.txt", captured.FileName)
	assert.Equal(t, "context note", captured.Description)
	content, err := io.ReadAll(captured.File)
	require.NoError(t, err)
	assert.Equal(t, "the actual sample", string(content))

	// Success clears the form.
	assert.Empty(t, flow.form.Text)
	assert.Empty(t, flow.form.Description)
}

func TestSubmitFileUpload(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-audio").Return(audioDataset(), nil)
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Return(&models.Contribution{ID: "c-2", Status: models.VerificationPending}, nil)

	flow, feed := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-audio"))

	flow.AttachFile("recording.wav", strings.NewReader("bytes"))
	_, err := flow.Submit(context.Background())

	require.NoError(t, err)
	notifications := feed.Recent()
	require.NotEmpty(t, notifications)
	assert.Equal(t, notify.SeveritySuccess, notifications[len(notifications)-1].Severity)
}

func TestSubmitExtensionMismatchWarnsButSubmits(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-audio").Return(audioDataset(), nil)
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Return(&models.Contribution{ID: "c-3", Status: models.VerificationPending}, nil)

	flow, feed := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-audio"))

	flow.AttachFile("recording.ogg", strings.NewReader("bytes"))
	_, err := flow.Submit(context.Background())

	require.NoError(t, err)
	var warned bool
	for _, n := range feed.Recent() {
		if n.Severity == notify.SeverityWarning {
			warned = true
		}
	}
	assert.True(t, warned, "extension mismatch should warn")
}

func TestSubmitFailureEntersFailedWithServerMessage(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(textDataset(), nil)
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Return(nil, &gateway.APIError{StatusCode: 422, Message: "sample too short"})

	flow, feed := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("sample")
	_, err := flow.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, flow.Phase())

	notifications := feed.Recent()
	require.NotEmpty(t, notifications)
	last := notifications[len(notifications)-1]
	assert.Equal(t, notify.SeverityError, last.Severity)
	assert.Equal(t, "sample too short", last.Message)
}

func TestSubmitRetriesManuallyAfterFailure(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("GetDataset", mock.Anything, "ds-text").Return(textDataset(), nil)
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Return(nil, &gateway.APIError{StatusCode: 503, Message: "temporarily unavailable"}).Once()
	mockGW.On("CreateContribution", mock.Anything, mock.AnythingOfType("gateway.ContributionUpload")).
		Return(&models.Contribution{ID: "c-4", Status: models.VerificationPending}, nil)

	flow, _ := newTestFlow(t, mockGW, connectedSession(t))
	require.NoError(t, flow.Begin(context.Background(), "ds-text"))

	flow.SetText("sample")
	_, err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, flow.Phase())

	// The form is kept so a second Submit retries the same sample.
	created, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c-4", created.ID)
	assert.Equal(t, PhaseSucceeded, flow.Phase())
	mockGW.AssertNumberOfCalls(t, "CreateContribution", 2)
}

func TestSubmitRejectedWhileNotReady(t *testing.T) {
	mockGW := new(MockGateway)
	flow, _ := newTestFlow(t, mockGW, connectedSession(t))

	// Begin never ran: the flow is still loading.
	_, err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
	mockGW.AssertNotCalled(t, "CreateContribution", mock.Anything, mock.Anything)
}

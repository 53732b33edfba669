package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/notify"
)

// MockGateway is a mock implementation of the Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dataset), args.Error(1)
}

func (m *MockGateway) ListContributions(ctx context.Context) ([]models.Contribution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *MockGateway) GetContribution(ctx context.Context, id string) (*models.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockGateway) CreateDataset(ctx context.Context, draft models.DatasetDraft) (*models.Dataset, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockGateway) UpdateDataset(ctx context.Context, ds models.Dataset) (*models.Dataset, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dataset), args.Error(1)
}

func (m *MockGateway) SetContributionStatus(ctx context.Context, id string, status models.VerificationStatus) (*models.Contribution, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func newTestFlow(t *testing.T, gw Gateway) *Flow {
	t.Helper()
	return NewFlow(gw, notify.NewFeed(10, zap.NewNop()), zap.NewNop())
}

func validDraft() models.DatasetDraft {
	return models.DatasetDraft{
		Name:                "X",
		Description:         "a dataset",
		DataType:            models.DataTypeText,
		FormatRequirements:  "plain text",
		SampleCountGoal:     100,
		BaseRewardPerSample: 0.5,
	}
}

func TestCreateAppendsToSnapshot(t *testing.T) {
	mockGW := new(MockGateway)
	mockGW.On("ListDatasets", mock.Anything).Return([]models.Dataset{{ID: "ds-1"}}, nil)

	draft := validDraft()
	created := &models.Dataset{ID: "ds-2", Name: draft.Name, Status: models.DatasetActive}
	mockGW.On("CreateDataset", mock.Anything, draft).Return(created, nil)

	flow := newTestFlow(t, mockGW)
	_, err := flow.LoadDatasets(context.Background())
	require.NoError(t, err)

	result, err := flow.SubmitDatasetForm(context.Background(), CreateMode{Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, "ds-2", result.ID)

	datasets := flow.Datasets()
	require.Len(t, datasets, 2)
	assert.Equal(t, "ds-2", datasets[1].ID)
}

func TestCreateValidationFailsBeforeNetwork(t *testing.T) {
	mockGW := new(MockGateway)
	flow := newTestFlow(t, mockGW)

	draft := validDraft()
	draft.SampleCountGoal = 0
	_, err := flow.SubmitDatasetForm(context.Background(), CreateMode{Draft: draft})

	require.Error(t, err)
	mockGW.AssertNotCalled(t, "CreateDataset", mock.Anything, mock.Anything)
}

func TestEditReplacesInPlace(t *testing.T) {
	original := models.Dataset{
		ID: "ds-1", Name: "Old Name", Description: "d", DataType: models.DataTypeText,
		FormatRequirements: "fr", SampleCountGoal: 10, BaseRewardPerSample: 1,
		Status: models.DatasetActive,
	}
	edited := original
	edited.Name = "New Name"

	mockGW := new(MockGateway)
	mockGW.On("ListDatasets", mock.Anything).Return([]models.Dataset{original, {ID: "ds-2"}}, nil)
	mockGW.On("UpdateDataset", mock.Anything, edited).Return(&edited, nil)

	flow := newTestFlow(t, mockGW)
	_, err := flow.LoadDatasets(context.Background())
	require.NoError(t, err)

	_, err = flow.SubmitDatasetForm(context.Background(), EditMode{Target: edited})
	require.NoError(t, err)

	datasets := flow.Datasets()
	require.Len(t, datasets, 2)
	assert.Equal(t, "New Name", datasets[0].Name)
	assert.Equal(t, "ds-2", datasets[1].ID)
}

func TestToggleActiveSendsClosed(t *testing.T) {
	active := models.Dataset{ID: "ds-1", Status: models.DatasetActive}
	closed := active
	closed.Status = models.DatasetClosed

	mockGW := new(MockGateway)
	mockGW.On("ListDatasets", mock.Anything).Return([]models.Dataset{active}, nil)
	mockGW.On("UpdateDataset", mock.Anything, closed).Return(&closed, nil)

	flow := newTestFlow(t, mockGW)
	_, err := flow.LoadDatasets(context.Background())
	require.NoError(t, err)

	updated, err := flow.ToggleDatasetStatus(context.Background(), active)
	require.NoError(t, err)
	assert.Equal(t, models.DatasetClosed, updated.Status)
	assert.Equal(t, models.DatasetClosed, flow.Datasets()[0].Status)
	mockGW.AssertExpectations(t)
}

func TestToggleClosedSendsActive(t *testing.T) {
	closed := models.Dataset{ID: "ds-1", Status: models.DatasetClosed}
	active := closed
	active.Status = models.DatasetActive

	mockGW := new(MockGateway)
	mockGW.On("UpdateDataset", mock.Anything, active).Return(&active, nil)

	flow := newTestFlow(t, mockGW)
	updated, err := flow.ToggleDatasetStatus(context.Background(), closed)
	require.NoError(t, err)
	assert.Equal(t, models.DatasetActive, updated.Status)
}

func TestToggleNotOfferedForCompleted(t *testing.T) {
	mockGW := new(MockGateway)
	flow := newTestFlow(t, mockGW)

	_, err := flow.ToggleDatasetStatus(context.Background(), models.Dataset{
		ID: "ds-1", Status: models.DatasetCompleted,
	})

	assert.ErrorIs(t, err, ErrToggleNotOffered)
	mockGW.AssertNotCalled(t, "UpdateDataset", mock.Anything, mock.Anything)
}

func TestToggleUnknownStatusRejected(t *testing.T) {
	mockGW := new(MockGateway)
	flow := newTestFlow(t, mockGW)

	_, err := flow.ToggleDatasetStatus(context.Background(), models.Dataset{
		ID: "ds-1", Status: "ARCHIVED",
	})

	assert.ErrorIs(t, err, ErrToggleNotOffered)
	mockGW.AssertNotCalled(t, "UpdateDataset", mock.Anything, mock.Anything)
}

func TestToggleFailureLeavesSnapshotIntact(t *testing.T) {
	active := models.Dataset{ID: "ds-1", Status: models.DatasetActive}

	mockGW := new(MockGateway)
	mockGW.On("ListDatasets", mock.Anything).Return([]models.Dataset{active}, nil)
	mockGW.On("UpdateDataset", mock.Anything, mock.AnythingOfType("models.Dataset")).
		Return(nil, errors.New("connection refused"))

	flow := newTestFlow(t, mockGW)
	_, err := flow.LoadDatasets(context.Background())
	require.NoError(t, err)

	_, err = flow.ToggleDatasetStatus(context.Background(), active)
	require.Error(t, err)
	assert.Equal(t, models.DatasetActive, flow.Datasets()[0].Status)
}

func TestResolvePendingToVerified(t *testing.T) {
	pending := models.Contribution{ID: "c-1", Status: models.VerificationPending}
	verified := pending
	verified.Status = models.VerificationVerified

	mockGW := new(MockGateway)
	mockGW.On("ListContributions", mock.Anything).Return([]models.Contribution{pending}, nil)
	mockGW.On("SetContributionStatus", mock.Anything, "c-1", models.VerificationVerified).
		Return(&verified, nil)

	flow := newTestFlow(t, mockGW)
	_, err := flow.LoadContributions(context.Background())
	require.NoError(t, err)

	updated, err := flow.Resolve(context.Background(), pending, models.VerificationVerified)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, updated.Status)
	assert.Equal(t, models.VerificationVerified, flow.Contributions()[0].Status)
}

func TestResolveSameStatusSendsNoRequest(t *testing.T) {
	mockGW := new(MockGateway)
	flow := newTestFlow(t, mockGW)

	already := models.Contribution{ID: "c-1", Status: models.VerificationVerified}
	updated, err := flow.Resolve(context.Background(), already, models.VerificationVerified)

	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, updated.Status)
	mockGW.AssertNotCalled(t, "SetContributionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveTerminalToOtherTerminalRejected(t *testing.T) {
	mockGW := new(MockGateway)
	flow := newTestFlow(t, mockGW)

	rejected := models.Contribution{ID: "c-1", Status: models.VerificationRejected}
	_, err := flow.Resolve(context.Background(), rejected, models.VerificationVerified)

	assert.ErrorIs(t, err, ErrInvalidResolution)
	mockGW.AssertNotCalled(t, "SetContributionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestFormModeValidation(t *testing.T) {
	tests := []struct {
		name    string
		mode    FormMode
		wantErr bool
	}{
		{"valid create", CreateMode{Draft: validDraft()}, false},
		{"missing name", CreateMode{Draft: models.DatasetDraft{Description: "d", DataType: models.DataTypeText, FormatRequirements: "fr", SampleCountGoal: 1}}, true},
		{"bad data type", CreateMode{Draft: models.DatasetDraft{Name: "n", Description: "d", DataType: "BINARY", FormatRequirements: "fr", SampleCountGoal: 1}}, true},
		{"negative reward", CreateMode{Draft: models.DatasetDraft{Name: "n", Description: "d", DataType: models.DataTypeText, FormatRequirements: "fr", SampleCountGoal: 1, BaseRewardPerSample: -1}}, true},
		{"edit without id", EditMode{Target: models.Dataset{Name: "n", Description: "d", DataType: models.DataTypeText, FormatRequirements: "fr", SampleCountGoal: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

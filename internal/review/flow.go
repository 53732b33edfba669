package review

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/gateway"
	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/notify"
	"labelverse/contributor-portal/portal-console/pkg/workflows"
)

var (
	// ErrToggleNotOffered is returned when a status toggle is requested for a
	// dataset the toggle does not apply to (COMPLETED).
	ErrToggleNotOffered = errors.New("status toggle is not offered for this dataset")

	// ErrInvalidResolution is returned when a verification resolve targets a
	// status the contribution cannot move to.
	ErrInvalidResolution = errors.New("verification status transition not allowed")
)

// Gateway is the slice of the API client the review flow depends on.
type Gateway interface {
	ListDatasets(ctx context.Context) ([]models.Dataset, error)
	ListContributions(ctx context.Context) ([]models.Contribution, error)
	GetContribution(ctx context.Context, id string) (*models.Contribution, error)
	CreateDataset(ctx context.Context, draft models.DatasetDraft) (*models.Dataset, error)
	UpdateDataset(ctx context.Context, ds models.Dataset) (*models.Dataset, error)
	SetContributionStatus(ctx context.Context, id string, status models.VerificationStatus) (*models.Contribution, error)
}

// Flow lets an operator manage datasets and resolve contribution
// verification. It keeps an in-memory snapshot of the lists it has loaded;
// every mutation patches the snapshot only after the gateway confirms it, so
// a failed call leaves prior state intact. One fetch happens per explicit
// load call; there is no background refresh.
type Flow struct {
	gateway      Gateway
	notifier     notify.Notifier
	logger       *zap.Logger
	lifecycle    *workflows.StateMachine
	verification *workflows.StateMachine

	datasets      []models.Dataset
	contributions []models.Contribution
}

// NewFlow creates an admin review flow.
func NewFlow(gw Gateway, notifier notify.Notifier, logger *zap.Logger) *Flow {
	return &Flow{
		gateway:      gw,
		notifier:     notifier,
		logger:       logger,
		lifecycle:    workflows.NewDatasetStateMachine(),
		verification: workflows.NewVerificationStateMachine(),
	}
}

// Datasets returns the current dataset snapshot.
func (f *Flow) Datasets() []models.Dataset { return f.datasets }

// Contributions returns the current contribution snapshot.
func (f *Flow) Contributions() []models.Contribution { return f.contributions }

// LoadDatasets fetches the dataset list once and replaces the snapshot.
func (f *Flow) LoadDatasets(ctx context.Context) ([]models.Dataset, error) {
	datasets, err := f.gateway.ListDatasets(ctx)
	if err != nil {
		f.notifier.Notify(notify.SeverityError, "Error", "Failed to load datasets.")
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	f.datasets = datasets
	return datasets, nil
}

// LoadContributions fetches the contribution list once and replaces the snapshot.
func (f *Flow) LoadContributions(ctx context.Context) ([]models.Contribution, error) {
	contributions, err := f.gateway.ListContributions(ctx)
	if err != nil {
		f.notifier.Notify(notify.SeverityError, "Error", "Failed to load contributions.")
		return nil, fmt.Errorf("load contributions: %w", err)
	}
	f.contributions = contributions
	return contributions, nil
}

// SubmitDatasetForm creates or updates a dataset depending on the form mode.
// Create appends the returned record to the snapshot; Edit replaces the
// matching record in place by id.
func (f *Flow) SubmitDatasetForm(ctx context.Context, mode FormMode) (*models.Dataset, error) {
	if err := Validate(mode); err != nil {
		f.notifier.Notify(notify.SeverityError, "Error", err.Error())
		return nil, err
	}

	switch m := mode.(type) {
	case CreateMode:
		created, err := f.gateway.CreateDataset(ctx, m.Draft)
		if err != nil {
			f.notifyGatewayError("Failed to create dataset.", err)
			return nil, fmt.Errorf("create dataset: %w", err)
		}
		f.datasets = append(f.datasets, *created)
		f.notifier.Notify(notify.SeveritySuccess, "Success!", "Dataset created successfully.")
		return created, nil

	case EditMode:
		updated, err := f.gateway.UpdateDataset(ctx, m.Target)
		if err != nil {
			f.notifyGatewayError("Failed to update dataset.", err)
			return nil, fmt.Errorf("update dataset: %w", err)
		}
		f.patchDataset(*updated)
		f.notifier.Notify(notify.SeveritySuccess, "Success!", "Dataset updated successfully.")
		return updated, nil

	default:
		return nil, errUnknownFormMode
	}
}

// ToggleDatasetStatus flips a dataset between ACTIVE and CLOSED. The target
// status is computed from the snapshot passed in; the snapshot entry is only
// patched from the server's response, never optimistically.
func (f *Flow) ToggleDatasetStatus(ctx context.Context, ds models.Dataset) (*models.Dataset, error) {
	target, ok := workflows.ToggleTarget(ds.Status)
	if !ok || !f.lifecycle.CanTransition(string(ds.Status), string(target)) {
		return nil, ErrToggleNotOffered
	}

	ds.Status = target
	updated, err := f.gateway.UpdateDataset(ctx, ds)
	if err != nil {
		f.notifyGatewayError("Failed to update dataset status.", err)
		return nil, fmt.Errorf("toggle dataset %s: %w", ds.ID, err)
	}

	f.patchDataset(*updated)
	f.notifier.Notify(notify.SeveritySuccess, "Status Updated",
		fmt.Sprintf("Dataset status changed to %s", updated.Status))
	return updated, nil
}

// Resolve sets a contribution's verification status to VERIFIED or REJECTED.
// Resolving to the status the contribution already holds is a local no-op:
// no request is sent. Terminal statuses accept no other transition.
func (f *Flow) Resolve(ctx context.Context, contribution models.Contribution, status models.VerificationStatus) (*models.Contribution, error) {
	if contribution.Status == status {
		return &contribution, nil
	}
	if !f.verification.CanTransition(string(contribution.Status), string(status)) {
		return nil, fmt.Errorf("resolve contribution %s from %s to %s: %w",
			contribution.ID, contribution.Status, status, ErrInvalidResolution)
	}

	updated, err := f.gateway.SetContributionStatus(ctx, contribution.ID, status)
	if err != nil {
		f.notifyGatewayError("Failed to update verification status.", err)
		return nil, fmt.Errorf("resolve contribution %s: %w", contribution.ID, err)
	}

	f.patchContribution(*updated)
	f.logger.Info("contribution resolved",
		zap.String("contribution_id", updated.ID),
		zap.String("status", string(updated.Status)))
	f.notifier.Notify(notify.SeveritySuccess, "Status Updated",
		fmt.Sprintf("Contribution marked as %s", updated.Status))
	return updated, nil
}

func (f *Flow) patchDataset(updated models.Dataset) {
	for i := range f.datasets {
		if f.datasets[i].ID == updated.ID {
			f.datasets[i] = updated
			return
		}
	}
}

func (f *Flow) patchContribution(updated models.Contribution) {
	for i := range f.contributions {
		if f.contributions[i].ID == updated.ID {
			f.contributions[i] = updated
			return
		}
	}
}

func (f *Flow) notifyGatewayError(fallback string, err error) {
	message := fallback
	if serverMsg, ok := gateway.ServerMessage(err); ok {
		message = serverMsg
	}
	f.notifier.Notify(notify.SeverityError, "Error", message)
}

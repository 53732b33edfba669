package submission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/gateway"
	"labelverse/contributor-portal/portal-console/internal/models"
	"labelverse/contributor-portal/portal-console/internal/notify"
	"labelverse/contributor-portal/portal-console/internal/wallet"
)

// Phase is the submission flow's state.
type Phase string

const (
	PhaseLoadingDataset Phase = "loading_dataset"
	PhaseReady          Phase = "ready"
	PhaseValidating     Phase = "validating"
	PhaseSubmitting     Phase = "submitting"
	PhaseSucceeded      Phase = "succeeded"
	PhaseFailed         Phase = "failed"
	PhaseNotFound       Phase = "not_found"
)

// Validation failures. All of them are raised before any network call.
var (
	ErrMissingFile   = errors.New("a file is required for this dataset")
	ErrMissingText   = errors.New("text content is required for this dataset")
	ErrNoWallet      = errors.New("connect a wallet before submitting")
	ErrDatasetClosed = errors.New("dataset is not accepting contributions")
	ErrNotReady      = errors.New("submission flow is not ready")
)

// Gateway is the slice of the API client the flow depends on.
type Gateway interface {
	GetDataset(ctx context.Context, id string) (*models.Dataset, error)
	CreateContribution(ctx context.Context, upload gateway.ContributionUpload) (*models.Contribution, error)
}

// Form holds the user-supplied sample. TEXT datasets take free text; all
// other data types take exactly one file. Description is optional either way.
type Form struct {
	Text        string
	FileName    string
	FileContent io.Reader
	Description string
}

// Flow collects one contribution against one dataset, validates it against
// the dataset's constraints and submits it to the gateway. A Flow serves a
// single user session and is not safe for concurrent use.
type Flow struct {
	gateway  Gateway
	session  wallet.Session
	notifier notify.Notifier
	logger   *zap.Logger

	phase   Phase
	dataset *models.Dataset
	form    Form
}

// NewFlow creates a submission flow. Begin must be called before anything else.
func NewFlow(gw Gateway, session wallet.Session, notifier notify.Notifier, logger *zap.Logger) *Flow {
	return &Flow{
		gateway:  gw,
		session:  session,
		notifier: notifier,
		logger:   logger,
		phase:    PhaseLoadingDataset,
	}
}

// Phase returns the flow's current state.
func (f *Flow) Phase() Phase { return f.phase }

// Dataset returns the loaded dataset, nil until Begin succeeds.
func (f *Flow) Dataset() *models.Dataset { return f.dataset }

// Begin fetches the target dataset. An absent dataset moves the flow to the
// terminal NotFound state, whose only recovery is navigating back to the
// dataset list.
func (f *Flow) Begin(ctx context.Context, datasetID string) error {
	f.phase = PhaseLoadingDataset

	dataset, err := f.gateway.GetDataset(ctx, datasetID)
	if err != nil {
		f.phase = PhaseNotFound
		if errors.Is(err, gateway.ErrNotFound) {
			f.notifier.Notify(notify.SeverityError, "Dataset Not Found",
				"The requested dataset could not be found.")
			return fmt.Errorf("begin submission: %w", err)
		}
		f.notifier.Notify(notify.SeverityError, "Error", "Failed to load dataset.")
		return fmt.Errorf("begin submission: %w", err)
	}

	f.dataset = dataset
	f.phase = PhaseReady
	return nil
}

// SetText sets the free-text sample for TEXT datasets.
func (f *Flow) SetText(text string) { f.form.Text = text }

// AttachFile sets the sample file for non-TEXT datasets.
func (f *Flow) AttachFile(name string, content io.Reader) {
	f.form.FileName = name
	f.form.FileContent = content
}

// SetDescription sets the optional description.
func (f *Flow) SetDescription(description string) { f.form.Description = description }

// validate enforces the pre-submit contract. The extension check is advisory:
// a mismatch emits a warning but never blocks the submission.
func (f *Flow) validate() error {
	if f.dataset.DataType == models.DataTypeText {
		if strings.TrimSpace(f.form.Text) == "" {
			return ErrMissingText
		}
	} else {
		if f.form.FileContent == nil || f.form.FileName == "" {
			return ErrMissingFile
		}
		if !extensionAccepted(f.dataset.DataType, f.form.FileName) {
			f.notifier.Notify(notify.SeverityWarning, "File Type",
				fmt.Sprintf("%s does not match the usual %s extensions (%s).",
					f.form.FileName, f.dataset.DataType,
					strings.Join(models.AcceptedExtensions(f.dataset.DataType), " ")))
		}
	}
	if _, connected := f.session.Account(); !connected {
		return ErrNoWallet
	}
	if !f.dataset.AcceptsContributions() {
		return ErrDatasetClosed
	}
	return nil
}

// Submit validates the form and issues exactly one create call. While a
// submission is in flight the flow is in neither Ready nor Failed, so a
// second Submit is rejected without touching the network. A failed
// submission moves the flow to Failed, from which the user may edit the
// form and submit again; there is no automatic retry.
func (f *Flow) Submit(ctx context.Context) (*models.Contribution, error) {
	if f.phase != PhaseReady && f.phase != PhaseFailed {
		return nil, ErrNotReady
	}

	f.phase = PhaseValidating
	if err := f.validate(); err != nil {
		f.phase = PhaseReady
		f.notifier.Notify(notify.SeverityError, "Error", err.Error())
		return nil, err
	}

	account, _ := f.session.Account()
	attemptID := uuid.New()
	f.logger.Info("submitting contribution",
		zap.String("attempt_id", attemptID.String()),
		zap.String("dataset_id", f.dataset.ID),
		zap.String("user_id", account.Address))

	f.phase = PhaseSubmitting
	created, err := f.gateway.CreateContribution(ctx, f.buildUpload(account.Address))
	if err != nil {
		f.phase = PhaseFailed
		message := "Failed to submit contribution. Please try again."
		if serverMsg, ok := gateway.ServerMessage(err); ok {
			message = serverMsg
		}
		f.notifier.Notify(notify.SeverityError, "Error", message)
		return nil, fmt.Errorf("submit contribution: %w", err)
	}

	f.form = Form{}
	f.phase = PhaseSucceeded
	f.notifier.Notify(notify.SeveritySuccess, "Success!",
		"Your contribution has been submitted for verification.")
	return created, nil
}

// buildUpload packages the sample as a multipart upload. Text samples travel
// as a content.txt file part so the wire contract has one shape for every
// data type.
func (f *Flow) buildUpload(userID string) gateway.ContributionUpload {
	upload := gateway.ContributionUpload{
		UserID:      userID,
		DatasetID:   f.dataset.ID,
		Description: f.form.Description,
	}
	if f.dataset.DataType == models.DataTypeText {
		upload.FileName = "content.txt"
		upload.File = strings.NewReader(strings.TrimSpace(f.form.Text))
	} else {
		upload.FileName = f.form.FileName
		upload.File = f.form.FileContent
	}
	return upload
}

func extensionAccepted(dt models.DataType, fileName string) bool {
	accepted := models.AcceptedExtensions(dt)
	if len(accepted) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, candidate := range accepted {
		if ext == candidate {
			return true
		}
	}
	return false
}

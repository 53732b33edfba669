package models

import "time"

// DataType identifies the kind of sample a dataset collects.
type DataType string

const (
	DataTypeText  DataType = "TEXT"
	DataTypeImage DataType = "IMAGE"
	DataTypeAudio DataType = "AUDIO"
	DataTypeVideo DataType = "VIDEO"
)

// Valid reports whether dt is one of the known data types.
func (dt DataType) Valid() bool {
	switch dt {
	case DataTypeText, DataTypeImage, DataTypeAudio, DataTypeVideo:
		return true
	}
	return false
}

// DatasetStatus is the lifecycle state of a dataset. COMPLETED is only ever
// set by the backend when a dataset reaches its sample goal; the client
// reflects it but never computes it.
type DatasetStatus string

const (
	DatasetActive    DatasetStatus = "ACTIVE"
	DatasetClosed    DatasetStatus = "CLOSED"
	DatasetCompleted DatasetStatus = "COMPLETED"
)

// VerificationStatus is the review state of a contribution.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Terminal reports whether the status accepts no further transitions.
func (vs VerificationStatus) Terminal() bool {
	return vs == VerificationVerified || vs == VerificationRejected
}

// Dataset is a named collection target with a sample goal and per-sample reward.
type Dataset struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	DataType            DataType      `json:"dataType"`
	FormatRequirements  string        `json:"formatRequirements"`
	SampleCountGoal     int           `json:"sampleCountGoal"`
	CurrentSampleCount  int           `json:"currentSampleCount"`
	BaseRewardPerSample float64       `json:"baseRewardPerSample"`
	CreatedAt           time.Time     `json:"createdAt"`
	Status              DatasetStatus `json:"status"`
}

// AcceptsContributions reports whether new contributions may be submitted
// against the dataset. This mirrors what the backend enforces; the client
// checks it up front to fail before issuing a request.
func (d *Dataset) AcceptsContributions() bool {
	return d.Status == DatasetActive
}

// DatasetDraft is the payload for creating a dataset. The server assigns
// id, createdAt, currentSampleCount and the initial status.
type DatasetDraft struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	DataType            DataType `json:"dataType"`
	FormatRequirements  string   `json:"formatRequirements"`
	SampleCountGoal     int      `json:"sampleCountGoal"`
	BaseRewardPerSample float64  `json:"baseRewardPerSample"`
}

// Contribution is one user-submitted sample against a dataset.
// VerificationScore is on a 0-10 scale where 0 means not yet scored.
type Contribution struct {
	ID                string             `json:"id"`
	UserID            string             `json:"userId"`
	DatasetID         string             `json:"datasetId"`
	URL               string             `json:"url,omitempty"`
	DataType          DataType           `json:"dataType"`
	UploadedAt        time.Time          `json:"uploadedAt"`
	VerificationScore float64            `json:"verificationScore"`
	Status            VerificationStatus `json:"status"`
	Description       string             `json:"description,omitempty"`
}

// VerificationLog records which model scored a contribution. Produced by the
// backend's verification pipeline; defined here for wire completeness only.
type VerificationLog struct {
	ID             string    `json:"id"`
	ContributionID string    `json:"contributionId"`
	ModelUsed      string    `json:"modelUsed"`
	Score          float64   `json:"score"`
	Reason         string    `json:"reason"`
	VerifiedAt     time.Time `json:"verifiedAt"`
}

// RewardTransaction records a token transfer issued for a verified
// contribution. Produced externally; defined for wire completeness only.
type RewardTransaction struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ContributionID string    `json:"contributionId"`
	TokensAwarded  float64   `json:"tokensAwarded"`
	Timestamp      time.Time `json:"timestamp"`
	TxHash         string    `json:"txHash"`
}

// User is a wallet-identified actor. Aggregates are maintained entirely by
// the backend; the client only displays them.
type User struct {
	ID                 string    `json:"id"`
	WalletAddress      string    `json:"walletAddress"`
	Username           string    `json:"username,omitempty"`
	JoinedAt           time.Time `json:"joinedAt"`
	TotalScore         float64   `json:"totalScore"`
	TotalContributions int       `json:"totalContributions"`
	TokenBalance       float64   `json:"tokenBalance"`
}

// acceptedExtensions soft-filters uploads per data type. Advisory only: a
// mismatch is surfaced as a warning, never a hard gate.
var acceptedExtensions = map[DataType][]string{
	DataTypeAudio: {".wav", ".mp3", ".m4a"},
	DataTypeImage: {".png", ".jpg", ".jpeg"},
	DataTypeVideo: {".mp4", ".mov", ".avi"},
	DataTypeText:  {},
}

// AcceptedExtensions returns the advisory file extension filter for a data type.
func AcceptedExtensions(dt DataType) []string {
	return acceptedExtensions[dt]
}

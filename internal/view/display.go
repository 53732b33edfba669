package view

import "labelverse/contributor-portal/portal-console/internal/models"

// Badge describes how a status is rendered: a label and an ANSI color used
// by the console output.
type Badge struct {
	Label string
	Color string
}

// ANSI color codes used by the badge tables.
const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// Reset terminates a badge's color sequence.
const Reset = "\033[0m"

var neutralBadge = Badge{Label: "UNKNOWN", Color: colorGray}

// datasetBadges is total over DatasetStatus; unknown values fall back to the
// neutral badge.
var datasetBadges = map[models.DatasetStatus]Badge{
	models.DatasetActive:    {Label: "ACTIVE", Color: colorGreen},
	models.DatasetClosed:    {Label: "CLOSED", Color: colorGray},
	models.DatasetCompleted: {Label: "COMPLETED", Color: colorBlue},
}

var verificationBadges = map[models.VerificationStatus]Badge{
	models.VerificationPending:  {Label: "PENDING", Color: colorYellow},
	models.VerificationVerified: {Label: "VERIFIED", Color: colorGreen},
	models.VerificationRejected: {Label: "REJECTED", Color: colorRed},
}

// DataTypeDisplay describes how a data type is presented, including the
// advisory file filter shown next to upload prompts.
type DataTypeDisplay struct {
	Label  string
	Icon   string
	Accept string
}

var dataTypeDisplays = map[models.DataType]DataTypeDisplay{
	models.DataTypeText:  {Label: "Text", Icon: "📄", Accept: ""},
	models.DataTypeImage: {Label: "Image", Icon: "🖼", Accept: ".png,.jpg,.jpeg"},
	models.DataTypeAudio: {Label: "Audio", Icon: "🎤", Accept: ".wav,.mp3,.m4a"},
	models.DataTypeVideo: {Label: "Video", Icon: "🎬", Accept: ".mp4,.mov,.avi"},
}

// DatasetBadge returns the display badge for a dataset status.
func DatasetBadge(status models.DatasetStatus) Badge {
	if badge, ok := datasetBadges[status]; ok {
		return badge
	}
	return neutralBadge
}

// VerificationBadge returns the display badge for a verification status.
func VerificationBadge(status models.VerificationStatus) Badge {
	if badge, ok := verificationBadges[status]; ok {
		return badge
	}
	return neutralBadge
}

// ForDataType returns the display attributes for a data type.
func ForDataType(dt models.DataType) DataTypeDisplay {
	if display, ok := dataTypeDisplays[dt]; ok {
		return display
	}
	return DataTypeDisplay{Label: string(dt), Icon: "📄"}
}

// ToggleActionLabel names the status-toggle action shown for a dataset, or
// returns false when the toggle is not offered.
func ToggleActionLabel(status models.DatasetStatus) (string, bool) {
	switch status {
	case models.DatasetActive:
		return "Close", true
	case models.DatasetClosed:
		return "Activate", true
	default:
		return "", false
	}
}

package review

import (
	"errors"
	"fmt"

	"labelverse/contributor-portal/portal-console/internal/models"
)

// FormMode discriminates the dataset form between creating a new dataset and
// editing an existing one, so each handler operates on one unambiguous
// payload instead of branching on an "is editing" flag.
type FormMode interface {
	isFormMode()
}

// CreateMode carries the draft for a new dataset.
type CreateMode struct {
	Draft models.DatasetDraft
}

// EditMode carries the full record being edited, keyed by its id.
type EditMode struct {
	Target models.Dataset
}

func (CreateMode) isFormMode() {}
func (EditMode) isFormMode()   {}

var errUnknownFormMode = errors.New("unknown form mode")

// validateFields enforces the required dataset fields shared by both modes.
// There is deliberately no check that formatRequirements matches dataType.
func validateFields(name, description string, dataType models.DataType, formatRequirements string, sampleCountGoal int, baseRewardPerSample float64) error {
	switch {
	case name == "":
		return fmt.Errorf("name is required")
	case description == "":
		return fmt.Errorf("description is required")
	case !dataType.Valid():
		return fmt.Errorf("data type %q is not valid", dataType)
	case formatRequirements == "":
		return fmt.Errorf("format requirements are required")
	case sampleCountGoal <= 0:
		return fmt.Errorf("sample count goal must be a positive integer")
	case baseRewardPerSample < 0:
		return fmt.Errorf("base reward per sample must not be negative")
	}
	return nil
}

// Validate checks the form payload for the given mode.
func Validate(mode FormMode) error {
	switch m := mode.(type) {
	case CreateMode:
		d := m.Draft
		return validateFields(d.Name, d.Description, d.DataType, d.FormatRequirements, d.SampleCountGoal, d.BaseRewardPerSample)
	case EditMode:
		t := m.Target
		if t.ID == "" {
			return fmt.Errorf("edit target has no id")
		}
		return validateFields(t.Name, t.Description, t.DataType, t.FormatRequirements, t.SampleCountGoal, t.BaseRewardPerSample)
	default:
		return errUnknownFormMode
	}
}

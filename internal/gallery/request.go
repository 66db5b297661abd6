package gallery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SaveRequest identifies whose images are being saved and where.
type SaveRequest struct {
	ClassID        string `json:"class_id" validate:"required,excludesall=/\\"`
	Name           string `json:"name" validate:"required,excludesall=/\\"`
	DestinationDir string `json:"-" validate:"required"`
}

// Validate trims the identifying fields and checks them against the struct tags.
func (r *SaveRequest) Validate() error {
	r.ClassID = strings.TrimSpace(r.ClassID)
	r.Name = strings.TrimSpace(r.Name)
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// uniquePath returns {dest}/{class}_{name}_{uuid}.png.
func (r SaveRequest) uniquePath() string {
	return filepath.Join(r.DestinationDir, fmt.Sprintf("%s_%s_%s.png", r.ClassID, r.Name, uuid.NewString()))
}

// SelectedPath returns {dest}/{class}_{name}_Selected.png.
func (r SaveRequest) SelectedPath() string {
	return filepath.Join(r.DestinationDir, fmt.Sprintf("%s_%s_Selected.png", r.ClassID, r.Name))
}

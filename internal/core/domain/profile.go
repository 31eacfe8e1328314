package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Profile
// =============================================================================

// Profile is a named, saved configuration snapshot. Profiles let an operator
// regenerate a bundle later with the same credentials instead of retyping
// them or generating fresh ones.
type Profile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Config    StackConfig `json:"config"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewProfile creates a profile around a configuration snapshot. An empty
// name falls back to the configuration's project name.
func NewProfile(name string, cfg StackConfig) *Profile {
	if name == "" {
		name = cfg.ProjectName
	}
	now := time.Now().UTC()
	return &Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the update timestamp.
func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

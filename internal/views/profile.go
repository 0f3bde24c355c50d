package views

import (
	"context"

	apperrors "business-dashboard/internal/common/errors"
	"business-dashboard/internal/models"
)

// ProfileField is one editable text field of the profile form.
type ProfileField struct {
	Name  string
	Label string
}

// ProfileFields lists the editable fields in form order.
var ProfileFields = []ProfileField{
	{Name: "name", Label: "Business Name"},
	{Name: "category", Label: "Category"},
	{Name: "address", Label: "Address"},
	{Name: "phone", Label: "Phone Number"},
	{Name: "website", Label: "Website"},
}

// ProfileEditor holds the edit form for the business profile. Business hours are
// shown but not editable.
type ProfileEditor struct {
	store   ProfileStore
	current *models.Profile
	form    models.Profile
	editing bool
}

func NewProfileEditor(store ProfileStore) *ProfileEditor {
	e := &ProfileEditor{store: store}
	e.Sync()
	return e
}

// Sync copies the stored profile into the form whenever the stored profile changed.
func (e *ProfileEditor) Sync() {
	snap := e.store.Snapshot()
	if snap.Profile == nil {
		e.current = nil
		e.form = models.Profile{}
		e.editing = false
		return
	}
	if e.current != nil && profilesEqual(*e.current, *snap.Profile) {
		return
	}
	e.current = snap.Profile
	e.form = snap.Profile.Clone()
}

// Profile returns the stored profile, false while none is loaded.
func (e *ProfileEditor) Profile() (models.Profile, bool) {
	if e.current == nil {
		return models.Profile{}, false
	}
	return e.current.Clone(), true
}

func (e *ProfileEditor) Form() models.Profile {
	return e.form.Clone()
}

func (e *ProfileEditor) Editing() bool {
	return e.editing
}

func (e *ProfileEditor) BeginEdit() error {
	if e.current == nil {
		return apperrors.NewInvalidInputError("profile", "profile not loaded")
	}
	e.form = e.current.Clone()
	e.editing = true
	return nil
}

// SetField changes one form field by its name from ProfileFields.
func (e *ProfileEditor) SetField(name, value string) error {
	if !e.editing {
		return apperrors.NewInvalidInputError("profile", "not editing")
	}
	switch name {
	case "name":
		e.form.Name = value
	case "category":
		e.form.Category = value
	case "address":
		e.form.Address = value
	case "phone":
		e.form.Phone = value
	case "website":
		e.form.Website = value
	default:
		return apperrors.NewInvalidInputError(name, "unknown profile field")
	}
	return nil
}

// Cancel discards form edits.
func (e *ProfileEditor) Cancel() {
	if e.current != nil {
		e.form = e.current.Clone()
	}
	e.editing = false
}

// Save sends the form and leaves edit mode. On failure the form reverts to the
// stored profile and the error is returned.
func (e *ProfileEditor) Save(ctx context.Context) error {
	if !e.editing {
		return nil
	}
	e.editing = false

	updated, err := e.store.UpdateProfile(ctx, e.form.Clone())
	if err != nil {
		e.Cancel()
		return err
	}
	e.current = &updated
	e.form = updated.Clone()
	return nil
}

func profilesEqual(a, b models.Profile) bool {
	if a.Name != b.Name || a.Category != b.Category || a.Address != b.Address ||
		a.Phone != b.Phone || a.Website != b.Website || len(a.Hours) != len(b.Hours) {
		return false
	}
	for i := range a.Hours {
		if a.Hours[i] != b.Hours[i] {
			return false
		}
	}
	return true
}

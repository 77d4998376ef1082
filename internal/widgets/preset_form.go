package widgets

import (
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
)

// PresetForm is the local state of the weekly preset editor
type PresetForm struct {
	ID         int
	DayOfWeek  int
	MealType   models.MealType
	Attending  bool
	LatePlate  bool
	Notes      string
	PickupTime string
	Enabled    bool
}

// NewPresetForm fills the form from an existing preset, or the defaults for
// a new one: attending, enabled, Monday dinner
func NewPresetForm(existing *models.WeeklyPreset) *PresetForm {
	if existing == nil {
		return &PresetForm{
			MealType:  models.MealTypeDinner,
			Attending: true,
			Enabled:   true,
		}
	}

	f := &PresetForm{
		ID:        existing.ID,
		DayOfWeek: existing.DayOfWeek,
		MealType:  existing.MealType,
		Attending: existing.Attending,
		LatePlate: existing.LatePlate,
		Notes:     existing.LatePlateNotes,
		Enabled:   existing.Enabled,
	}
	if existing.LatePlatePickupTime != nil {
		// the server may send seconds
		pickup := *existing.LatePlatePickupTime
		if len(pickup) > 5 {
			pickup = pickup[:5]
		}
		f.PickupTime = pickup
	}
	return f
}

// SetAttending checks or clears attending; checking it clears the late plate
func (f *PresetForm) SetAttending(on bool) {
	f.Attending = on
	if on {
		f.LatePlate = false
	}
}

// SetLatePlate checks or clears the late plate; checking it clears attending
func (f *PresetForm) SetLatePlate(on bool) {
	f.LatePlate = on
	if on {
		f.Attending = false
	}
}

// Input converts the form into a save request
func (f *PresetForm) Input() *presets.SaveInput {
	in := &presets.SaveInput{
		ID:        f.ID,
		DayOfWeek: f.DayOfWeek,
		MealType:  f.MealType,
		Attending: f.Attending,
		LatePlate: f.LatePlate,
		Enabled:   f.Enabled,
	}
	if f.LatePlate {
		in.Notes = f.Notes
		in.PickupTime = f.PickupTime
	}
	return in
}

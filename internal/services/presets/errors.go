package presets

// PresetError is a custom error type for preset errors
type PresetError string

// Error implements the error interface
func (e PresetError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             PresetError = "config cannot be nil"
	ErrNilRequester          PresetError = "requester cannot be nil"
	ErrNilInput              PresetError = "input cannot be nil"
	ErrInvalidDay            PresetError = "day must be between Monday (0) and Sunday (6)"
	ErrInvalidMealType       PresetError = "meal type must be Lunch or Dinner"
	ErrHiddenSlot            PresetError = "no meal is served in that slot"
	ErrAttendingAndLatePlate PresetError = "a preset cannot both attend and request a late plate"
	ErrInvalidPickupTime     PresetError = "pickup time must look like 18:30"
	ErrPresetNotFound        PresetError = "preset not found"
)

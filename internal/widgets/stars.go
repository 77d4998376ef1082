package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// StarCounts splits a rating into full, half and empty stars out of five
type StarCounts struct {
	Full  int
	Half  int
	Empty int
}

// Stars rounds a rating down to the nearest half star
func Stars(rating float64) StarCounts {
	rating = math.Max(0, math.Min(models.MaxRating, rating))
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return StarCounts{
		Full:  full,
		Half:  half,
		Empty: int(models.MaxRating) - full - half,
	}
}

// String draws the stars as text for chat and terminal surfaces
func (c StarCounts) String() string {
	return strings.Repeat("★", c.Full) + strings.Repeat("½", c.Half) + strings.Repeat("☆", c.Empty)
}

// FormatRating renders a rating with one decimal, e.g. ★ 4.5
func FormatRating(rating float64) string {
	return fmt.Sprintf("★ %.1f", rating)
}

// StarPicker is the rating input of the review dialog. While the pointer
// hovers a star the preview is shown instead of the chosen value.
type StarPicker struct {
	value float64
	hover float64
}

// NewStarPicker starts from an existing rating, or empty when zero
func NewStarPicker(initial float64) *StarPicker {
	p := &StarPicker{}
	if models.ValidRating(initial) {
		p.value = initial
	}
	return p
}

// Set chooses a rating. Values off the half-star scale are rejected.
func (p *StarPicker) Set(rating float64) bool {
	if !models.ValidRating(rating) {
		return false
	}
	p.value = rating
	p.hover = 0
	return true
}

// Hover previews a rating without choosing it
func (p *StarPicker) Hover(rating float64) {
	if models.ValidRating(rating) {
		p.hover = rating
	}
}

// Leave ends the hover preview
func (p *StarPicker) Leave() {
	p.hover = 0
}

// Value is the chosen rating, zero when none
func (p *StarPicker) Value() float64 {
	return p.value
}

// Display is what the stars should currently show
func (p *StarPicker) Display() float64 {
	if p.hover > 0 {
		return p.hover
	}
	return p.value
}

// Ready reports whether a rating has been chosen
func (p *StarPicker) Ready() bool {
	return p.value > 0
}

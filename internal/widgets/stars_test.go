package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   StarCounts
		text   string
	}{
		{rating: 5, want: StarCounts{Full: 5}, text: "★★★★★"},
		{rating: 3.5, want: StarCounts{Full: 3, Half: 1, Empty: 1}, text: "★★★½☆"},
		{rating: 3.7, want: StarCounts{Full: 3, Half: 1, Empty: 1}, text: "★★★½☆"},
		{rating: 1.2, want: StarCounts{Full: 1, Empty: 4}, text: "★☆☆☆☆"},
		{rating: 0, want: StarCounts{Empty: 5}, text: "☆☆☆☆☆"},
		{rating: 9, want: StarCounts{Full: 5}, text: "★★★★★"},
	}

	for _, tt := range tests {
		got := Stars(tt.rating)
		assert.Equal(t, tt.want, got, "rating %v", tt.rating)
		assert.Equal(t, tt.text, got.String(), "rating %v", tt.rating)
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "★ 4.5", FormatRating(4.5))
	assert.Equal(t, "★ 3.0", FormatRating(3))
}

func TestStarPickerHoverPreview(t *testing.T) {
	p := NewStarPicker(0)
	assert.False(t, p.Ready())

	p.Hover(4.5)
	assert.Equal(t, 4.5, p.Display())
	assert.Equal(t, 0.0, p.Value())

	assert.True(t, p.Set(3))
	assert.Equal(t, 3.0, p.Display())

	p.Hover(5)
	assert.Equal(t, 5.0, p.Display())
	p.Leave()
	assert.Equal(t, 3.0, p.Display())
	assert.True(t, p.Ready())
}

func TestStarPickerRejectsOffScale(t *testing.T) {
	p := NewStarPicker(4)
	assert.False(t, p.Set(2.3))
	assert.False(t, p.Set(0))
	assert.Equal(t, 4.0, p.Value())

	p.Hover(7)
	assert.Equal(t, 4.0, p.Display())

	assert.Equal(t, 0.0, NewStarPicker(2.2).Value())
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/lateplates"
	"github.com/KirkDiggler/chapterplate/internal/services/mealplanner"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
	"github.com/KirkDiggler/chapterplate/internal/services/reviews"
	"github.com/KirkDiggler/chapterplate/internal/widgets"
)

// palette colours headings after the user's theme
type palette struct {
	heading string
	dim     string
	reset   string
}

var plain = palette{}

func paletteFor(theme models.Theme) palette {
	if theme == models.ThemeDark {
		return palette{heading: "\x1b[1;96m", dim: "\x1b[90m", reset: "\x1b[0m"}
	}
	return palette{heading: "\x1b[1;34m", dim: "\x1b[2m", reset: "\x1b[0m"}
}

func (p palette) Heading(s string) string {
	return p.heading + s + p.reset
}

func (p palette) Dim(s string) string {
	return p.dim + s + p.reset
}

func printMenu(w io.Writer, p palette, snap *menu.Snapshot, viewer *models.User, now time.Time, loc *time.Location) {
	for i, day := range snap.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.Heading(day.Date.Format("Monday, January 2")))
		for _, meal := range day.Slots() {
			card := widgets.MealCard(meal, viewer, now, loc)
			fmt.Fprintf(w, "  #%-5d %-7s %s\n", meal.ID, card.MealType, card.Title)
			if meal.Description != "" {
				fmt.Fprintf(w, "         %s\n", p.Dim(meal.Description))
			}
			fmt.Fprintf(w, "         %s\n", strings.Join(cardStatus(meal, card), " · "))
		}
	}
}

func cardStatus(meal *models.Meal, card widgets.CardState) []string {
	var status []string
	switch {
	case card.IsPast && meal.AttendanceConfirmed:
		status = append(status, "Ate here")
	case card.IsPast && meal.IsAttending:
		status = append(status, "Attended (confirm with `attend --confirm`)")
	case card.IsPast:
		status = append(status, "Served")
	default:
		status = append(status, card.AttendLabel)
	}
	if meal.HasLatePlate {
		status = append(status, card.LatePlateLabel)
	}
	if meal.HasReview() {
		status = append(status, widgets.Stars(meal.UserReview.Rating).String())
	}
	if card.ShowAttendanceCount {
		status = append(status, card.AttendanceLabel)
	}
	return status
}

func printPresets(w io.Writer, p palette, snap *presets.Snapshot) {
	for _, day := range snap.Grid {
		fmt.Fprintln(w, p.Heading(day.Name))
		for _, slot := range day.Slots {
			id := "-"
			if slot.Preset != nil {
				id = fmt.Sprintf("#%d", slot.Preset.ID)
			}
			fmt.Fprintf(w, "  %-7s %-5s %s\n", slot.MealType, id, presetSummary(slot.Preset))
		}
	}
}

func presetSummary(preset *models.WeeklyPreset) string {
	switch {
	case preset == nil:
		return "not set"
	case !preset.Enabled:
		return "off"
	case preset.Attending:
		return "attending"
	case preset.LatePlate:
		s := "late plate"
		if preset.LatePlatePickupTime != nil && *preset.LatePlatePickupTime != "" {
			s += " at " + widgets.NewPresetForm(preset).PickupTime
		}
		if preset.LatePlateNotes != "" {
			s += fmt.Sprintf(" (%s)", preset.LatePlateNotes)
		}
		return s
	default:
		return "not attending"
	}
}

func printReviewFeed(w io.Writer, p palette, snap *reviews.Snapshot) {
	if len(snap.Feed.Items) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	for _, s := range snap.Feed.Summaries {
		avg := p.Dim("not enough reviews")
		if s.HasAverage {
			avg = widgets.FormatRating(s.Average)
		}
		fmt.Fprintf(w, "%s  %s  (%d)\n", p.Heading(s.Meal.DishName), avg, s.ReviewCount)
		for _, item := range snap.Feed.Items {
			if item.Meal.ID != s.Meal.ID {
				continue
			}
			name := "Anonymous"
			if item.Review.User != nil && item.Review.User.Name != "" {
				name = item.Review.User.Name
			}
			fmt.Fprintf(w, "  %s %s", widgets.Stars(item.Review.Rating), name)
			if item.Review.Comment != "" {
				fmt.Fprintf(w, ": %s", item.Review.Comment)
			}
			fmt.Fprintln(w)
		}
	}
}

func printUser(w io.Writer, u *models.User) {
	if u == nil {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	role := "member"
	switch {
	case u.IsOwner:
		role = "owner"
	case u.IsAdmin:
		role = "admin"
	}
	fmt.Fprintf(w, "%s <%s> (%s)\n", u.DisplayName(), u.Email, role)
	if u.ChapterName != "" {
		fmt.Fprintf(w, "Chapter: %s\n", u.ChapterName)
	}
}

func printSlots(w io.Writer, slots []mealplanner.Slot) {
	for _, s := range slots {
		dish := s.DishName
		if strings.TrimSpace(dish) == "" {
			dish = "(skipped)"
		}
		image := ""
		if s.Image != nil {
			image = " [" + s.Image.Filename + "]"
		}
		fmt.Fprintf(w, "%-10s %s %-6s %s%s\n", s.Key, s.MealDate.Format("Mon Jan 2"), s.MealType, dish, image)
	}
}

func printMeals(w io.Writer, meals []models.Meal, loc *time.Location) {
	if len(meals) == 0 {
		fmt.Fprintln(w, "No meals found.")
		return
	}
	for _, m := range meals {
		fmt.Fprintf(w, "#%-5d %s %-6s %s\n", m.ID, m.MealDate.In(loc).Format("Mon Jan 2 2006"), m.MealType, m.DishName)
	}
}

func printLatePlates(w io.Writer, p palette, snap *lateplates.Snapshot) {
	if len(snap.Groups) == 0 {
		fmt.Fprintln(w, "No late plates today.")
		return
	}
	for _, g := range snap.Groups {
		fmt.Fprintln(w, p.Heading(fmt.Sprintf("%s (%d)", g.DishName, len(g.LatePlates))))
		for _, lp := range g.LatePlates {
			line := fmt.Sprintf("  #%-5d %s  %s", lp.ID, lp.UserName, lp.Status)
			if lp.PickupTime != "" {
				line += "  pickup " + lp.PickupTime
			}
			fmt.Fprintln(w, line)
			if lp.Notes != "" {
				fmt.Fprintln(w, p.Dim("         "+lp.Notes))
			}
		}
	}
}

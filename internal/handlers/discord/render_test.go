package discord

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
	"github.com/KirkDiggler/chapterplate/internal/services/analytics"
	"github.com/KirkDiggler/chapterplate/internal/services/lateplates"
	"github.com/KirkDiggler/chapterplate/internal/services/members"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/services/presets"
	"github.com/KirkDiggler/chapterplate/internal/services/reviews"
	"github.com/KirkDiggler/chapterplate/internal/services/settings"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
	now    time.Time
	viewer *models.User
	meals  []models.Meal
}

func (s *RenderTestSuite) SetupTest() {
	s.now = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	s.viewer = &models.User{ID: 1, FirstName: "Pat", LastName: "Lee", Email: "pat@chapter.org"}
	s.meals = []models.Meal{
		{
			ID:          1,
			MealDate:    models.NewTime(time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)),
			MealType:    models.MealTypeLunch,
			DishName:    "Tacos",
			IsAttending: true,
			UserReview:  &models.Review{ID: 9, Rating: 4},
		},
		{
			ID:              2,
			MealDate:        models.NewTime(time.Date(2025, 10, 14, 17, 0, 0, 0, time.UTC)),
			MealType:        models.MealTypeDinner,
			DishName:        "Lasagna",
			Description:     "With garlic bread",
			HasLatePlate:    true,
			LatePlateStatus: models.LatePlatePending,
		},
	}
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) page(day int) *menuPage {
	return &menuPage{
		Listing: menu.ListingWeek,
		Snapshot: &menu.Snapshot{
			Status: resource.StatusReady,
			Meals:  s.meals,
			Days:   menu.GroupByDay(s.meals, time.UTC),
		},
		Day:      day,
		Viewer:   s.viewer,
		Now:      s.now,
		Location: time.UTC,
		Theme:    models.ThemeLight,
	}
}

func buttons(row discordgo.MessageComponent) []discordgo.Button {
	var out []discordgo.Button
	for _, c := range row.(discordgo.ActionsRow).Components {
		out = append(out, c.(discordgo.Button))
	}
	return out
}

func (s *RenderTestSuite) TestMenuPastMeal() {
	data := renderMenu(s.page(0))

	s.Require().Len(data.Embeds, 1)
	embed := data.Embeds[0]
	s.Equal("This Week's Menu · Monday, October 13", embed.Title)
	s.Equal("Day 1 of 2", embed.Footer.Text)
	s.Require().Len(embed.Fields, 1)
	s.Equal("Lunch · Tacos", embed.Fields[0].Name)
	s.Contains(embed.Fields[0].Value, "Served")
	s.Contains(embed.Fields[0].Value, "★★★★☆")

	s.Require().Len(data.Components, 2)
	card := buttons(data.Components[0])
	s.Require().Len(card, 4)
	s.True(card[0].Disabled, "attendance closes once the meal starts")
	s.True(card[1].Disabled)
	s.False(card[2].Disabled)
	s.Equal("Edit Review", card[2].Label)
	s.Equal("menu:confirm:week:1", card[3].CustomID)

	paging := buttons(data.Components[1])
	s.True(paging[0].Disabled)
	s.False(paging[1].Disabled)
	s.Equal("menu:page:week:1", paging[1].CustomID)
}

func (s *RenderTestSuite) TestMenuUpcomingMeal() {
	data := renderMenu(s.page(1))

	embed := data.Embeds[0]
	s.Equal("Dinner · Lasagna", embed.Fields[0].Name)
	s.Contains(embed.Fields[0].Value, "With garlic bread")
	s.Contains(embed.Fields[0].Value, "Late Plate (pending)")
	s.NotContains(embed.Fields[0].Value, "0 Attending", "counts are for staff")

	card := buttons(data.Components[0])
	s.Require().Len(card, 3)
	s.Equal("Not Attending", card[0].Label)
	s.False(card[0].Disabled)
	s.Equal("Cancel Late Plate", card[1].Label)
	s.Equal("menu:lateplate:week:2", card[1].CustomID)
	s.True(card[2].Disabled, "reviews open once the meal starts")
}

func (s *RenderTestSuite) TestMenuClampsDay() {
	data := renderMenu(s.page(9))
	s.Equal("Day 2 of 2", data.Embeds[0].Footer.Text)
}

func (s *RenderTestSuite) TestMenuStaffSeesCounts() {
	s.viewer.IsAdmin = true
	s.meals[1].AttendanceCount = 12

	data := renderMenu(s.page(1))

	s.Contains(data.Embeds[0].Fields[0].Value, "12 Attending")
}

func (s *RenderTestSuite) TestMenuShowsBannerAndActionError() {
	p := s.page(0)
	p.Snapshot.Banner = "Attendance updated."
	s.Equal("Attendance updated.", renderMenu(p).Content)

	p.Snapshot.ActionErr = &api.Error{Status: http.StatusBadRequest, Message: "Meal is full"}
	s.Equal("⚠️ Meal is full", renderMenu(p).Content)
}

func (s *RenderTestSuite) TestMenuEmptyAndFailed() {
	data := renderMenu(&menuPage{Listing: menu.ListingToday, Snapshot: &menu.Snapshot{}})
	s.Equal("No meals scheduled for today.", data.Content)

	data = renderMenu(&menuPage{
		Listing:  menu.ListingWeek,
		Snapshot: &menu.Snapshot{Err: &api.ConnectivityError{Err: errors.New("refused")}},
	})
	s.Require().Len(data.Embeds, 1)
	s.Equal("Error", data.Embeds[0].Title)
	s.Equal(api.ConnectivityMessage, data.Embeds[0].Description)
}

func (s *RenderTestSuite) TestReviewFeed() {
	snap := &reviews.Snapshot{
		Status: resource.StatusReady,
		Feed: reviews.Feed{
			Items: []reviews.Item{{
				Meal:   s.meals[0],
				Review: models.Review{Rating: 4.5, Comment: "Great", User: &models.UserRef{Name: "Sam"}},
			}},
			Summaries: []reviews.MealSummary{
				{Meal: s.meals[0], ReviewCount: 3, Average: 4.3, HasAverage: true},
				{Meal: s.meals[1], ReviewCount: 1},
			},
		},
	}

	data := renderReviewFeed(snap, models.ThemeDark)

	embed := data.Embeds[0]
	s.Equal(accentColor(models.ThemeDark), embed.Color)
	s.Contains(embed.Description, "**Tacos** ★ 4.3 (3 reviews)")
	s.Contains(embed.Description, "**Lasagna** (1 reviews)")
	s.Equal("Tacos · Sam", embed.Fields[0].Name)
	s.Equal("★★★★½\nGreat", embed.Fields[0].Value)
}

func (s *RenderTestSuite) TestReviewFeedEmpty() {
	data := renderReviewFeed(&reviews.Snapshot{Status: resource.StatusReady}, models.ThemeLight)
	s.Equal("No reviews yet.", data.Content)
}

func (s *RenderTestSuite) TestPresets() {
	pickup := "19:30"
	all := []models.WeeklyPreset{
		{ID: 1, DayOfWeek: 0, MealType: models.MealTypeLunch, Attending: true, Enabled: true},
		{ID: 2, DayOfWeek: 0, MealType: models.MealTypeDinner, LatePlate: true, LatePlatePickupTime: &pickup, Enabled: true},
		{ID: 3, DayOfWeek: 1, MealType: models.MealTypeLunch, Attending: true},
	}
	snap := &presets.Snapshot{Status: resource.StatusReady, Presets: all, Grid: presets.Grid(all)}

	data := renderPresets(snap, models.ThemeLight)

	embed := data.Embeds[0]
	s.Require().Len(embed.Fields, 6)
	s.Equal("Monday", embed.Fields[0].Name)
	s.Equal("Lunch: Attending\nDinner: Late plate 19:30", embed.Fields[0].Value)
	s.Contains(embed.Fields[1].Value, "Lunch: Off")
	s.Contains(embed.Fields[1].Value, "Dinner: Not set")

	apply := buttons(data.Components[0])
	s.Equal("presets:apply", apply[0].CustomID)
	s.False(apply[0].Disabled)
}

func (s *RenderTestSuite) TestLatePlates() {
	plates := []models.LatePlate{
		{ID: 4, UserName: "Sam", MealDishName: "Lasagna", Status: models.LatePlatePending, PickupTime: "19:30", Notes: "No cheese"},
		{ID: 5, UserName: "Alex", MealDishName: "Lasagna", Status: models.LatePlateApproved},
		{ID: 6, UserName: "Jo", MealDishName: "Soup", Status: models.LatePlatePending},
	}
	snap := &lateplates.Snapshot{
		Status:     resource.StatusReady,
		LatePlates: plates,
		Groups:     lateplates.GroupByDish(plates),
		Banner:     "Late plate approved.",
	}

	data := renderLatePlates(snap, models.ThemeLight)

	s.Equal("Late plate approved.", data.Content)
	embed := data.Embeds[0]
	s.Require().Len(embed.Fields, 2)
	s.Equal("Lasagna (2)", embed.Fields[0].Name)
	s.Contains(embed.Fields[0].Value, "Sam · pending · pickup 19:30\n> No cheese")

	s.Require().Len(data.Components, 1)
	row := buttons(data.Components[0])
	s.Require().Len(row, 4)
	s.Equal("lp:approve:4", row[0].CustomID)
	s.Equal("lp:deny:4", row[1].CustomID)
	s.Equal("lp:approve:6", row[2].CustomID)
}

func (s *RenderTestSuite) TestLatePlatesEmpty() {
	data := renderLatePlates(&lateplates.Snapshot{Status: resource.StatusReady}, models.ThemeLight)
	s.Equal("No late plate requests today.", data.Embeds[0].Description)
	s.Empty(data.Components)
}

func (s *RenderTestSuite) TestAnalytics() {
	avg := 4.26
	a := &models.Analytics{
		Summary: models.AnalyticsSummary{TotalMembers: 40, TotalMeals: 12, TotalReviews: 30, AvgRating: &avg},
		AttendanceTrend: []models.TrendPoint{
			{Week: models.NewTime(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)), AvgAttendees: 20},
		},
		PopularMeals: []models.PopularMeal{{DishName: "Tacos", AttendancePct: 50}},
		HighestRated: []models.RatedMeal{{DishName: "Tacos", AvgRating: 4.8, ReviewCount: 10}},
	}

	data := renderAnalytics(resource.Snapshot[*models.Analytics]{Status: resource.StatusReady, Data: a}, models.ThemeLight)

	embed := data.Embeds[0]
	s.Equal("4.3", embed.Fields[3].Value)
	s.Equal("Weekly Attendance", embed.Fields[4].Name)
	s.Contains(embed.Fields[4].Value, "Oct 6")
	s.Contains(embed.Fields[5].Value, "Tacos")
	s.Contains(embed.Fields[5].Value, "50%")
	s.Equal("Tacos ★ 4.8 (10)", embed.Fields[6].Value)
}

func (s *RenderTestSuite) TestBarChart() {
	chart := barChart([]analytics.Bar{
		{Label: "Full", Value: 10, Fraction: 1},
		{Label: "Half", Value: 5, Fraction: 0.5},
	}, "%.0f")

	s.Contains(chart, "Full           ████████████ 10\n")
	s.Contains(chart, "Half           ██████░░░░░░ 5\n")
}

func (s *RenderTestSuite) TestSettingsMasksCode() {
	snap := &settings.Snapshot{
		Status:   resource.StatusReady,
		Settings: models.Settings{ChapterName: "Alpha", AccessCode: "SECRET1"},
	}

	data := renderSettings(snap, models.ThemeLight)
	s.Equal("Alpha", data.Embeds[0].Fields[0].Value)
	s.NotContains(data.Embeds[0].Fields[1].Value, "SECRET1")
	s.Equal("Show Code", buttons(data.Components[0])[0].Label)

	snap.Revealed = true
	data = renderSettings(snap, models.ThemeLight)
	s.Equal("SECRET1", data.Embeds[0].Fields[1].Value)
	s.Equal("Hide Code", buttons(data.Components[0])[0].Label)
}

func (s *RenderTestSuite) TestMembers() {
	snap := &members.Snapshot{
		Status: resource.StatusReady,
		Users: []models.User{
			{ID: 1, FirstName: "Pat", LastName: "Lee", Email: "pat@chapter.org", IsOwner: true},
			{ID: 2, Name: "Sam", Email: "sam@chapter.org"},
		},
	}

	data := renderMembers(snap, models.ThemeLight)

	s.Equal("Members (2)", data.Embeds[0].Title)
	s.Contains(data.Embeds[0].Description, "`1` Pat Lee · pat@chapter.org · owner")
	s.Contains(data.Embeds[0].Description, "`2` Sam · sam@chapter.org")
}

func (s *RenderTestSuite) TestModeration() {
	list := []models.Review{
		{ID: 3, Rating: 2, Meal: &models.MealRef{DishName: "Soup"}, User: &models.UserRef{Name: "Jo"}},
		{ID: 4, Rating: 5, IsHidden: true},
	}

	data := renderModeration(list, "Review hidden.", nil, models.ThemeLight)

	s.Equal("Review hidden.", data.Content)
	s.Equal("Soup · Jo", data.Embeds[0].Fields[0].Name)
	s.Equal("Unknown Meal · Anonymous (hidden)", data.Embeds[0].Fields[1].Name)

	first := buttons(data.Components[0])
	s.Equal("Hide: Soup", first[0].Label)
	s.Equal("rv:hide:3", first[0].CustomID)
	s.Equal("rv:delete:3", first[1].CustomID)
	s.Equal("Restore: Unknown Meal", buttons(data.Components[1])[0].Label)
}

func (s *RenderTestSuite) TestAttendanceDetails() {
	d := &models.AttendanceDetails{
		Meal:              models.MealRef{ID: 2, DishName: "Lasagna"},
		AttendingUsers:    []models.UserRef{{Name: "Sam"}, {Name: "Jo"}},
		AttendingCount:    2,
		NotAttendingCount: 0,
		TotalUsers:        2,
	}

	data := renderAttendanceDetails(d, models.ThemeLight)

	s.Equal("2 of 2 members attending", data.Embeds[0].Description)
	s.Equal("Sam\nJo", data.Embeds[0].Fields[0].Value)
	s.Equal("Nobody", data.Embeds[0].Fields[1].Value)
}

func (s *RenderTestSuite) TestWhoAmI() {
	s.Contains(renderWhoAmI(nil, models.ThemeLight).Content, "/meals login")

	s.viewer.IsAdmin = true
	data := renderWhoAmI(s.viewer, models.ThemeLight)
	s.Equal("Pat Lee", data.Embeds[0].Title)
	s.Equal("Admin", data.Embeds[0].Fields[1].Value)
}

func (s *RenderTestSuite) TestReviewModalPrefills() {
	data := reviewModal(menu.ListingPast, &s.meals[0])

	s.Equal("modal:review:past:1", data.CustomID)
	s.Equal("Edit Review: Tacos", data.Title)
	rating := data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	s.Equal("4", rating.Value)
}

func (s *RenderTestSuite) TestUserMessage() {
	s.Contains(userMessage(errors.Join(errors.New("x"), ErrNoUser)), "Could not tell")
	s.Equal("Meal not found", userMessage(&api.Error{Status: http.StatusNotFound, Message: "Meal not found"}))
}

func (s *RenderTestSuite) TestTruncate() {
	s.Equal("abc", truncate("abc", 5))
	s.Equal("ab…", truncate("abcdef", 3))
}

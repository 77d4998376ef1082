package discord

import (
	"fmt"
	"strings"
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
	"github.com/KirkDiggler/chapterplate/internal/widgets"
	"github.com/bwmarrin/discordgo"
)

const (
	colorError = 0xff0000

	// Discord caps embeds at 25 fields and messages at 5 component rows
	maxFields = 25
	maxRows   = 5

	barWidth = 12
)

// accentColor follows the user's theme preference
func accentColor(theme models.Theme) int {
	if theme == models.ThemeDark {
		return 0x2f3136
	}
	return 0x00ff00
}

func errorData(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Error",
			Description: message,
			Color:       colorError,
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func messageData(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

// statusLine is the banner, or the failed action's message
func statusLine(banner string, actionErr error) string {
	if actionErr != nil {
		return "⚠️ " + api.UserMessage(actionErr, "Something went wrong.")
	}
	return banner
}

// menuPage is one day of a listing as seen by the viewer
type menuPage struct {
	Listing  menu.Listing
	Snapshot *menu.Snapshot
	Day      int
	Viewer   *models.User
	Now      time.Time
	Location *time.Location
	Theme    models.Theme
}

func listingTitle(l menu.Listing) string {
	switch l {
	case menu.ListingToday:
		return "Today's Meals"
	case menu.ListingPast:
		return "Past Meals"
	default:
		return "This Week's Menu"
	}
}

func listingEmpty(l menu.Listing) string {
	switch l {
	case menu.ListingToday:
		return "No meals scheduled for today."
	case menu.ListingPast:
		return "No past meals to review yet."
	default:
		return "No meals on the menu yet."
	}
}

func renderMenu(p *menuPage) *discordgo.InteractionResponseData {
	snap := p.Snapshot
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load meals."))
	}
	if len(snap.Days) == 0 {
		return messageData(listingEmpty(p.Listing))
	}

	day := min(max(p.Day, 0), len(snap.Days)-1)
	d := snap.Days[day]

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s · %s", listingTitle(p.Listing), d.Date.Format("Monday, January 2")),
		Color:  accentColor(p.Theme),
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Day %d of %d", day+1, len(snap.Days))},
	}

	var rows []discordgo.MessageComponent
	for _, meal := range d.Slots() {
		card := widgets.MealCard(meal, p.Viewer, p.Now, p.Location)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s", card.MealType, card.Title),
			Value: cardText(meal, card),
		})
		if embed.Image == nil && card.ImageURL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: card.ImageURL}
		}
		rows = append(rows, cardButtons(p.Listing, meal, card))
	}

	if len(snap.Days) > 1 {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀ Previous",
				Style:    discordgo.SecondaryButton,
				CustomID: menuID(actionPage, p.Listing, day-1),
				Disabled: day == 0,
			},
			discordgo.Button{
				Label:    "Next ▶",
				Style:    discordgo.SecondaryButton,
				CustomID: menuID(actionPage, p.Listing, day+1),
				Disabled: day == len(snap.Days)-1,
			},
		}})
	}

	return &discordgo.InteractionResponseData{
		Content:    statusLine(snap.Banner, snap.ActionErr),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: rows,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

func cardText(meal *models.Meal, card widgets.CardState) string {
	var lines []string
	if meal.Description != "" {
		lines = append(lines, meal.Description)
	}
	switch {
	case card.IsPast && meal.AttendanceConfirmed:
		lines = append(lines, "✅ You ate here")
	case card.IsPast:
		lines = append(lines, "Served")
	case meal.IsAttending:
		lines = append(lines, "✅ "+card.AttendLabel)
	default:
		lines = append(lines, card.AttendLabel)
	}
	if meal.HasLatePlate {
		lines = append(lines, "🍱 "+card.LatePlateLabel)
	}
	if meal.HasReview() {
		lines = append(lines, "Your review: "+widgets.Stars(meal.UserReview.Rating).String())
	}
	if card.ShowAttendanceCount {
		lines = append(lines, card.AttendanceLabel)
	}
	return strings.Join(lines, "\n")
}

func cardButtons(listing menu.Listing, meal *models.Meal, card widgets.CardState) discordgo.ActionsRow {
	attendStyle := discordgo.SecondaryButton
	if meal.IsAttending {
		attendStyle = discordgo.SuccessButton
	}
	lateLabel := "Late Plate"
	if meal.HasLatePlate {
		lateLabel = "Cancel Late Plate"
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    card.AttendLabel,
			Style:    attendStyle,
			CustomID: menuID(actionAttend, listing, meal.ID),
			Disabled: !card.CanAttend,
		},
		discordgo.Button{
			Label:    lateLabel,
			Style:    discordgo.SecondaryButton,
			CustomID: menuID(actionLatePlate, listing, meal.ID),
			Disabled: !card.CanLatePlate,
		},
		discordgo.Button{
			Label:    card.ReviewLabel,
			Style:    discordgo.PrimaryButton,
			CustomID: menuID(actionReview, listing, meal.ID),
			Disabled: !card.CanReview,
		},
	}
	if card.CanConfirm {
		buttons = append(buttons, discordgo.Button{
			Label:    "I Ate Here",
			Style:    discordgo.SuccessButton,
			CustomID: menuID(actionConfirm, listing, meal.ID),
		})
	}
	return discordgo.ActionsRow{Components: buttons}
}

func renderReviewFeed(snap *reviews.Snapshot, theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load reviews."))
	}
	if len(snap.Feed.Items) == 0 {
		return messageData("No reviews yet.")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Recent Reviews",
		Color: accentColor(theme),
	}

	var summary []string
	for _, s := range snap.Feed.Summaries {
		line := fmt.Sprintf("**%s** (%d reviews)", s.Meal.DishName, s.ReviewCount)
		if s.HasAverage {
			line = fmt.Sprintf("**%s** %s (%d reviews)", s.Meal.DishName, widgets.FormatRating(s.Average), s.ReviewCount)
		}
		summary = append(summary, line)
	}
	embed.Description = strings.Join(summary, "\n")

	for _, item := range snap.Feed.Items {
		if len(embed.Fields) == maxFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s", item.Meal.DishName, reviewerName(item.Review.User)),
			Value: reviewText(&item.Review),
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}

func reviewerName(u *models.UserRef) string {
	if u == nil || u.Name == "" {
		return "Anonymous"
	}
	return u.Name
}

func reviewText(r *models.Review) string {
	text := widgets.Stars(r.Rating).String()
	if r.Comment != "" {
		text += "\n" + r.Comment
	}
	return text
}

func renderPresets(snap *presets.Snapshot, theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load presets."))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Weekly Presets",
		Description: "Presets are applied to each new week's meals.",
		Color:       accentColor(theme),
	}
	for _, day := range snap.Grid {
		var lines []string
		for _, slot := range day.Slots {
			lines = append(lines, fmt.Sprintf("%s: %s", slot.MealType, presetText(slot.Preset)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   day.Name,
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}

	return &discordgo.InteractionResponseData{
		Content: statusLine(snap.Banner, snap.ActionErr),
		Embeds:  []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Apply to Upcoming Meals",
					Style:    discordgo.PrimaryButton,
					CustomID: customID{Scope: scopePresets, Action: actionApply}.String(),
					Disabled: len(snap.Presets) == 0,
				},
			}},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func presetText(p *models.WeeklyPreset) string {
	switch {
	case p == nil:
		return "Not set"
	case !p.Enabled:
		return "Off"
	case p.Attending:
		return "Attending"
	case p.LatePlate && p.LatePlatePickupTime != nil && *p.LatePlatePickupTime != "":
		return "Late plate " + *p.LatePlatePickupTime
	case p.LatePlate:
		return "Late plate"
	default:
		return "Not attending"
	}
}

func renderLatePlates(snap *lateplates.Snapshot, theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load late plates."))
	}
	if len(snap.LatePlates) == 0 {
		return &discordgo.InteractionResponseData{
			Content: statusLine(snap.Banner, snap.ActionErr),
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Today's Late Plates",
				Description: "No late plate requests today.",
				Color:       accentColor(theme),
			}},
			Flags: discordgo.MessageFlagsEphemeral,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Today's Late Plates",
		Color: accentColor(theme),
	}
	for _, g := range snap.Groups {
		if len(embed.Fields) == maxFields {
			break
		}
		var lines []string
		for _, lp := range g.LatePlates {
			lines = append(lines, latePlateLine(&lp))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", g.DishName, len(g.LatePlates)),
			Value: strings.Join(lines, "\n"),
		})
	}

	// two pending requests per row, each with approve and deny
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, lp := range snap.LatePlates {
		if lp.Status != models.LatePlatePending {
			continue
		}
		if len(rows) == maxRows {
			break
		}
		row = append(row,
			discordgo.Button{
				Label:    "✓ " + lp.UserName,
				Style:    discordgo.SuccessButton,
				CustomID: customID{Scope: scopeLate, Action: actionApprove, N: lp.ID}.String(),
			},
			discordgo.Button{
				Label:    "✗ " + lp.UserName,
				Style:    discordgo.DangerButton,
				CustomID: customID{Scope: scopeLate, Action: actionDeny, N: lp.ID}.String(),
			},
		)
		if len(row) == 4 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 && len(rows) < maxRows {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	return &discordgo.InteractionResponseData{
		Content:    statusLine(snap.Banner, snap.ActionErr),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: rows,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

func latePlateLine(lp *models.LatePlate) string {
	line := fmt.Sprintf("%s · %s", lp.UserName, lp.Status)
	if lp.PickupTime != "" {
		line += " · pickup " + lp.PickupTime
	}
	if lp.Notes != "" {
		line += "\n> " + lp.Notes
	}
	return line
}

func renderAnalytics(snap resource.Snapshot[*models.Analytics], theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load analytics."))
	}
	a := snap.Data
	if a == nil {
		return messageData("No analytics yet.")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Chapter Analytics",
		Color: accentColor(theme),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Members", Value: fmt.Sprint(a.Summary.TotalMembers), Inline: true},
			{Name: "Meals", Value: fmt.Sprint(a.Summary.TotalMeals), Inline: true},
			{Name: "Reviews", Value: fmt.Sprint(a.Summary.TotalReviews), Inline: true},
			{Name: "Average Rating", Value: analytics.FormatAverage(a.Summary.AvgRating), Inline: true},
		},
	}
	if bars := analytics.TrendBars(a.AttendanceTrend); len(bars) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Weekly Attendance",
			Value: barChart(bars, "%.1f"),
		})
	}
	if bars := analytics.PopularityBars(a.PopularMeals); len(bars) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Most Popular",
			Value: barChart(bars, "%.0f%%"),
		})
	}
	if len(a.HighestRated) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Highest Rated",
			Value:  ratedList(a.HighestRated),
			Inline: true,
		})
	}
	if len(a.LowestRated) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Lowest Rated",
			Value:  ratedList(a.LowestRated),
			Inline: true,
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}

// barChart draws bars in a code block so they line up
func barChart(bars []analytics.Bar, valueFormat string) string {
	var b strings.Builder
	b.WriteString("```\n")
	for _, bar := range bars {
		filled := int(bar.Fraction*barWidth + 0.5)
		fmt.Fprintf(&b, "%-14.14s %s%s "+valueFormat+"\n",
			bar.Label,
			strings.Repeat("█", filled),
			strings.Repeat("░", barWidth-filled),
			bar.Value)
	}
	b.WriteString("```")
	return b.String()
}

func ratedList(meals []models.RatedMeal) string {
	lines := make([]string, 0, len(meals))
	for _, m := range meals {
		lines = append(lines, fmt.Sprintf("%s %s (%d)", m.DishName, widgets.FormatRating(m.AvgRating), m.ReviewCount))
	}
	return strings.Join(lines, "\n")
}

func renderSettings(snap *settings.Snapshot, theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load settings."))
	}

	name := snap.Settings.ChapterName
	if name == "" {
		name = "Not set"
	}
	embed := &discordgo.MessageEmbed{
		Title: "Chapter Settings",
		Color: accentColor(theme),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Chapter Name", Value: name},
			{Name: "Access Code", Value: widgets.MaskAccessCode(snap.Settings.AccessCode, snap.Revealed)},
		},
	}

	revealLabel := "Show Code"
	if snap.Revealed {
		revealLabel = "Hide Code"
	}
	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    revealLabel,
			Style:    discordgo.SecondaryButton,
			CustomID: customID{Scope: scopeSettings, Action: actionReveal}.String(),
			Disabled: snap.Settings.AccessCode == "",
		},
	}

	return &discordgo.InteractionResponseData{
		Content:    statusLine(snap.Banner, snap.ActionErr),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

func renderMembers(snap *members.Snapshot, theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load members."))
	}
	if len(snap.Users) == 0 {
		return messageData("No members yet.")
	}

	lines := make([]string, 0, len(snap.Users))
	for _, u := range snap.Users {
		line := fmt.Sprintf("`%d` %s · %s", u.ID, u.DisplayName(), u.Email)
		switch {
		case u.IsOwner:
			line += " · owner"
		case u.IsAdmin:
			line += " · admin"
		}
		lines = append(lines, line)
	}

	return &discordgo.InteractionResponseData{
		Content: statusLine(snap.Banner, snap.ActionErr),
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("Members (%d)", len(snap.Users)),
			Description: truncate(strings.Join(lines, "\n"), 4000),
			Color:       accentColor(theme),
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func renderModeration(reviews []models.Review, banner string, actionErr error, theme models.Theme) *discordgo.InteractionResponseData {
	if len(reviews) == 0 {
		return &discordgo.InteractionResponseData{
			Content: statusLine(banner, actionErr),
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Review Moderation",
				Description: "No reviews to moderate.",
				Color:       accentColor(theme),
			}},
			Flags: discordgo.MessageFlagsEphemeral,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: "Review Moderation",
		Color: accentColor(theme),
	}
	var rows []discordgo.MessageComponent
	for _, r := range reviews {
		if len(rows) == maxRows {
			break
		}
		dish := "Unknown Meal"
		if r.Meal != nil && r.Meal.DishName != "" {
			dish = r.Meal.DishName
		}
		name := fmt.Sprintf("%s · %s", dish, reviewerName(r.User))
		hideLabel := "Hide"
		if r.IsHidden {
			name += " (hidden)"
			hideLabel = "Restore"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: reviewText(&r),
		})
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    fmt.Sprintf("%s: %s", hideLabel, truncate(dish, 40)),
				Style:    discordgo.SecondaryButton,
				CustomID: customID{Scope: scopeReview, Action: actionHide, N: r.ID}.String(),
			},
			discordgo.Button{
				Label:    "Delete",
				Style:    discordgo.DangerButton,
				CustomID: customID{Scope: scopeReview, Action: actionDelete, N: r.ID}.String(),
			},
		}})
	}
	if len(reviews) > maxRows {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Showing %d of %d reviews", maxRows, len(reviews))}
	}

	return &discordgo.InteractionResponseData{
		Content:    statusLine(banner, actionErr),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: rows,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

func renderRecommendations(recs []models.Recommendation, theme models.Theme) *discordgo.InteractionResponseData {
	if len(recs) == 0 {
		return messageData("No meal recommendations yet.")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Meal Recommendations",
		Color: accentColor(theme),
	}
	for _, r := range recs {
		if len(embed.Fields) == maxFields {
			break
		}
		var lines []string
		if r.Description != "" {
			lines = append(lines, r.Description)
		}
		if r.Link != "" {
			lines = append(lines, r.Link)
		}
		lines = append(lines, fmt.Sprintf("from %s · id %d", reviewerName(r.User), r.ID))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  r.MealName,
			Value: strings.Join(lines, "\n"),
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}
}

func renderAttendance(snap resource.Snapshot[[]models.AttendanceRecord], theme models.Theme) *discordgo.InteractionResponseData {
	if snap.Err != nil {
		return errorData(api.UserMessage(snap.Err, "Failed to load attendance."))
	}
	if len(snap.Data) == 0 {
		return messageData("No attendance recorded yet.")
	}

	lines := make([]string, 0, len(snap.Data))
	for _, rec := range snap.Data {
		user, dish := "Unknown", "Unknown Meal"
		if rec.User != nil {
			user = rec.User.Name
		}
		if rec.Meal != nil {
			dish = fmt.Sprintf("%s (`%d`)", rec.Meal.DishName, rec.Meal.ID)
		}
		lines = append(lines, fmt.Sprintf("%s · %s", user, dish))
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Attendance",
			Description: truncate(strings.Join(lines, "\n"), 4000),
			Color:       accentColor(theme),
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func renderAttendanceDetails(d *models.AttendanceDetails, theme models.Theme) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       d.Meal.DishName,
			Description: fmt.Sprintf("%d of %d members attending", d.AttendingCount, d.TotalUsers),
			Color:       accentColor(theme),
			Fields: []*discordgo.MessageEmbedField{
				{Name: fmt.Sprintf("Attending (%d)", d.AttendingCount), Value: userList(d.AttendingUsers), Inline: true},
				{Name: fmt.Sprintf("Not Attending (%d)", d.NotAttendingCount), Value: userList(d.NotAttendingUsers), Inline: true},
			},
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func userList(users []models.UserRef) string {
	if len(users) == 0 {
		return "Nobody"
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return truncate(strings.Join(names, "\n"), 1024)
}

func renderWhoAmI(u *models.User, theme models.Theme) *discordgo.InteractionResponseData {
	if u == nil {
		return messageData("You are not logged in. Use `/meals login`.")
	}

	role := "Member"
	switch {
	case u.IsOwner:
		role = "Owner"
	case u.IsAdmin:
		role = "Admin"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Email", Value: u.Email, Inline: true},
		{Name: "Role", Value: role, Inline: true},
	}
	if u.ChapterName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Chapter", Value: u.ChapterName, Inline: true})
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:  u.DisplayName(),
			Color:  accentColor(theme),
			Fields: fields,
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

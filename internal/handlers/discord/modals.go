package discord

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/KirkDiggler/chapterplate/internal/widgets"
	"github.com/bwmarrin/discordgo"
)

const (
	actionReset   = "reset"
	actionProfile = "profile"
)

type field struct {
	id          string
	label       string
	placeholder string
	value       string
	paragraph   bool
	optional    bool
	maxLength   int
}

func modal(id customID, title string, fields ...field) *discordgo.InteractionResponseData {
	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for _, f := range fields {
		style := discordgo.TextInputShort
		if f.paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    f.id,
				Label:       f.label,
				Style:       style,
				Placeholder: f.placeholder,
				Value:       f.value,
				Required:    !f.optional,
				MaxLength:   f.maxLength,
			},
		}})
	}
	return &discordgo.InteractionResponseData{
		CustomID:   id.String(),
		Title:      truncate(title, 45),
		Components: rows,
	}
}

func loginModal() *discordgo.InteractionResponseData {
	return modal(customID{Scope: scopeModal, Action: actionLogin}, "Log In",
		field{id: inputEmail, label: "Email", placeholder: "you@example.com"},
		field{id: inputPassword, label: "Password"},
	)
}

func registerModal() *discordgo.InteractionResponseData {
	return modal(customID{Scope: scopeModal, Action: actionRegister}, "Join Your Chapter",
		field{id: inputAccessCode, label: "Chapter Access Code"},
		field{id: inputFirstName, label: "First Name"},
		field{id: inputLastName, label: "Last Name"},
		field{id: inputEmail, label: "Email"},
		field{id: inputPassword, label: "Password", placeholder: "At least 6 characters"},
	)
}

func resetPasswordModal(token string) *discordgo.InteractionResponseData {
	return modal(customID{Scope: scopeModal, Action: actionReset}, "Reset Password",
		field{id: "token", label: "Reset Token", value: token},
		field{id: inputPassword, label: "New Password"},
		field{id: "confirm", label: "Confirm Password"},
	)
}

func profileModal(u *models.User) *discordgo.InteractionResponseData {
	var first, last string
	if u != nil {
		first, last = u.FirstName, u.LastName
	}
	return modal(customID{Scope: scopeModal, Action: actionProfile}, "Edit Profile",
		field{id: inputFirstName, label: "First Name", value: first},
		field{id: inputLastName, label: "Last Name", value: last},
		field{id: "current_password", label: "Current Password", optional: true},
		field{id: "new_password", label: "New Password", optional: true},
		field{id: "confirm", label: "Confirm New Password", optional: true},
	)
}

func recommendModal() *discordgo.InteractionResponseData {
	return modal(customID{Scope: scopeModal, Action: actionRecommend}, "Recommend a Meal",
		field{id: inputMealName, label: "Meal Name", maxLength: 100},
		field{id: inputDesc, label: "Why should we make it?", paragraph: true, optional: true, maxLength: 1000},
		field{id: inputLink, label: "Recipe Link", placeholder: "https://", optional: true},
	)
}

func reviewModal(listing menu.Listing, meal *models.Meal) *discordgo.InteractionResponseData {
	var rating, comment string
	if meal.HasReview() {
		rating = strconv.FormatFloat(meal.UserReview.Rating, 'f', -1, 64)
		comment = meal.UserReview.Comment
	}
	return modal(customID{Scope: scopeModal, Action: actionReview, Listing: listing, N: meal.ID},
		fmt.Sprintf("%s: %s", widgets.ReviewModalTitle(meal), meal.DishName),
		field{id: inputRating, label: "Rating (1 to 5, halves allowed)", placeholder: "4.5", value: rating, maxLength: 3},
		field{id: inputComment, label: "Comment", paragraph: true, optional: true, value: comment, maxLength: 1000},
	)
}

func latePlateModal(listing menu.Listing, meal *models.Meal) *discordgo.InteractionResponseData {
	return modal(customID{Scope: scopeModal, Action: actionLatePlate, Listing: listing, N: meal.ID},
		"Late Plate: "+meal.DishName,
		field{id: inputNotes, label: "Notes", placeholder: "Allergies, portion, where to leave it", paragraph: true, optional: true, maxLength: 500},
		field{id: inputPickup, label: "Pickup Time (HH:MM)", placeholder: "19:30", optional: true, maxLength: 5},
	)
}

package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/services/menu"
	"github.com/bwmarrin/discordgo"
)

// Component scopes
const (
	scopeMenu     = "menu"
	scopeLate     = "lp"
	scopeReview   = "rv"
	scopePresets  = "presets"
	scopeSettings = "settings"
	scopeModal    = "modal"
)

// Component actions
const (
	actionAttend    = "attend"
	actionLatePlate = "lateplate"
	actionReview    = "review"
	actionConfirm   = "confirm"
	actionPage      = "page"
	actionApprove   = "approve"
	actionDeny      = "deny"
	actionHide      = "hide"
	actionDelete    = "delete"
	actionApply     = "apply"
	actionReveal    = "reveal"
	actionLogin     = "login"
	actionRegister  = "register"
	actionRecommend = "recommend"
)

// Modal input IDs
const (
	inputEmail      = "email"
	inputPassword   = "password"
	inputFirstName  = "first_name"
	inputLastName   = "last_name"
	inputAccessCode = "access_code"
	inputRating     = "rating"
	inputComment    = "comment"
	inputNotes      = "notes"
	inputPickup     = "pickup_time"
	inputMealName   = "meal_name"
	inputDesc       = "description"
	inputLink       = "link"
)

// customID is the parsed form of a component or modal ID:
// scope:action, scope:action:n or scope:action:listing:n
type customID struct {
	Scope   string
	Action  string
	Listing menu.Listing
	N       int
}

func (c customID) String() string {
	parts := []string{c.Scope, c.Action}
	switch {
	case c.Listing != "":
		parts = append(parts, string(c.Listing), strconv.Itoa(c.N))
	case c.N != 0:
		parts = append(parts, strconv.Itoa(c.N))
	}
	return strings.Join(parts, ":")
}

func menuID(action string, listing menu.Listing, n int) string {
	return customID{Scope: scopeMenu, Action: action, Listing: listing, N: n}.String()
}

func parseCustomID(raw string) (customID, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return customID{}, fmt.Errorf("%w: %q", ErrBadCustomID, raw)
	}

	id := customID{Scope: parts[0], Action: parts[1]}
	args := parts[2:]
	if len(args) > 2 {
		return customID{}, fmt.Errorf("%w: %q", ErrBadCustomID, raw)
	}
	if len(args) == 2 {
		id.Listing = menu.Listing(args[0])
		if _, err := id.Listing.Path(); err != nil {
			return customID{}, fmt.Errorf("%w: %q", ErrBadCustomID, raw)
		}
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return customID{}, fmt.Errorf("%w: %q", ErrBadCustomID, raw)
		}
		id.N = n
	}
	return id, nil
}

// modalValues collects the text inputs of a submitted modal by input ID
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if in, ok := rc.(*discordgo.TextInput); ok {
				values[in.CustomID] = strings.TrimSpace(in.Value)
			}
		}
	}
	return values
}

// interactionUser is the member in a guild, or the user in a DM
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

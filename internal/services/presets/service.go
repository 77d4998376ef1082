package presets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/resource"
)

type service struct {
	requester api.Requester
	logger    *slog.Logger
	presets   *resource.Resource[[]models.WeeklyPreset]
}

// New creates a presets view
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}

	ttl := cfg.BannerTTL
	if ttl == 0 {
		ttl = DefaultBannerTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		requester: cfg.Requester,
		logger:    logger,
		presets: resource.New[[]models.WeeklyPreset](&resource.Config{
			Clock:     cfg.Clock,
			BannerTTL: ttl,
		}),
	}, nil
}

// Load fetches the viewer's weekly presets
func (s *service) Load(ctx context.Context) error {
	return s.presets.Load(ctx, func(ctx context.Context) ([]models.WeeklyPreset, error) {
		var presets []models.WeeklyPreset
		if err := s.requester.Do(ctx, &api.Request{Path: "/api/weekly-presets"}, &presets); err != nil {
			return nil, err
		}
		return presets, nil
	})
}

// Snapshot returns the current view state
func (s *service) Snapshot() *Snapshot {
	snap := s.presets.Snapshot()
	return &Snapshot{
		Status:    snap.Status,
		Presets:   snap.Data,
		Grid:      Grid(snap.Data),
		Err:       snap.Err,
		ActionErr: snap.ActionErr,
		Banner:    snap.Banner,
	}
}

// Close discards the view
func (s *service) Close() {
	s.presets.Close()
}

type presetBody struct {
	Attending           bool            `json:"attending"`
	LatePlate           bool            `json:"late_plate"`
	LatePlateNotes      string          `json:"late_plate_notes"`
	LatePlatePickupTime *string         `json:"late_plate_pickup_time"`
	Enabled             bool            `json:"enabled"`
	DayOfWeek           *int            `json:"day_of_week,omitempty"`
	MealType            models.MealType `json:"meal_type,omitempty"`
}

// Save creates or updates a preset and refetches the list
func (s *service) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	body := &presetBody{
		Attending:      input.Attending,
		LatePlate:      input.LatePlate,
		LatePlateNotes: input.Notes,
		Enabled:        input.Enabled,
	}
	if input.PickupTime != "" {
		pickup := input.PickupTime
		body.LatePlatePickupTime = &pickup
	}

	created := input.ID == 0
	req := &api.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/weekly-presets/%d", input.ID),
		Body:   body,
	}
	if created {
		day := input.DayOfWeek
		body.DayOfWeek = &day
		body.MealType = input.MealType
		req = &api.Request{
			Method: http.MethodPost,
			Path:   "/api/weekly-presets",
			Body:   body,
		}
	}

	preset := models.WeeklyPreset{
		ID:                  input.ID,
		DayOfWeek:           input.DayOfWeek,
		MealType:            input.MealType,
		Attending:           input.Attending,
		LatePlate:           input.LatePlate,
		LatePlateNotes:      input.Notes,
		LatePlatePickupTime: body.LatePlatePickupTime,
		Enabled:             input.Enabled,
	}

	err := s.presets.Mutate(ctx, &resource.Mutation[[]models.WeeklyPreset]{
		Call: func(ctx context.Context) error {
			var resp models.WeeklyPreset
			if err := s.requester.Do(ctx, req, &resp); err != nil {
				return err
			}
			if created && resp.ID != 0 {
				preset.ID = resp.ID
			}
			return nil
		},
		Patch: func(presets []models.WeeklyPreset) []models.WeeklyPreset {
			return upsert(presets, preset)
		},
		Banner: "Preset saved.",
	})
	if err != nil {
		return nil, err
	}

	s.refresh(ctx)
	return &SaveOutput{Preset: preset, Created: created}, nil
}

// Delete removes a preset and refetches the list
func (s *service) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return ErrNilInput
	}

	err := s.presets.Mutate(ctx, &resource.Mutation[[]models.WeeklyPreset]{
		Call: func(ctx context.Context) error {
			return s.requester.Do(ctx, &api.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/api/weekly-presets/%d", input.ID),
			}, nil)
		},
		Patch: func(presets []models.WeeklyPreset) []models.WeeklyPreset {
			out := make([]models.WeeklyPreset, 0, len(presets))
			for _, p := range presets {
				if p.ID != input.ID {
					out = append(out, p)
				}
			}
			return out
		},
		Banner: "Preset deleted.",
	})
	if err != nil {
		return err
	}

	s.refresh(ctx)
	return nil
}

// Apply applies the presets to the current week
func (s *service) Apply(ctx context.Context) (*ApplyOutput, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.requester.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/api/weekly-presets/apply",
	}, &resp); err != nil {
		return nil, err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Applied."
	}
	s.presets.SetBanner(msg)
	return &ApplyOutput{Message: msg}, nil
}

// refresh reloads after a change so server-side defaults show up
func (s *service) refresh(ctx context.Context) {
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("failed to reload presets", "error", err)
	}
}

func validate(input *SaveInput) error {
	if input == nil {
		return ErrNilInput
	}
	if input.Attending && input.LatePlate {
		return ErrAttendingAndLatePlate
	}
	if input.PickupTime != "" && !models.ValidPickupTime(input.PickupTime) {
		return ErrInvalidPickupTime
	}
	if input.ID != 0 {
		return nil
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > daySunday {
		return ErrInvalidDay
	}
	if !input.MealType.Valid() {
		return ErrInvalidMealType
	}
	if !SlotServed(input.DayOfWeek, input.MealType) {
		return ErrHiddenSlot
	}
	return nil
}

func upsert(presets []models.WeeklyPreset, preset models.WeeklyPreset) []models.WeeklyPreset {
	out := make([]models.WeeklyPreset, 0, len(presets)+1)
	replaced := false
	for _, p := range presets {
		if preset.ID != 0 && p.ID == preset.ID {
			// updates never move a preset to another slot
			preset.DayOfWeek = p.DayOfWeek
			preset.MealType = p.MealType
			out = append(out, preset)
			replaced = true
			continue
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, preset)
	}
	return out
}

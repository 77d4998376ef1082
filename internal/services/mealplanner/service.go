package mealplanner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/KirkDiggler/chapterplate/internal/session"
)

type service struct {
	requester api.Requester
	viewer    session.Viewer
	location  *time.Location
	logger    *slog.Logger

	mu    sync.Mutex
	slots []Slot
}

// New creates a meal planner
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Requester == nil {
		return nil, ErrNilRequester
	}
	if cfg.Viewer == nil {
		return nil, ErrNilViewer
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		requester: cfg.Requester,
		viewer:    cfg.Viewer,
		location:  loc,
		logger:    logger,
	}, nil
}

// GenerateWeek replaces the draft with the empty slots of the week
func (s *service) GenerateWeek(start time.Time) []Slot {
	slots := WeekSlots(start, s.location)

	s.mu.Lock()
	s.slots = slots
	s.mu.Unlock()

	return s.Slots()
}

// Slots returns a copy of the draft
func (s *service) Slots() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// SetSlot fills one drafted slot
func (s *service) SetSlot(input *SetSlotInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].Key == input.Key {
			s.slots[i].DishName = input.DishName
			s.slots[i].Description = input.Description
			s.slots[i].Image = input.Image
			return nil
		}
	}
	return ErrUnknownSlot
}

// bulkMeal is one entry of the meals part of a bulk upload
type bulkMeal struct {
	MealDate    string          `json:"meal_date"`
	MealType    models.MealType `json:"meal_type"`
	DishName    string          `json:"dish_name"`
	Description string          `json:"description"`
	ImageField  string          `json:"image_field,omitempty"`
}

// SaveAll uploads the filled slots as one bulk request
func (s *service) SaveAll(ctx context.Context) (*SaveAllOutput, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return nil, err
	}

	var meals []bulkMeal
	form := &api.Form{}
	for _, slot := range s.Slots() {
		dish := strings.TrimSpace(slot.DishName)
		if dish == "" {
			continue
		}

		meal := bulkMeal{
			MealDate:    formatMealDate(slot.MealDate),
			MealType:    slot.MealType,
			DishName:    dish,
			Description: slot.Description,
		}
		if slot.Image != nil {
			meal.ImageField = fmt.Sprintf("image_%d", len(meals))
			form.AddFile(api.FormFile{
				Field:       meal.ImageField,
				Filename:    slot.Image.Filename,
				ContentType: slot.Image.ContentType,
				Data:        slot.Image.Data,
			})
		}
		meals = append(meals, meal)
	}
	if len(meals) == 0 {
		return nil, ErrNoMealsToSave
	}

	encoded, err := json.Marshal(meals)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meals: %w", err)
	}
	form.AddField("meals", string(encoded))

	err = s.requester.Do(ctx, &api.Request{
		Method:    http.MethodPost,
		Path:      "/api/meals/bulk",
		Multipart: form,
	}, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.slots = nil
	s.mu.Unlock()

	s.logger.Info("saved meals", "count", len(meals))
	return &SaveAllOutput{
		Saved:   len(meals),
		Message: fmt.Sprintf("%d meals saved successfully!", len(meals)),
	}, nil
}

// GetMeal fetches one meal for editing
func (s *service) GetMeal(ctx context.Context, id int) (*models.Meal, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return nil, err
	}

	var meal models.Meal
	err := s.requester.Do(ctx, &api.Request{
		Path: fmt.Sprintf("/api/meals/%d", id),
	}, &meal)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// UpdateMeal replaces a meal, uploading a new image when given
func (s *service) UpdateMeal(ctx context.Context, input *UpdateMealInput) error {
	if input == nil {
		return ErrNilInput
	}
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}
	dish := strings.TrimSpace(input.DishName)
	switch {
	case dish == "":
		return ErrDishNameRequired
	case !input.MealType.Valid():
		return ErrInvalidMealType
	case input.MealDate.IsZero():
		return ErrMissingMealDate
	}

	form := &api.Form{}
	form.AddField("meal_date", formatMealDate(input.MealDate))
	form.AddField("meal_type", string(input.MealType))
	form.AddField("dish_name", dish)
	form.AddField("description", input.Description)
	if input.Image != nil {
		form.AddFile(api.FormFile{
			Field:       "image",
			Filename:    input.Image.Filename,
			ContentType: input.Image.ContentType,
			Data:        input.Image.Data,
		})
	} else if input.ImageURL != "" {
		form.AddField("image_url", input.ImageURL)
	}

	return s.requester.Do(ctx, &api.Request{
		Method:    http.MethodPut,
		Path:      fmt.Sprintf("/api/meals/%d", input.ID),
		Multipart: form,
	}, nil)
}

// DeleteMeal removes a meal
func (s *service) DeleteMeal(ctx context.Context, id int) error {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return err
	}

	return s.requester.Do(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/meals/%d", id),
	}, nil)
}

// Search finds meals by dish name
func (s *service) Search(ctx context.Context, query string) ([]models.Meal, error) {
	if _, err := session.RequireStaff(s.viewer); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var resp struct {
		Meals []models.Meal `json:"meals"`
	}
	err := s.requester.Do(ctx, &api.Request{
		Path:  "/api/meals/search",
		Query: url.Values{"q": {query}},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Meals, nil
}

// formatMealDate sends instants in UTC, matching what the server stores
func formatMealDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

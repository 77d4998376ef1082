package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/services/mealplanner"
	"gopkg.in/yaml.v3"
)

// plan is a week of meals written as YAML:
//
//	week_of: 2025-10-12
//	meals:
//	  dinner-sun: Tacos
//	  lunch-1:
//	    dish: Chicken Alfredo
//	    description: with garlic bread
//	    image: photos/alfredo.jpg
type plan struct {
	WeekOf string               `yaml:"week_of"`
	Meals  map[string]planEntry `yaml:"meals"`
}

type planEntry struct {
	Dish        string `yaml:"dish"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// UnmarshalYAML accepts either a bare dish name or the full mapping
func (e *planEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Dish = node.Value
		return nil
	}
	type raw planEntry
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*e = planEntry(r)
	return nil
}

func parsePlan(data []byte) (*plan, error) {
	var p plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if p.WeekOf == "" {
		return nil, fmt.Errorf("plan needs a week_of date")
	}
	if len(p.Meals) == 0 {
		return nil, fmt.Errorf("plan has no meals")
	}
	return &p, nil
}

// start is the week_of date at midnight in loc
func (p *plan) start(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", p.WeekOf, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("week_of must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// keys returns the slot keys in a stable order
func (p *plan) keys() []string {
	keys := make([]string, 0, len(p.Meals))
	for k := range p.Meals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fill copies the plan into the planner's draft. Image paths are relative
// to dir.
func (p *plan) fill(planner mealplanner.Service, dir string) error {
	for _, key := range p.keys() {
		entry := p.Meals[key]
		in := &mealplanner.SetSlotInput{
			Key:         key,
			DishName:    entry.Dish,
			Description: entry.Description,
		}
		if entry.Image != "" {
			img, err := loadImage(filepath.Join(dir, entry.Image))
			if err != nil {
				return err
			}
			in.Image = img
		}
		if err := planner.SetSlot(in); err != nil {
			return fmt.Errorf("slot %q: %w", key, err)
		}
	}
	return nil
}

func loadImage(path string) (*mealplanner.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &mealplanner.Image{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

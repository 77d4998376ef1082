package lateplates

import (
	"sort"

	"github.com/KirkDiggler/chapterplate/internal/models"
)

// GroupByDish buckets requests by dish name, sorted by name. Request order
// within a group is preserved.
func GroupByDish(plates []models.LatePlate) []Group {
	index := map[string]int{}
	var groups []Group
	for _, p := range plates {
		name := p.MealDishName
		if name == "" {
			name = UnknownMeal
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{DishName: name})
		}
		groups[i].LatePlates = append(groups[i].LatePlates, p)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].DishName < groups[j].DishName
	})
	return groups
}

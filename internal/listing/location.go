package listing

import (
	"sort"

	"fyyur/internal/models"
)

// LocationGroup lists the venues sharing one (city, state) pair.
type LocationGroup struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// groupByLocation buckets venues by exact (city, state). Groups are ordered by
// state then city, venues inside a group by ascending id.
func groupByLocation(venues []models.Venue, upcoming map[int64]int) []LocationGroup {
	index := make(map[models.Location]int)
	groups := []LocationGroup{}

	for _, v := range venues {
		loc := v.Location()
		i, ok := index[loc]
		if !ok {
			i = len(groups)
			index[loc] = i
			groups = append(groups, LocationGroup{City: loc.City, State: loc.State, Venues: []Summary{}})
		}
		groups[i].Venues = append(groups[i].Venues, Summary{
			ID:                 v.ID,
			Name:               v.Name,
			UpcomingShowsCount: upcoming[v.ID],
		})
	}

	for _, g := range groups {
		sort.Slice(g.Venues, func(i, j int) bool {
			return g.Venues[i].ID < g.Venues[j].ID
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].State != groups[j].State {
			return groups[i].State < groups[j].State
		}
		return groups[i].City < groups[j].City
	})

	return groups
}

package models

// Venue represents a music venue that hosts shows
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	Website            string   `json:"website,omitempty"`
	FacebookLink       string   `json:"facebook_link,omitempty"`
	ImageLink          string   `json:"image_link,omitempty"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description,omitempty"`
}

// Location is a (city, state) pair used to group venues
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Location returns the venue's (city, state) pair
func (v Venue) Location() Location {
	return Location{City: v.City, State: v.State}
}

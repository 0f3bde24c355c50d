// internal/models/snapshot.go
package models

// Snapshot is the full business data set returned by GET /api/data.
// Profile and Analytics are nil until loaded.
type Snapshot struct {
	Profile        *Profile        `json:"profile" yaml:"profile"`
	Posts          []Post          `json:"posts" yaml:"posts"`
	Reviews        []Review        `json:"reviews" yaml:"reviews"`
	Analytics      *Analytics      `json:"analytics" yaml:"analytics"`
	Locations      []Location      `json:"locations" yaml:"locations"`
	LocationGroups []LocationGroup `json:"locationGroups" yaml:"locationGroups"`
}

// EmptySnapshot has every collection present and empty.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Posts:          []Post{},
		Reviews:        []Review{},
		Locations:      []Location{},
		LocationGroups: []LocationGroup{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s *Snapshot) Normalize() {
	if s.Posts == nil {
		s.Posts = []Post{}
	}
	if s.Reviews == nil {
		s.Reviews = []Review{}
	}
	if s.Locations == nil {
		s.Locations = []Location{}
	}
	if s.LocationGroups == nil {
		s.LocationGroups = []LocationGroup{}
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Posts:          append([]Post{}, s.Posts...),
		Reviews:        append([]Review{}, s.Reviews...),
		Locations:      append([]Location{}, s.Locations...),
		LocationGroups: append([]LocationGroup{}, s.LocationGroups...),
	}
	if s.Profile != nil {
		p := s.Profile.Clone()
		out.Profile = &p
	}
	if s.Analytics != nil {
		a := s.Analytics.Clone()
		out.Analytics = &a
	}
	return out
}

// FindReview returns the index of the review with id, or -1.
func (s Snapshot) FindReview(id int) int {
	for i, r := range s.Reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}

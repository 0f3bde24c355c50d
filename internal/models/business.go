// internal/models/business.go
package models

// Profile is the business listing. There is one per account and updates replace it wholesale.
type Profile struct {
	Name     string       `json:"name" yaml:"name"`
	Category string       `json:"category" yaml:"category"`
	Address  string       `json:"address" yaml:"address"`
	Phone    string       `json:"phone" yaml:"phone"`
	Website  string       `json:"website" yaml:"website"`
	Hours    []HoursEntry `json:"hours" yaml:"hours"`
}

type HoursEntry struct {
	Day  string `json:"day" yaml:"day"`
	Time string `json:"time" yaml:"time"`
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	out := p
	if p.Hours != nil {
		out.Hours = append([]HoursEntry(nil), p.Hours...)
	}
	return out
}

// Post is a published update. Posts are created by the server and never edited client-side.
type Post struct {
	ID      int    `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date" yaml:"date"`
	Image   string `json:"image" yaml:"image"`
	Views   int    `json:"views" yaml:"views"`
	Clicks  int    `json:"clicks" yaml:"clicks"`
}

// Review is a customer review. An empty Reply means the review is unanswered.
type Review struct {
	ID      int    `json:"id" yaml:"id"`
	Author  string `json:"author" yaml:"author"`
	Avatar  string `json:"avatar" yaml:"avatar"`
	Rating  int    `json:"rating" yaml:"rating"`
	Content string `json:"content" yaml:"content"`
	Date    string `json:"date" yaml:"date"`
	Reply   string `json:"reply,omitempty" yaml:"reply,omitempty"`
}

// Replied reports whether the owner has answered the review.
func (r Review) Replied() bool {
	return r.Reply != ""
}

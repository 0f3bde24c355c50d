package devserver

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"business-dashboard/internal/models"
)

const postImageURL = "https://picsum.photos/seed/post%d/600/400"

// Dataset is the in-memory business data served by the dev backend.
type Dataset struct {
	mu         sync.RWMutex
	snap       models.Snapshot
	nextPostID int
	now        func() time.Time
}

func NewDataset(snap models.Snapshot) *Dataset {
	snap.Normalize()
	next := 1
	for _, p := range snap.Posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return &Dataset{snap: snap, nextPostID: next, now: time.Now}
}

// LoadDataset reads a YAML fixture with the same field names as GET /api/data.
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	var snap models.Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	if snap.Profile == nil {
		return nil, fmt.Errorf("fixtures %s: profile is required", path)
	}
	return NewDataset(snap), nil
}

func (d *Dataset) Snapshot() models.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap.Clone()
}

func (d *Dataset) ReplaceProfile(p models.Profile) models.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p.Hours == nil && d.snap.Profile != nil {
		p.Hours = d.snap.Profile.Hours
	}
	stored := p.Clone()
	d.snap.Profile = &stored
	return stored.Clone()
}

// AddPost assigns the next id and today's date and puts the post first.
func (d *Dataset) AddPost(content string) models.Post {
	d.mu.Lock()
	defer d.mu.Unlock()
	post := models.Post{
		ID:      d.nextPostID,
		Content: content,
		Date:    d.now().Format("2006-01-02"),
		Image:   fmt.Sprintf(postImageURL, d.nextPostID),
	}
	d.nextPostID++
	d.snap.Posts = append([]models.Post{post}, d.snap.Posts...)
	return post
}

// Reply sets the reply on a review. It returns false for an unknown id.
func (d *Dataset) Reply(reviewID int, reply string) (models.Review, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.snap.FindReview(reviewID)
	if i < 0 {
		return models.Review{}, false
	}
	d.snap.Reviews[i].Reply = reply
	return d.snap.Reviews[i], true
}

// DefaultDataset is a small cafe used when no fixture file is configured.
func DefaultDataset() *Dataset {
	return NewDataset(models.Snapshot{
		Profile: &models.Profile{
			Name:     "The Daily Grind",
			Category: "Coffee Shop",
			Address:  "123 Main Street, Springfield",
			Phone:    "(555) 123-4567",
			Website:  "https://dailygrind.example.com",
			Hours: []models.HoursEntry{
				{Day: "Monday", Time: "7:00 AM - 6:00 PM"},
				{Day: "Tuesday", Time: "7:00 AM - 6:00 PM"},
				{Day: "Wednesday", Time: "7:00 AM - 6:00 PM"},
				{Day: "Thursday", Time: "7:00 AM - 6:00 PM"},
				{Day: "Friday", Time: "7:00 AM - 8:00 PM"},
				{Day: "Saturday", Time: "8:00 AM - 8:00 PM"},
				{Day: "Sunday", Time: "8:00 AM - 4:00 PM"},
			},
		},
		Posts: []models.Post{
			{ID: 2, Content: "Our autumn menu is here! Try the maple oat latte. #autumn #coffee", Date: "2024-10-01",
				Image: "https://picsum.photos/seed/post2/600/400", Views: 1250, Clicks: 88},
			{ID: 1, Content: "Live acoustic music every Friday evening from 6 PM. #livemusic", Date: "2024-09-20",
				Image: "https://picsum.photos/seed/post1/600/400", Views: 980, Clicks: 45},
		},
		Reviews: []models.Review{
			{ID: 1, Author: "Sarah K.", Avatar: "https://i.pravatar.cc/150?u=sarah", Rating: 5,
				Content: "Best latte in town and the staff are so friendly!", Date: "2024-10-03"},
			{ID: 2, Author: "Mike R.", Avatar: "https://i.pravatar.cc/150?u=mike", Rating: 3,
				Content: "Good coffee but the wait was long on Saturday morning.", Date: "2024-09-28"},
			{ID: 3, Author: "Priya N.", Avatar: "https://i.pravatar.cc/150?u=priya", Rating: 1,
				Content: "My order was wrong and nobody seemed to care.", Date: "2024-09-25"},
			{ID: 4, Author: "Tom B.", Avatar: "https://i.pravatar.cc/150?u=tom", Rating: 4,
				Content: "Cozy spot to work, decent wifi.", Date: "2024-09-18",
				Reply: "Thanks Tom, see you again soon!"},
		},
		Analytics: &models.Analytics{
			Performance: models.Performance{
				ViewsSearch: 8520,
				ViewsMaps:   12340,
				Searches:    4210,
				CustomerActions: models.CustomerActions{
					Calls:         132,
					Directions:    418,
					WebsiteVisits: 1045,
				},
			},
			Queries: []models.QueryCount{
				{Query: "coffee near me", Count: 1520},
				{Query: "the daily grind", Count: 840},
				{Query: "best latte springfield", Count: 310},
				{Query: "cafe with wifi", Count: 205},
			},
			PhotoViews:      15800,
			LifetimeReviews: 214,
		},
		Locations: []models.Location{
			{ID: "all", Name: "All Locations", Group: "all"},
			{ID: "main", Name: "Main Street", Group: "downtown"},
			{ID: "station", Name: "Central Station Kiosk", Group: "downtown"},
			{ID: "lakeside", Name: "Lakeside", Group: "suburbs"},
		},
		LocationGroups: []models.LocationGroup{
			{ID: "all", Name: "All Groups"},
			{ID: "downtown", Name: "Downtown"},
			{ID: "suburbs", Name: "Suburbs"},
		},
	})
}

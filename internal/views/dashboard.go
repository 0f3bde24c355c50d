package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"business-dashboard/internal/models"
)

const (
	recentReviewCount = 3
	dateLayout        = "2006-01-02"
)

type StatCard struct {
	Title string
	Value string
}

// DateRange is an inclusive pair of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(dateLayout), r.End.Format(dateLayout))
}

// Overview is everything the dashboard page shows.
type Overview struct {
	Greeting       string
	Cards          []StatCard
	TopQueries     []models.QueryCount
	RecentReviews  []models.Review
	LocationGroups []models.LocationGroup
	Locations      []models.Location
	SelectedGroup  string
	Range          DateRange
	Comparison     DateRange
}

// Dashboard builds the overview from the current snapshot.
type Dashboard struct {
	source        SnapshotSource
	now           func() time.Time
	selectedGroup string
}

func NewDashboard(source SnapshotSource) *Dashboard {
	return &Dashboard{
		source:        source,
		now:           time.Now,
		selectedGroup: models.AllLocationsID,
	}
}

// SelectGroup narrows the location list. "all" (or "") shows every location.
func (d *Dashboard) SelectGroup(groupID string) {
	if groupID == "" {
		groupID = models.AllLocationsID
	}
	d.selectedGroup = groupID
}

// Build returns false while the profile or analytics are not loaded.
func (d *Dashboard) Build() (Overview, bool) {
	snap := d.source.Snapshot()
	if snap.Profile == nil || snap.Analytics == nil {
		return Overview{}, false
	}

	primary, comparison := DefaultRanges(d.now())
	return Overview{
		Greeting:       fmt.Sprintf("Welcome back, %s!", FirstName(snap.Profile.Name)),
		Cards:          StatCards(*snap.Analytics, snap.Reviews),
		TopQueries:     append([]models.QueryCount(nil), snap.Analytics.Queries...),
		RecentReviews:  RecentReviews(snap.Reviews, recentReviewCount),
		LocationGroups: snap.LocationGroups,
		Locations:      FilterLocations(snap.Locations, d.selectedGroup),
		SelectedGroup:  d.selectedGroup,
		Range:          primary,
		Comparison:     comparison,
	}, true
}

// StatCards lists the headline numbers in display order.
func StatCards(a models.Analytics, reviews []models.Review) []StatCard {
	p := a.Performance
	return []StatCard{
		{Title: "Total Views", Value: FormatCount(a.TotalViews())},
		{Title: "Search Views", Value: FormatCount(p.ViewsSearch)},
		{Title: "Map Views", Value: FormatCount(p.ViewsMaps)},
		{Title: "Website Visits", Value: FormatCount(p.CustomerActions.WebsiteVisits)},
		{Title: "Direction Requests", Value: FormatCount(p.CustomerActions.Directions)},
		{Title: "Calls", Value: FormatCount(p.CustomerActions.Calls)},
		{Title: "Searches", Value: FormatCount(p.Searches)},
		{Title: "Lifetime Reviews", Value: FormatCount(a.LifetimeReviews)},
		{Title: "Average Rating", Value: AverageRating(reviews)},
	}
}

// AverageRating is the mean rating to one decimal place, or "N/A" with no reviews.
func AverageRating(reviews []models.Review) string {
	if len(reviews) == 0 {
		return "N/A"
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	// Halves round up, e.g. 4.25 shows as 4.3.
	return fmt.Sprintf("%.1f", math.Round(avg*10)/10)
}

// FilterLocations keeps locations in group plus the synthetic "all" entry.
func FilterLocations(locations []models.Location, group string) []models.Location {
	if group == "" || group == models.AllLocationsID {
		return append([]models.Location(nil), locations...)
	}
	out := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		if loc.Group == group || loc.ID == models.AllLocationsID {
			out = append(out, loc)
		}
	}
	return out
}

// RecentReviews returns the first n reviews in stored order.
func RecentReviews(reviews []models.Review, n int) []models.Review {
	if len(reviews) < n {
		n = len(reviews)
	}
	return append([]models.Review(nil), reviews[:n]...)
}

// DefaultRanges returns the date filters preselected on the dashboard: one month
// back up to today, and for comparison the whole calendar month before that one.
func DefaultRanges(now time.Time) (primary, comparison DateRange) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	monthAgo := now.AddDate(0, -1, 0)
	primary = DateRange{Start: day(monthAgo), End: day(now)}

	compareEnd := time.Date(monthAgo.Year(), monthAgo.Month(), 0, 0, 0, 0, 0, now.Location())
	compareStart := time.Date(compareEnd.Year(), compareEnd.Month(), 1, 0, 0, 0, 0, now.Location())
	comparison = DateRange{Start: compareStart, End: compareEnd}
	return primary, comparison
}

// FirstName is the first word of a name.
func FirstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// internal/models/analytics.go
package models

type Analytics struct {
	Performance     Performance  `json:"performance" yaml:"performance"`
	Queries         []QueryCount `json:"queries" yaml:"queries"`
	PhotoViews      int          `json:"photoViews" yaml:"photoViews"`
	LifetimeReviews int          `json:"lifetimeReviews" yaml:"lifetimeReviews"`
}

type Performance struct {
	ViewsSearch     int             `json:"viewsSearch" yaml:"viewsSearch"`
	ViewsMaps       int             `json:"viewsMaps" yaml:"viewsMaps"`
	Searches        int             `json:"searches" yaml:"searches"`
	CustomerActions CustomerActions `json:"customerActions" yaml:"customerActions"`
}

type CustomerActions struct {
	Calls         int `json:"calls" yaml:"calls"`
	Directions    int `json:"directions" yaml:"directions"`
	WebsiteVisits int `json:"websiteVisits" yaml:"websiteVisits"`
}

type QueryCount struct {
	Query string `json:"query" yaml:"query"`
	Count int    `json:"count" yaml:"count"`
}

// TotalViews is map views plus search views.
func (a Analytics) TotalViews() int {
	return a.Performance.ViewsMaps + a.Performance.ViewsSearch
}

func (a Analytics) Clone() Analytics {
	out := a
	if a.Queries != nil {
		out.Queries = append([]QueryCount(nil), a.Queries...)
	}
	return out
}

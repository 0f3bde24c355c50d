// internal/models/location.go
package models

// AllLocationsID is the id of the synthetic "all" location and location group.
const AllLocationsID = "all"

type Location struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Group string `json:"group" yaml:"group"`
}

type LocationGroup struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Package project provides the Project catalog used as an analytic
// dimension on journal lines.
package project

import (
	"time"

	"moneta/internal/core/entity"
)

// Project is a cost-collection dimension.
type Project struct {
	entity.Catalog

	// StartDate is when the project begins (nullable)
	StartDate *time.Time `db:"start_date" json:"startDate,omitempty"`

	// EndDate is when the project closes (nullable)
	EndDate *time.Time `db:"end_date" json:"endDate,omitempty"`
}

// NewProject creates a new Project.
func NewProject(code, name string) *Project {
	return &Project{
		Catalog: entity.NewCatalog(code, name),
	}
}

// IsOpenAt returns true if the project is open on the given date.
func (p *Project) IsOpenAt(date time.Time) bool {
	if p.StartDate != nil && date.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && date.After(*p.EndDate) {
		return false
	}
	return true
}

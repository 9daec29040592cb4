// Package department provides the Department catalog used as an
// analytic dimension on journal lines.
package department

import (
	"moneta/internal/core/entity"
)

// Department is an organizational unit.
type Department struct {
	entity.Catalog
}

// NewDepartment creates a new Department.
func NewDepartment(code, name string) *Department {
	return &Department{
		Catalog: entity.NewCatalog(code, name),
	}
}

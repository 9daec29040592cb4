package catalog_repo

import (
	"moneta/internal/domain/catalogs/project"
	"moneta/internal/infrastructure/storage/postgres"
)

const projectTable = "cat_projects"

// ProjectRepo implements project.Repository.
type ProjectRepo struct {
	*BaseCatalogRepo[*project.Project]
}

// NewProjectRepo creates a new project repository.
func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*project.Project](
			projectTable,
			postgres.ExtractDBColumns[project.Project](),
			func() *project.Project { return &project.Project{} },
		),
	}
}

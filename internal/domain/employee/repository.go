package employee

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Employee, error)

	// Taxonomy listings: distinct non-empty values in ascending order.
	DistinctSections(ctx context.Context) ([]string, error)
	DistinctSubSections(ctx context.Context, section string) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

package contacts

import "context"

// Repo persists contacts. Operations addressing a missing id return errors.ErrNotFound.
type Repo interface {
	// List returns matching contacts ordered by name ascending
	List(ctx context.Context, filter Filter) ([]Contact, error)

	Get(ctx context.Context, id int64) (*Contact, error)

	// Create stores the contact and assigns its ID
	Create(ctx context.Context, contact *Contact) error

	// Update replaces every mutable field and updated_at of the contact with the same ID
	Update(ctx context.Context, contact *Contact) error

	Delete(ctx context.Context, id int64) error

	// Departments returns the distinct department names in ascending order
	Departments(ctx context.Context) ([]string, error)

	Count(ctx context.Context) (int64, error)
}

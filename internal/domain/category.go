package domain

// Category is a flat reference entry with no user ownership; the list is
// read-only in this API.
type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type CategoryRepository interface {
	GetAll() ([]*Category, error)
}

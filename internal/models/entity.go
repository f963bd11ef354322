package models

// Entity is implemented by every record managed through a list screen.
// SearchFields returns the values the free-text filter matches against;
// the set is fixed per entity type.
type Entity interface {
	EntityID() string
	SearchFields() []string
}

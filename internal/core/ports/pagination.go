package ports

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PageRequest is a 1-based page selector shared by all list operations.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

// Offset returns the number of items to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

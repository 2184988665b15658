package pagination

import "gorm.io/gorm"

const (
	defaultLimit = 100
	maxLimit     = 100
)

// Pagination is an offset/limit window over a list query.
type Pagination struct {
	Skip  int
	Limit int
}

// Normalize clamps the window to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Apply adds the window to a gorm statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Offset(p.Skip).Limit(p.Limit)
}

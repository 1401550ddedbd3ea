package shared

const (
	// DefaultPageSize applies when a listing does not ask for one
	DefaultPageSize = 20
	// MaxPageSize caps any listing
	MaxPageSize = 100
)

// Filter is the paging and sorting part of a repository query
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// DefaultFilter is the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Normalized fills zero fields from DefaultFilter and clamps PageSize to MaxPageSize
func (f Filter) Normalized() Filter {
	d := DefaultFilter()
	if f.Page < 1 {
		f.Page = d.Page
	}
	if f.PageSize <= 0 {
		f.PageSize = d.PageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = d.OrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = d.OrderDir
	}
	return f
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

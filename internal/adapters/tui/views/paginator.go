package views

// Paginator tracks the selected row of a list that keeps growing while a
// run is in progress. The visible page is derived from the cursor.
type Paginator struct {
	pageSize int
	cursor   int
	total    int
}

// NewPaginator creates a paginator showing pageSize rows at a time
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetTotal updates the row count. A cursor resting on the last row follows
// rows appended after it.
func (p *Paginator) SetTotal(total int) {
	following := p.total > 0 && p.cursor == p.total-1
	p.total = total
	switch {
	case total == 0:
		p.cursor = 0
	case following || p.cursor >= total:
		p.cursor = total - 1
	}
}

// SetPageSize changes how many rows a page holds
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.pageSize = size
	}
}

// Cursor returns the index of the selected row
func (p *Paginator) Cursor() int {
	return p.cursor
}

func (p *Paginator) CursorUp() bool {
	return p.moveTo(p.cursor - 1)
}

func (p *Paginator) CursorDown() bool {
	return p.moveTo(p.cursor + 1)
}

// NextPage selects the first row of the next page
func (p *Paginator) NextPage() bool {
	return p.moveTo(p.offset() + p.pageSize)
}

// PrevPage selects the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.offset() == 0 {
		return false
	}
	return p.moveTo(p.offset() - p.pageSize)
}

func (p *Paginator) moveTo(i int) bool {
	if i < 0 || i >= p.total || i == p.cursor {
		return false
	}
	p.cursor = i
	return true
}

func (p *Paginator) offset() int {
	return p.cursor / p.pageSize * p.pageSize
}

// VisibleRange returns the half-open row range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.pageSize, p.total)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.offset()/p.pageSize + 1
}

func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

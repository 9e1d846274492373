package listing

// View is a list screen's client-side state: the fetched items, the active
// filter and the current page. Changing the filter resets to page 1.
type View[T any, F interface{ Match(T) bool }] struct {
	items   []T
	filter  F
	page    int
	perPage int
}

func NewView[T any, F interface{ Match(T) bool }](perPage int, filter F) *View[T, F] {
	return &View[T, F]{filter: filter, page: 1, perPage: perPage}
}

// SetItems replaces the fetched items and keeps the page within range.
func (v *View[T, F]) SetItems(items []T) {
	v.items = items
	v.page = v.Current().Page
}

func (v *View[T, F]) Items() []T { return v.items }

func (v *View[T, F]) Filter() F { return v.filter }

func (v *View[T, F]) SetFilter(f F) {
	v.filter = f
	v.page = 1
}

func (v *View[T, F]) SetPage(page int) {
	v.page = page
	v.page = v.Current().Page
}

func (v *View[T, F]) Current() Page[T] {
	return Paginate(Filter(v.items, v.filter.Match), v.page, v.perPage)
}

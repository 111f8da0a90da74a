package domain

// DefaultItemsPerPage is a conservative row estimate for an A4 page. It is a
// fixed capacity, not a measurement of rendered row heights.
const DefaultItemsPerPage = 15

// Page is a printable slice of the line items. Only the last page carries
// the totals and signature block.
type Page struct {
	Number int
	Items  []*LineItem
	IsLast bool
}

// Repaginate splits items into consecutive pages of at most capacity rows.
// Pages are rebuilt from scratch on every call. No items yields a single
// empty last page.
func Repaginate(items []*LineItem, capacity int) []Page {
	if capacity < 1 {
		capacity = DefaultItemsPerPage
	}
	if len(items) <= capacity {
		return []Page{{Number: 1, Items: items[:len(items):len(items)], IsLast: true}}
	}

	count := (len(items) + capacity - 1) / capacity
	pages := make([]Page, 0, count)
	for start := 0; start < len(items); start += capacity {
		end := min(start+capacity, len(items))
		pages = append(pages, Page{
			Number: len(pages) + 1,
			Items:  items[start:end:end],
			IsLast: end == len(items),
		})
	}
	return pages
}

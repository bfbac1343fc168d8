package domain

// Item is a single entry offered by the menu
type Item struct {
	Key    string // identity; two items are the same entry when their keys match
	Title  string // text shown on the row, falls back to Key
	Detail string // optional markdown shown in the preview pager
}

// Label returns the text rendered for the item's row
func (i Item) Label() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Key
}

// Keys returns the keys of items in order
func Keys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}

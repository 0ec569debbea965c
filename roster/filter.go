package roster

// All is the selection that disables filtering.
const All = "All"

// Filter returns the rows of t whose category value equals selection, in
// their original order. Selecting All returns t itself.
func Filter(t *Table, category Column, selection string) *Table {
	if selection == All {
		return t
	}
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if category.Value(r).Raw == selection {
			rows = append(rows, r)
		}
	}
	return NewTable(t.Columns, rows)
}

// Filter applies the selection to the roster's own table.
func (r *Roster) Filter(selection string) *Table {
	return Filter(r.Table, r.Category, selection)
}

// Options lists the selector entries: All followed by the sorted categories.
func (r *Roster) Options() []string {
	opts := make([]string, 0, len(r.Categories)+1)
	opts = append(opts, All)
	for _, v := range r.Categories {
		opts = append(opts, v.Raw)
	}
	return opts
}

// Offers reports whether selection is one of Options.
func (r *Roster) Offers(selection string) bool {
	if selection == All {
		return true
	}
	for _, v := range r.Categories {
		if v.Raw == selection {
			return true
		}
	}
	return false
}

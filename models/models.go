package models

// ClassOption is one entry of the class selector
type ClassOption struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// ErrorView is a load failure as shown to the user
type ErrorView struct {
	Kind    string `json:"kind"`    // not_found, parse_error or schema_error
	Message string `json:"message"` // What went wrong
	Hint    string `json:"hint,omitempty"`
}

// RosterView is everything one render of the roster page needs
type RosterView struct {
	Title    string        `json:"title"`
	Selected string        `json:"selected"`
	Options  []ClassOption `json:"options"`
	Count    int           `json:"count"`
	Status   string        `json:"status"` // "Showing N student records."
	Columns  []string      `json:"columns"`
	Rows     [][]string    `json:"rows"`
	Error    *ErrorView    `json:"error,omitempty"`
}

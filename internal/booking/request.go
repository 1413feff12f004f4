package booking

// Request is a submission that passed every check. All fields hold
// sanitized text.
type Request struct {
	Name      string
	Email     string
	Phone     string
	ShootType string
	Date      string
	Message   string
	Agree     bool
	Marketing Attribution
}

// Attribution carries the campaign parameters and referrer captured when
// the form was first shown.
type Attribution struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
	Term     string
	Referrer string
}

// Entry is one non-empty attribution value.
type Entry struct {
	Key   string
	Value string
}

// Entries lists the non-empty values in a fixed order.
func (a Attribution) Entries() []Entry {
	all := []Entry{
		{"utm_source", a.Source},
		{"utm_medium", a.Medium},
		{"utm_campaign", a.Campaign},
		{"utm_content", a.Content},
		{"utm_term", a.Term},
		{"referrer", a.Referrer},
	}

	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.Value != "" {
			out = append(out, e)
		}
	}
	return out
}

// IsZero reports whether no attribution was captured.
func (a Attribution) IsZero() bool {
	return a == Attribution{}
}

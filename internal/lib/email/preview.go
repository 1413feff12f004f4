package email

// PreviewData contains sample template data for local preview.
var PreviewData = map[Template]any{
	TemplateBooking: BookingData{
		Brand: "Valeria Photo",
		Rows: []Row{
			{"Name", "Olena Kovalenko"},
			{"Email", "olena@example.com"},
			{"Phone", "+380 50 123 4567"},
			{"Type", "Wedding"},
			{"Date", "2026-06-14"},
			{"Message", "Ceremony at 15:00, about six hours of coverage."},
		},
		Marketing: []Row{
			{"utm_source", "instagram"},
			{"utm_campaign", "summer-weddings"},
		},
	},
}

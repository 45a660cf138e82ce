package model

// Theatre is a venue with a fixed daily schedule.  ShowTimes keep the
// catalog order ("10:00 AM" before "1:30 PM").  Price is the venue's base
// ticket price; bookings are charged the flat pricing.PerSeat instead,
// matching the summary the customer confirms.
type Theatre struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	ShowTimes []string `json:"show_times"`
	Price     int      `json:"price"`
}

package model

import "time"

// Receipt is produced when a booking draft is confirmed.  It copies the
// movie and theatre so that it stays readable after the draft is reset.
//
// Fields:
//  TotalPrice – seats × per-seat price.
//  ServiceFee – fixed convenience fee.
//  GrandTotal – TotalPrice + ServiceFee.
type Receipt struct {
	ID          string    `json:"id"`
	Movie       Movie     `json:"movie"`
	Theatre     Theatre   `json:"theatre"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Seats       []string  `json:"seats"`
	TotalPrice  int       `json:"total_price"`
	ServiceFee  int       `json:"service_fee"`
	GrandTotal  int       `json:"grand_total"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

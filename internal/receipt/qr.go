// Package receipt renders confirmed bookings for the box office.
package receipt

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/cinebook/internal/model"
)

// QRSize is the edge length of generated codes in pixels.
const QRSize = 256

// Content is the text encoded in a receipt's QR code.  Fields are
// pipe-separated so a scanner can split them without a JSON parser.
func Content(r model.Receipt) string {
	return strings.Join([]string{
		"CINEBOOK",
		r.ID,
		r.Movie.Title,
		r.Theatre.Name,
		r.Date + " " + r.Time,
		strings.Join(r.Seats, ","),
		fmt.Sprintf("%d", r.GrandTotal),
	}, "|")
}

// QRCode returns a PNG QR code for r.
func QRCode(r model.Receipt) ([]byte, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("receipt has no id")
	}
	return qrcode.Encode(Content(r), qrcode.Medium, QRSize)
}

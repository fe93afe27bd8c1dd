package service

import (
	"bytes"
	"io"

	"hrm/backend/internal/entity"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length of generated QR codes in pixels.
const QRSize = 256

const (
	badgeColumns = 2
	badgeRows    = 4
	badgeWidth   = 90.0
	badgeHeight  = 62.0
	badgeMargin  = 12.0
	badgeQR      = 38.0
)

// BadgePayload is the text encoded into an employee's QR code.
func BadgePayload(u entity.User) string {
	return "hrm:employee:" + u.ID.Hex()
}

// QRCode renders the badge payload of u as a png.
func QRCode(u entity.User) ([]byte, error) {
	png, err := qrcode.Encode(BadgePayload(u), qrcode.Medium, QRSize)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	return png, nil
}

// WriteBadges lays out one badge per employee on A4 pages, eight per page,
// and writes the pdf to w.
func WriteBadges(w io.Writer, users []entity.User) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Employee badges", true)
	pdf.SetAutoPageBreak(false, 0)

	perPage := badgeColumns * badgeRows
	if len(users) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(badgeMargin, badgeMargin+10, "No employees")
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, u := range users {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		slot := i % perPage
		x := badgeMargin + float64(slot%badgeColumns)*(badgeWidth+6)
		y := badgeMargin + float64(slot/badgeColumns)*(badgeHeight+6)

		pdf.SetDrawColor(120, 120, 120)
		pdf.Rect(x, y, badgeWidth, badgeHeight, "D")

		png, err := QRCode(u)
		if err != nil {
			return err
		}

		name := "qr-" + u.ID.Hex()
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(name, x+badgeWidth-badgeQR-4, y+(badgeHeight-badgeQR)/2, badgeQR, badgeQR, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		pdf.SetXY(x+4, y+8)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(badgeWidth-badgeQR-10, 6, tr(u.Name), "", "L", false)

		pdf.SetX(x + 4)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(badgeWidth-badgeQR-10, 5, tr(u.Designation), "", "L", false)

		pdf.SetX(x + 4)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(badgeWidth-badgeQR-10, 5, tr(u.Department), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "building badge sheet")
	}

	return errors.Wrap(pdf.Output(w), "writing badge sheet")
}

// Package export renders stored submissions for download.
package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

// Filename is the attachment name offered to browsers.
const Filename = "client_submissions.csv"

// ContentType of the rendered document.
const ContentType = "text/csv"

// Header is the first row of every export.
var Header = []string{"ID", "Full Name", "Email", "Phone Number", "Submitted At"}

// WriteCSV writes the header followed by one row per client, in the order
// given.
func WriteCSV(w io.Writer, clients []domain.Client) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, c := range clients {
		row := []string{c.ID, c.FullName, c.Email, c.PhoneNumber, formatTime(c.SubmittedAt)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderCSV is WriteCSV into a string.
func RenderCSV(clients []domain.Client) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, clients); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

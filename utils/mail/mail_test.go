package mail

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type templateData struct {
	CustomerName string
	Date         string
	Time         string
	ServiceName  string
	AdminNotes   string
	Year         int
}

func TestInitTemplatesParsesEmbeddedSet(t *testing.T) {
	require.NoError(t, InitTemplates(os.DirFS("../..")))

	assert.NotNil(t, templates.Lookup(BookingAcceptedTemplate))
	assert.NotNil(t, templates.Lookup(BookingRejectedTemplate))
}

func TestAcceptedTemplateRendersBookingDetails(t *testing.T) {
	require.NoError(t, InitTemplates(os.DirFS("../..")))

	var body bytes.Buffer
	err := templates.ExecuteTemplate(&body, BookingAcceptedTemplate, templateData{
		CustomerName: "Priya Sharma",
		Date:         "Tuesday, March 5, 2024",
		Time:         "1:30 PM",
		ServiceName:  "Hair Colour",
		Year:         2024,
	})
	require.NoError(t, err)

	out := body.String()
	assert.Contains(t, out, "Priya Sharma")
	assert.Contains(t, out, "Tuesday, March 5, 2024")
	assert.Contains(t, out, "1:30 PM")
	assert.Contains(t, out, "Hair Colour")
}

func TestRejectedTemplateShowsNoteOnlyWhenPresent(t *testing.T) {
	require.NoError(t, InitTemplates(os.DirFS("../..")))

	var withNote bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&withNote, BookingRejectedTemplate, templateData{
		CustomerName: "Priya",
		AdminNotes:   "Fully booked that afternoon.",
		Year:         2024,
	}))
	assert.Contains(t, withNote.String(), "Fully booked that afternoon.")
	assert.Contains(t, withNote.String(), "Note from the salon")

	var withoutNote bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&withoutNote, BookingRejectedTemplate, templateData{
		CustomerName: "Priya",
		Year:         2024,
	}))
	assert.NotContains(t, withoutNote.String(), "Note from the salon")
}

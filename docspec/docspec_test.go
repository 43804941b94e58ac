package docspec

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/inspectreport/inspection"
)

const sampleJSON = `{
	"building": {"name": "Marina Tower", "address": "Dubai Marina"},
	"inspector": {"name": "Sara Ali", "reference_id": "CD-2231"},
	"scheduled_for": "2024-03-01",
	"completed_at": "2024-03-02T09:30:00Z",
	"checklist": [
		{"question": "Exit signs lit?", "question_ar": "هل لافتات الخروج مضاءة؟", "status": "Compliant"},
		{"question": "Extinguishers serviced?", "status": "non-compliant",
		 "observation": "Tag expired", "nfpa_code": "NFPA 10 7.3", "uae_code": "UAE FLSC 4.2", "code": "legacy"},
		{"question": "Sprinkler valves open?"}
	],
	"corrective_actions": [{"item": 2, "title": "Replace extinguisher", "due_date": "2024-03-09"}],
	"notes": "Sprinkler room locked"
}`

const sampleYAML = `
building:
  name: Marina Tower
inspector:
  name: Sara Ali
completed_at: 2024-03-02 09:30
checklist:
  - question: Exit signs lit?
    status: Pending
    code: FLSC 3.1
subscription:
  subscribed: true
  company_info: ACME Safety LLC
`

func TestDecodeJSON(t *testing.T) {
	f, err := Decode([]byte(sampleJSON), JSON)
	require.NoError(t, err)
	doc, err := f.Document(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	assert.Equal(t, "Marina Tower", doc.BuildingName)
	assert.Equal(t, "CD-2231", doc.InspectorReferenceID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), doc.ScheduledFor)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC), doc.CompletedAt)

	require.Len(t, doc.Checklist, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{doc.Checklist[0].Index, doc.Checklist[1].Index, doc.Checklist[2].Index})
	assert.Equal(t, inspection.Compliant, doc.Checklist[0].Status)
	assert.Equal(t, inspection.NonCompliant, doc.Checklist[1].Status)
	assert.Equal(t, inspection.Pending, doc.Checklist[2].Status)
	assert.Equal(t, []string{"NFPA 10 7.3", "UAE FLSC 4.2"}, doc.Checklist[1].CodeReferences)

	require.Len(t, doc.CorrectiveActions, 1)
	assert.Equal(t, "Open", doc.CorrectiveActions[0].Status)
	assert.Equal(t, 2, doc.CorrectiveActions[0].EntryIndex)

	assert.False(t, doc.Footer.Branded())
}

func TestDecodeYAML(t *testing.T) {
	f, err := Decode([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	doc, err := f.Document("")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC), doc.CompletedAt)
	assert.Equal(t, []string{"FLSC 3.1"}, doc.Checklist[0].CodeReferences)
	assert.True(t, doc.Footer.Branded())
	assert.Equal(t, "ACME Safety LLC", doc.Footer.Text(inspection.DefaultAttribution))
}

func TestDecodeRejectsUnknownJSONFields(t *testing.T) {
	_, err := Decode([]byte(`{"building": {"name": "x"}, "colour": "red"}`), JSON)
	assert.Error(t, err)
}

func TestUnknownStatus(t *testing.T) {
	f := &File{
		Building:  Building{Name: "B"},
		Inspector: Inspector{Name: "I"},
		Checklist: []Item{{Question: "Q", Status: "maybe"}},
	}
	_, err := f.Document("")
	require.ErrorIs(t, err, inspection.ErrInvalidInput)
	var ie *inspection.InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "checklist[0].status", ie.Field)
}

func TestCodeReferences(t *testing.T) {
	tests := []struct {
		item Item
		want []string
	}{
		{Item{}, nil},
		{Item{Code: " legacy "}, []string{"legacy"}},
		{Item{NFPACode: "N", Code: "L"}, []string{"N", "L"}},
		{Item{NFPACode: "N", UAECode: "U", Code: "L"}, []string{"N", "U"}},
		{Item{NFPACode: "N", UAECode: "N"}, []string{"N"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.item.codeReferences())
	}
}

func TestImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.png"), []byte("hero-bytes"), 0o644))

	f := &File{
		Building:  Building{Name: "B"},
		Inspector: Inspector{Name: "I"},
		HeroImage: &Image{Path: "hero.png"},
		Signature: &Image{Data: base64.StdEncoding.EncodeToString([]byte("sig"))},
	}
	doc, err := f.Document(dir)
	require.NoError(t, err)
	assert.Equal(t, []byte("hero-bytes"), doc.HeroImage)
	assert.Equal(t, []byte("sig"), doc.SignatureImage)

	f.Logo = &Image{Path: "missing.png"}
	_, err = f.Document(dir)
	assert.ErrorContains(t, err, "logo")

	f.Logo = &Image{Data: "!!not base64"}
	_, err = f.Document(dir)
	assert.ErrorContains(t, err, "base64")
}

func TestCompanyLogoFallback(t *testing.T) {
	logo := base64.StdEncoding.EncodeToString([]byte("company"))
	f := &File{
		Building:     Building{Name: "B"},
		Inspector:    Inspector{Name: "I"},
		Subscription: &Subscription{Subscribed: true, CompanyLogo: &Image{Data: logo}},
	}
	doc, err := f.Document("")
	require.NoError(t, err)
	assert.True(t, doc.Footer.Branded())
	assert.Equal(t, "", doc.Footer.Text(inspection.DefaultAttribution))
	assert.Equal(t, []byte("company"), doc.BrandingLogo)

	// an inspection logo wins over the company one
	f.Logo = &Image{Data: base64.StdEncoding.EncodeToString([]byte("own"))}
	doc, err = f.Document("")
	require.NoError(t, err)
	assert.Equal(t, []byte("own"), doc.BrandingLogo)

	// not subscribed: watermark, no fallback
	f.Logo = nil
	f.Subscription.Subscribed = false
	doc, err = f.Document("")
	require.NoError(t, err)
	assert.False(t, doc.Footer.Branded())
	assert.Nil(t, doc.BrandingLogo)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inspection.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sara Ali", doc.InspectorName)

	_, err = Load(filepath.Join(dir, "inspection.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-03-02", "2024-03-02 09:30", "2024-03-02T09:30:00", "2024-03-02T13:30:00+04:00"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2, d.UTC().Day(), s)
	}
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
	_, err = ParseDate("March 2nd")
	assert.Error(t, err)
}

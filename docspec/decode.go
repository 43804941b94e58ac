package docspec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/inspectreport/inspection"
)

// Format is the encoding of an inspection file.
type Format int

const (
	JSON Format = iota
	YAML
)

// ErrUnknownFormat is returned for file extensions other than .json, .yaml
// and .yml.
var ErrUnknownFormat = errors.New("docspec: unknown file format")

// FormatOf picks the format from a file name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(name))
}

// Decode parses an inspection file.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("docspec: parsing yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("docspec: parsing json: %w", err)
		}
	}
	return &f, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("docspec: reading: %w", err)
	}
	return Decode(data, format)
}

// Load reads the file at path and builds the document. Image paths are
// resolved against the directory of the file.
func Load(path string) (*inspection.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docspec: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return f.Document(filepath.Dir(path))
}

// Document converts the file into a render input. Relative image paths are
// joined to baseDir. Statuses and images are checked here; the remaining
// document invariants are left to inspection.Document.Validate.
func (f *File) Document(baseDir string) (*inspection.Document, error) {
	doc := &inspection.Document{
		BuildingName:         f.Building.Name,
		BuildingAddress:      f.Building.Address,
		InspectorName:        f.Inspector.Name,
		InspectorReferenceID: f.Inspector.ReferenceID,
		ScheduledFor:         f.ScheduledFor.Time,
		CompletedAt:          f.CompletedAt.Time,
		Notes:                f.Notes,
	}

	var err error
	load := func(field string, img *Image) []byte {
		if err != nil {
			return nil
		}
		var data []byte
		data, err = img.bytes(baseDir)
		if err != nil {
			err = fmt.Errorf("docspec: %s: %w", field, err)
		}
		return data
	}

	doc.BrandingLogo = load("logo", f.Logo)
	doc.HeroImage = load("hero_image", f.HeroImage)
	doc.SignatureImage = load("signature", f.Signature)
	doc.Letterhead = load("letterhead", f.Letterhead)

	entries := make([]inspection.ChecklistEntry, len(f.Checklist))
	for i, it := range f.Checklist {
		status, serr := inspection.ParseStatus(it.Status)
		if serr != nil {
			return nil, &inspection.InputError{
				Field:  fmt.Sprintf("checklist[%d].status", i),
				Reason: fmt.Sprintf("unknown value %q", it.Status),
			}
		}
		entries[i] = inspection.ChecklistEntry{
			QuestionPrimary:   it.Question,
			QuestionSecondary: it.QuestionAR,
			Status:            status,
			Observation:       it.Observation,
			CodeReferences:    it.codeReferences(),
			Photo:             load(fmt.Sprintf("checklist[%d].photo", i), it.Photo),
		}
	}
	doc.Checklist = inspection.NewChecklist(entries...)

	for _, a := range f.CorrectiveActions {
		status := a.Status
		if status == "" {
			status = "Open"
		}
		doc.CorrectiveActions = append(doc.CorrectiveActions, inspection.CorrectiveAction{
			EntryIndex:        a.Item,
			Title:             a.Title,
			Description:       a.Description,
			ResponsiblePerson: a.Responsible,
			Status:            status,
			DueDate:           a.DueDate.Time,
		})
	}

	doc.Footer = inspection.WatermarkFooter()
	if s := f.Subscription; s != nil {
		companyLogo := load("subscription.company_logo", s.CompanyLogo)
		doc.Footer = inspection.ResolveFooter(s.Subscribed, s.CompanyInfo, len(companyLogo) > 0)
		if doc.Footer.Branded() && len(doc.BrandingLogo) == 0 {
			doc.BrandingLogo = companyLogo
		}
	}

	if err != nil {
		return nil, err
	}
	return doc, nil
}

// codeReferences returns the structured references followed by the legacy
// one, without blanks or repeats, capped at inspection.MaxCodeReferences.
func (it Item) codeReferences() []string {
	var refs []string
	for _, c := range []string{it.NFPACode, it.UAECode, it.Code} {
		c = strings.TrimSpace(c)
		if c == "" || contains(refs, c) {
			continue
		}
		if len(refs) == inspection.MaxCodeReferences {
			break
		}
		refs = append(refs, c)
	}
	return refs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (img *Image) bytes(baseDir string) ([]byte, error) {
	if img == nil {
		return nil, nil
	}
	if img.Data != "" {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(img.Data))
		if err != nil {
			return nil, fmt.Errorf("decoding base64: %w", err)
		}
		return data, nil
	}
	if img.Path == "" {
		return nil, nil
	}
	p := img.Path
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	return os.ReadFile(p)
}

// Date accepts RFC 3339 timestamps, "2006-01-02 15:04" and plain dates.
// Times without a zone are taken as UTC.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"}

// ParseDate parses s with the layouts Date accepts. An empty string is the
// zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("docspec: invalid date %q", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("docspec: date must be a string: %w", err)
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	v, err := ParseDate(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = v
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.UTC().Format(time.RFC3339), nil
}

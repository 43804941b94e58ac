// Package docspec reads inspection records from JSON or YAML files and turns
// them into inspection.Document values for the report engine.
//
// The schema follows the fields the inspection forms store. Images are given
// either inline as base64 or as a path relative to the file:
//
//	{
//	  "building": {"name": "Marina Tower", "address": "Dubai Marina"},
//	  "inspector": {"name": "Sara Ali", "reference_id": "CD-2231"},
//	  "completed_at": "2024-03-02T09:30:00Z",
//	  "hero_image": {"path": "tower.jpg"},
//	  "checklist": [
//	    {"question": "Exit signs lit?", "question_ar": "هل لافتات الخروج مضاءة؟",
//	     "status": "Compliant", "nfpa_code": "NFPA 101 7.10"}
//	  ],
//	  "subscription": {"subscribed": true, "company_info": "ACME Safety LLC"}
//	}
package docspec

// File is the top-level record of an inspection file.
type File struct {
	Building     Building  `json:"building" yaml:"building"`
	Inspector    Inspector `json:"inspector" yaml:"inspector"`
	ScheduledFor Date      `json:"scheduled_for,omitempty" yaml:"scheduled_for,omitempty"`
	CompletedAt  Date      `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	Logo       *Image `json:"logo,omitempty" yaml:"logo,omitempty"`
	HeroImage  *Image `json:"hero_image,omitempty" yaml:"hero_image,omitempty"`
	Signature  *Image `json:"signature,omitempty" yaml:"signature,omitempty"`
	Letterhead *Image `json:"letterhead,omitempty" yaml:"letterhead,omitempty"` // single page PDF

	Checklist         []Item   `json:"checklist" yaml:"checklist"`
	Notes             string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CorrectiveActions []Action `json:"corrective_actions,omitempty" yaml:"corrective_actions,omitempty"`

	Subscription *Subscription `json:"subscription,omitempty" yaml:"subscription,omitempty"`
}

// Building identifies the inspected site.
type Building struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Inspector is the person signing the report.
type Inspector struct {
	Name        string `json:"name" yaml:"name"`
	ReferenceID string `json:"reference_id,omitempty" yaml:"reference_id,omitempty"`
}

// Item is one checklist line.
type Item struct {
	Question    string `json:"question" yaml:"question"`
	QuestionAR  string `json:"question_ar,omitempty" yaml:"question_ar,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"` // Compliant, Non-Compliant, Pending
	Observation string `json:"observation,omitempty" yaml:"observation,omitempty"`

	NFPACode string `json:"nfpa_code,omitempty" yaml:"nfpa_code,omitempty"`
	UAECode  string `json:"uae_code,omitempty" yaml:"uae_code,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"` // legacy free-text reference

	Photo *Image `json:"photo,omitempty" yaml:"photo,omitempty"`
}

// Action is a corrective action raised against a checklist item.
type Action struct {
	Item        int    `json:"item" yaml:"item"` // 1-based checklist position
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Responsible string `json:"responsible,omitempty" yaml:"responsible,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"` // default Open
	DueDate     Date   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
}

// Subscription carries the white-label settings of the requesting user.
type Subscription struct {
	Subscribed  bool   `json:"subscribed" yaml:"subscribed"`
	CompanyInfo string `json:"company_info,omitempty" yaml:"company_info,omitempty"`
	CompanyLogo *Image `json:"company_logo,omitempty" yaml:"company_logo,omitempty"`
}

// Image is an embedded or referenced binary asset. Data wins over Path.
type Image struct {
	Data string `json:"data,omitempty" yaml:"data,omitempty"` // base64, standard encoding
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

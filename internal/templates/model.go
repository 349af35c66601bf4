package templates

import "time"

// Template is a catalog entry resumes are rendered with.
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	PreviewImage string    `json:"previewImage,omitempty"`
	IsPremium    bool      `json:"isPremium"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary is the subset of a template attached to resume listings.
type Summary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PreviewImage string `json:"previewImage,omitempty"`
}

// Summary returns the listing view of t.
func (t Template) Summary() Summary {
	return Summary{ID: t.ID, Name: t.Name, PreviewImage: t.PreviewImage}
}

// Patch holds the fields of a template update. Nil means absent.
type Patch struct {
	Name         *string
	Description  *string
	PreviewImage *string
	IsPremium    *bool
}

// Apply merges the present fields of p into t.
func (p Patch) Apply(t Template) Template {
	if p.Name != nil && *p.Name != "" {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.PreviewImage != nil {
		t.PreviewImage = *p.PreviewImage
	}
	if p.IsPremium != nil {
		t.IsPremium = *p.IsPremium
	}
	return t
}

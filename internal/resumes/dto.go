package resumes

import "resume-builder/internal/shared/validation"

var createRules = validation.RuleSet{
	Name: "resume.create",
	Messages: map[string]string{
		"name":                  "Name is required",
		"template":              "Template is required",
		"personalInfo.fullName": "Full name is required",
		"personalInfo.email":    "Email is required",
	},
}

var updateRules = validation.RuleSet{
	Name: "resume.update",
	Messages: map[string]string{
		"personalInfo.fullName": "Full name is required",
		"personalInfo.email":    "Email is required",
	},
	TagMessages: map[string]string{
		"personalInfo.email|email": "Please include a valid email",
	},
}

// CreateInput is the payload of a resume creation.
type CreateInput struct {
	Name           string          `json:"name" validate:"required"`
	Template       string          `json:"template" validate:"required"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
}

// UpdateInput is a partial resume. Nil fields are absent and keep their
// stored value.
type UpdateInput struct {
	Name           *string         `json:"name"`
	Template       *string         `json:"template"`
	PersonalInfo   *PersonalInfo   `json:"personalInfo"`
	Summary        *string         `json:"summary"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
}

// Apply merges in into res. Strings overwrite when non-empty; sections and
// personalInfo overwrite wholesale when present, so an explicit [] clears.
func (in UpdateInput) Apply(res Resume) Resume {
	if in.Name != nil && *in.Name != "" {
		res.Name = *in.Name
	}
	if in.Template != nil && *in.Template != "" {
		res.Template = *in.Template
	}
	if in.PersonalInfo != nil {
		res.PersonalInfo = *in.PersonalInfo
	}
	if in.Summary != nil && *in.Summary != "" {
		res.Summary = *in.Summary
	}
	if in.Education != nil {
		res.Education = in.Education
	}
	if in.Experience != nil {
		res.Experience = in.Experience
	}
	if in.Skills != nil {
		res.Skills = in.Skills
	}
	if in.Certifications != nil {
		res.Certifications = in.Certifications
	}
	if in.Languages != nil {
		res.Languages = in.Languages
	}
	return res
}

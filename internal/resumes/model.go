package resumes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"resume-builder/internal/templates"
)

// Resume is a user-owned document rendered with a template.
type Resume struct {
	ID             string          `json:"id"`
	Owner          string          `json:"owner"`
	Template       string          `json:"template"`
	Name           string          `json:"name"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary,omitempty"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PersonalInfo is the contact block of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
}

type Education struct {
	Institution  string `json:"institution,omitempty" bson:"institution,omitempty"`
	Degree       string `json:"degree,omitempty" bson:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" bson:"fieldOfStudy,omitempty"`
	StartDate    *Date  `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *Date  `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

type Experience struct {
	Company     string `json:"company,omitempty" bson:"company,omitempty"`
	Position    string `json:"position,omitempty" bson:"position,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	StartDate   *Date  `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     *Date  `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current     bool   `json:"current" bson:"current"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Certification struct {
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Issuer string `json:"issuer,omitempty" bson:"issuer,omitempty"`
	Date   *Date  `json:"date,omitempty" bson:"date,omitempty"`
}

type Language struct {
	Language    string `json:"language,omitempty" bson:"language,omitempty"`
	Proficiency string `json:"proficiency,omitempty" bson:"proficiency,omitempty"`
}

// Listed is a resume as returned by List, with the template's display fields
// in place of its id. Template is nil when the template no longer exists.
type Listed struct {
	Resume
	Template *templates.Summary `json:"template"`
}

// Detailed is a resume with its full template attached. Template is nil when
// the template no longer exists.
type Detailed struct {
	Resume
	Template *templates.Template `json:"template"`
}

const dateOnly = "2006-01-02"

// Date is a calendar date or instant inside a resume section. It decodes from
// RFC 3339 or YYYY-MM-DD and always encodes as RFC 3339 UTC.
type Date struct {
	time.Time
}

// NewDate wraps t as a *Date.
func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC()}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.UTC())
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	dt, ok := raw.TimeOK()
	if !ok {
		return fmt.Errorf("date: unexpected bson type %s", t)
	}
	d.Time = dt.UTC()
	return nil
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// normalize replaces nil sections with empty ones so they encode as [].
func (r Resume) normalize() Resume {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	return r
}

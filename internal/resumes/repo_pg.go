package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Sections are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, template_id, name, personal_info, summary,
	education, experience, skills, certifications, languages, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
	id, owner_id, template_id, name, personal_info, summary,
	education, experience, skills, certifications, languages, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7::jsonb, $8::jsonb, $9::jsonb, $10::jsonb, $11::jsonb, $12, $13)`
	res = res.normalize()
	res.ID = uuid.NewString()
	payload, err := marshalSections(res)
	if err != nil {
		return Resume{}, err
	}
	_, err = r.DB.ExecContext(ctx, query,
		res.ID,
		res.Owner,
		res.Template,
		res.Name,
		payload.personalInfo,
		nullableString(res.Summary),
		payload.education,
		payload.experience,
		payload.skills,
		payload.certifications,
		payload.languages,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrInvalidID
	}
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, res Resume) (Resume, error) {
	if _, err := uuid.Parse(res.ID); err != nil {
		return Resume{}, ErrInvalidID
	}
	query := `
UPDATE resumes
SET template_id = $2,
    name = $3,
    personal_info = $4::jsonb,
    summary = $5,
    education = $6::jsonb,
    experience = $7::jsonb,
    skills = $8::jsonb,
    certifications = $9::jsonb,
    languages = $10::jsonb,
    updated_at = $11
WHERE id = $1
RETURNING ` + resumeColumns
	res = res.normalize()
	payload, err := marshalSections(res)
	if err != nil {
		return Resume{}, err
	}
	updated, err := scanResume(r.DB.QueryRowContext(ctx, query,
		res.ID,
		res.Template,
		res.Name,
		payload.personalInfo,
		nullableString(res.Summary),
		payload.education,
		payload.experience,
		payload.skills,
		payload.certifications,
		payload.languages,
		res.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return updated, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type sectionPayload struct {
	personalInfo   []byte
	education      []byte
	experience     []byte
	skills         []byte
	certifications []byte
	languages      []byte
}

func marshalSections(res Resume) (sectionPayload, error) {
	var (
		p   sectionPayload
		err error
	)
	fields := []struct {
		dst   *[]byte
		value any
		name  string
	}{
		{&p.personalInfo, res.PersonalInfo, "personal_info"},
		{&p.education, res.Education, "education"},
		{&p.experience, res.Experience, "experience"},
		{&p.skills, res.Skills, "skills"},
		{&p.certifications, res.Certifications, "certifications"},
		{&p.languages, res.Languages, "languages"},
	}
	for _, f := range fields {
		if *f.dst, err = json.Marshal(f.value); err != nil {
			return sectionPayload{}, fmt.Errorf("marshal %s: %w", f.name, err)
		}
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		res     Resume
		summary sql.NullString
		p       sectionPayload
	)
	if err := row.Scan(
		&res.ID,
		&res.Owner,
		&res.Template,
		&res.Name,
		&p.personalInfo,
		&summary,
		&p.education,
		&p.experience,
		&p.skills,
		&p.certifications,
		&p.languages,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	res.Summary = summary.String
	res.CreatedAt = res.CreatedAt.UTC()
	res.UpdatedAt = res.UpdatedAt.UTC()

	fields := []struct {
		raw  []byte
		dst  any
		name string
	}{
		{p.personalInfo, &res.PersonalInfo, "personal_info"},
		{p.education, &res.Education, "education"},
		{p.experience, &res.Experience, "experience"},
		{p.skills, &res.Skills, "skills"},
		{p.certifications, &res.Certifications, "certifications"},
		{p.languages, &res.Languages, "languages"},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return Resume{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	return res.normalize(), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)

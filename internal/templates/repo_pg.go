package templates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const templateColumns = `id, name, description, preview_image, is_premium, created_at`

func (r *PGRepo) Create(ctx context.Context, t Template) (Template, error) {
	const query = `
INSERT INTO templates (id, name, description, preview_image, is_premium, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	t.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Name,
		nullableString(t.Description),
		nullableString(t.PreviewImage),
		t.IsPremium,
		t.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Template{}, ErrDuplicate
		}
		return Template{}, err
	}
	return t, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Template, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Template{}, ErrInvalidID
	}
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1 LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByIDs(ctx context.Context, ids []string) (map[string]Template, error) {
	valid := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	out := make(map[string]Template, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(valid))
	args := make([]any, len(valid))
	for i, id := range valid {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out[t.ID] = t
	}
	return out, rows.Err()
}

func (r *PGRepo) FindByName(ctx context.Context, name string) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE name = $1 LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, name))
}

func (r *PGRepo) List(ctx context.Context) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, t Template) (Template, error) {
	const query = `
UPDATE templates
SET name = $2, description = $3, preview_image = $4, is_premium = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.Name,
		nullableString(t.Description),
		nullableString(t.PreviewImage),
		t.IsPremium,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Template{}, ErrDuplicate
		}
		return Template{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Template{}, ErrNotFound
	}
	return t, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Replace(ctx context.Context, catalog []Template) ([]Template, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM templates`); err != nil {
		return nil, err
	}
	const insert = `
INSERT INTO templates (id, name, description, preview_image, is_premium, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		t.ID = uuid.NewString()
		if _, err := tx.ExecContext(ctx, insert,
			t.ID, t.Name, nullableString(t.Description), nullableString(t.PreviewImage), t.IsPremium, t.CreatedAt,
		); err != nil {
			if db.IsUniqueViolation(err) {
				return nil, ErrDuplicate
			}
			return nil, err
		}
		out = append(out, t)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row rowScanner) (Template, error) {
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return t, nil
}

func scanTemplate(row rowScanner) (Template, error) {
	var t Template
	var description, previewImage sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &description, &previewImage, &t.IsPremium, &t.CreatedAt); err != nil {
		return Template{}, err
	}
	t.Description = description.String
	t.PreviewImage = previewImage.String
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)

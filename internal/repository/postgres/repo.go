// Package postgres stores businesses in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/bizdex/internal/domain"
	"github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

const columns = `id, name, category, category_id, description, city, address, lat, lng,
	is_verified, is_featured, is_premium, is_remote, rating, review_count, years_of_experience,
	images, phone, email, website, owner_id, created_at, updated_at`

const schema = `CREATE TABLE IF NOT EXISTS businesses (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL DEFAULT '',
	category_id         TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	city                TEXT NOT NULL DEFAULT '',
	address             TEXT NOT NULL DEFAULT '',
	lat                 DOUBLE PRECISION NOT NULL DEFAULT 0,
	lng                 DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_verified         BOOLEAN NOT NULL DEFAULT FALSE,
	is_featured         BOOLEAN NOT NULL DEFAULT FALSE,
	is_premium          BOOLEAN NOT NULL DEFAULT FALSE,
	is_remote           BOOLEAN NOT NULL DEFAULT FALSE,
	rating              DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count        INTEGER NOT NULL DEFAULT 0,
	years_of_experience INTEGER NOT NULL DEFAULT 0,
	images              TEXT[] NOT NULL DEFAULT '{}',
	phone               TEXT NOT NULL DEFAULT '',
	email               TEXT NOT NULL DEFAULT '',
	website             TEXT NOT NULL DEFAULT '',
	owner_id            TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS businesses_category_id_idx ON businesses (category_id)`

const upsert = `INSERT INTO businesses (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name, category = EXCLUDED.category, category_id = EXCLUDED.category_id,
	description = EXCLUDED.description, city = EXCLUDED.city, address = EXCLUDED.address,
	lat = EXCLUDED.lat, lng = EXCLUDED.lng,
	is_verified = EXCLUDED.is_verified, is_featured = EXCLUDED.is_featured,
	is_premium = EXCLUDED.is_premium, is_remote = EXCLUDED.is_remote,
	rating = EXCLUDED.rating, review_count = EXCLUDED.review_count,
	years_of_experience = EXCLUDED.years_of_experience, images = EXCLUDED.images,
	phone = EXCLUDED.phone, email = EXCLUDED.email, website = EXCLUDED.website,
	owner_id = EXCLUDED.owner_id, updated_at = EXCLUDED.updated_at`

// filter keys to columns
var filterColumns = map[string]string{
	filter.KeyCategoryID: "category_id",
	filter.KeyIsRemote:   "is_remote",
	filter.KeyIsFeatured: "is_featured",
}

// Repo implements the business storage collaborator on PostgreSQL.
type Repo struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

// New creates a repository over an open connection pool.
func New(conn *sql.DB) *Repo {
	return &Repo{db: conn, now: time.Now}
}

// EnsureSchema creates the businesses table when absent.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Fetch returns records matching expr ordered by creation time. limit 0 means all.
func (r *Repo) Fetch(ctx context.Context, expr filter.Expression, limit int) ([]business.Business, error) {
	query, args, err := buildFetch(expr, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []business.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return out, nil
}

// Get returns a business by id.
func (r *Repo) Get(ctx context.Context, id string) (business.Business, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM businesses WHERE id = $1`, id)
	b, err := scanBusiness(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return business.Business{}, domain.ErrNotFound
		}
		return business.Business{}, fmt.Errorf("get business %s: %w", id, err)
	}
	return b, nil
}

// Exists reports whether a business with id is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", id, err)
	}
	return ok, nil
}

// Save upserts a business.
func (r *Repo) Save(ctx context.Context, b business.Business) error {
	if _, err := r.db.ExecContext(ctx, upsert, r.values(&b)...); err != nil {
		return fmt.Errorf("upsert business %s: %w", b.ID, err)
	}
	return nil
}

// SaveMany upserts businesses in one transaction.
func (r *Repo) SaveMany(ctx context.Context, bs []business.Business) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for i := range bs {
		if _, err := tx.ExecContext(ctx, upsert, r.values(&bs[i])...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert business %s: %w", bs[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of stored businesses.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count businesses: %w", err)
	}
	return n, nil
}

func buildFetch(expr filter.Expression, limit int) (string, []any, error) {
	var (
		where []string
		args  []any
	)
	for _, c := range expr.Must() {
		col, ok := filterColumns[c.Key()]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter key %q", c.Key())
		}
		var v any = c.Match()
		if col != "category_id" {
			parsed, err := strconv.ParseBool(c.Match())
			if err != nil {
				return "", nil, fmt.Errorf("filter %s: %w", c.Key(), err)
			}
			v = parsed
		}
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + columns + ` FROM businesses`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at, id")
	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBusiness(s scanner) (business.Business, error) {
	var b business.Business
	var images []string
	err := s.Scan(
		&b.ID, &b.Name, &b.Category, &b.CategoryID, &b.Description, &b.City, &b.Address,
		&b.Lat, &b.Lng,
		&b.IsVerified, &b.IsFeatured, &b.IsPremium, &b.IsRemote,
		&b.Rating, &b.ReviewCount, &b.YearsOfExperience,
		pq.Array(&images), &b.Phone, &b.Email, &b.Website, &b.OwnerID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return business.Business{}, err
	}
	b.Images = images
	return business.Normalize(b), nil
}

func (r *Repo) values(b *business.Business) []any {
	created, updated := b.CreatedAt, b.UpdatedAt
	if created.IsZero() {
		created = r.now().UTC()
	}
	if updated.IsZero() {
		updated = created
	}
	images := b.Images
	if images == nil {
		images = []string{}
	}
	return []any{
		b.ID, b.Name, b.Category, b.CategoryID, b.Description, b.City, b.Address,
		b.Lat, b.Lng,
		b.IsVerified, b.IsFeatured, b.IsPremium, b.IsRemote,
		b.Rating, b.ReviewCount, b.YearsOfExperience,
		pq.Array(images), b.Phone, b.Email, b.Website, b.OwnerID,
		created, updated,
	}
}

package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"datacatalog/internal/pagination"
	"datacatalog/internal/tag"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// GetAll runs the count query and the windowed data query inside one
// transaction so both see the same snapshot: total_items and items can never
// disagree because of a concurrent write between the two queries.
func (r *PostgresRepo) GetAll(ctx context.Context, page pagination.Page, spec Spec) ([]View, int, error) {
	q := buildListQuery(spec, page)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	var total int
	if err := tx.QueryRow(ctx, q.countSQL, q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count datasets: %w", err)
	}

	rows, err := tx.Query(ctx, q.dataSQL, q.dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		v, err := scanView(rows, q.highlighted)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, tx.Commit(ctx)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id uuid.UUID) (Dataset, error) {
	sql := "SELECT " + selectColumns + fromClause + "\n\tWHERE d.id = $1"

	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return Dataset{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Dataset{}, err
		}
		return Dataset{}, ErrNotFound
	}

	v, err := scanView(rows, false)
	if err != nil {
		return Dataset{}, err
	}
	return v.Dataset, nil
}

// Insert stores the catalog record, the dataset row and both association sets
// in one transaction: a partial write (an orphan catalog record, a dataset
// without its formats) is never observable.
func (r *PostgresRepo) Insert(ctx context.Context, d Dataset) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx)

	// The catalog record goes first: the dataset row references it.
	// created_at is filled in by the database, never by the caller.
	_, err = tx.Exec(ctx,
		"INSERT INTO catalog_record (id) VALUES ($1)",
		d.CatalogRecord.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert catalog record: %w", err)
	}

	const datasetSQL = `
		INSERT INTO dataset (
			id, catalog_record_id, title, description, service,
			geographical_coverage, technical_source, producer_email,
			contact_emails, update_frequency, last_updated_at, published_url, license
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = tx.Exec(ctx, datasetSQL,
		d.ID, d.CatalogRecord.ID, d.Title, d.Description, d.Service,
		string(d.GeographicalCoverage), d.TechnicalSource, d.ProducerEmail,
		d.ContactEmails, frequencyString(d.UpdateFrequency), d.LastUpdatedAt,
		d.PublishedURL, d.License)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert dataset: %w", err)
	}

	if err := insertAssociations(ctx, tx, d); err != nil {
		return uuid.Nil, err
	}

	return d.ID, tx.Commit(ctx)
}

// Update is a full replace: every scalar column and both association sets are
// overwritten with exactly what the entity carries.
func (r *PostgresRepo) Update(ctx context.Context, d Dataset) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateSQL = `
		UPDATE dataset SET
			title = $2,
			description = $3,
			service = $4,
			geographical_coverage = $5,
			technical_source = $6,
			producer_email = $7,
			contact_emails = $8,
			update_frequency = $9,
			last_updated_at = $10,
			published_url = $11,
			license = $12
		WHERE id = $1`

	ct, err := tx.Exec(ctx, updateSQL,
		d.ID, d.Title, d.Description, d.Service,
		string(d.GeographicalCoverage), d.TechnicalSource, d.ProducerEmail,
		d.ContactEmails, frequencyString(d.UpdateFrequency), d.LastUpdatedAt,
		d.PublishedURL, d.License)
	if err != nil {
		return fmt.Errorf("update dataset: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM dataset_tag WHERE dataset_id = $1", d.ID); err != nil {
		return fmt.Errorf("clear dataset tags: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM dataset_dataformat WHERE dataset_id = $1", d.ID); err != nil {
		return fmt.Errorf("clear dataset formats: %w", err)
	}

	if err := insertAssociations(ctx, tx, d); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete is idempotent: an id that does not exist (already deleted, or never
// created) succeeds silently. Association rows go away with the dataset via
// ON DELETE CASCADE; the catalog record is removed explicitly since the
// dataset holds the foreign key.
func (r *PostgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var recordID uuid.UUID
	err = tx.QueryRow(ctx,
		"DELETE FROM dataset WHERE id = $1 RETURNING catalog_record_id",
		id).Scan(&recordID)
	if errors.Is(err, pgx.ErrNoRows) {
		return tx.Commit(ctx)
	}
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM catalog_record WHERE id = $1", recordID); err != nil {
		return fmt.Errorf("delete catalog record: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) GetServiceSet(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "SELECT DISTINCT service FROM dataset ORDER BY service")
}

func (r *PostgresRepo) GetTechnicalSourceSet(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx,
		"SELECT DISTINCT technical_source FROM dataset WHERE technical_source IS NOT NULL ORDER BY technical_source")
}

func (r *PostgresRepo) GetLicenseSet(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx,
		"SELECT DISTINCT license FROM dataset WHERE license IS NOT NULL ORDER BY license")
}

func (r *PostgresRepo) distinctColumn(ctx context.Context, sql string) ([]string, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func insertAssociations(ctx context.Context, tx pgx.Tx, d Dataset) error {
	if len(d.Formats) > 0 {
		_, err := tx.Exec(ctx, `
			INSERT INTO dataset_dataformat (dataset_id, dataformat_id)
			SELECT $1, id FROM dataformat WHERE name = ANY($2)`,
			d.ID, formatStrings(d.Formats))
		if err != nil {
			return fmt.Errorf("attach formats: %w", err)
		}
	}

	if len(d.Tags) > 0 {
		tagIDs := make([]uuid.UUID, len(d.Tags))
		for i, t := range d.Tags {
			tagIDs[i] = t.ID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO dataset_tag (dataset_id, tag_id)
			SELECT $1, unnest($2::uuid[])`,
			d.ID, uuidStrings(tagIDs))
		if err != nil {
			return fmt.Errorf("attach tags: %w", err)
		}
	}

	return nil
}

func scanView(rows pgx.Rows, highlighted bool) (View, error) {
	var (
		v             View
		coverage      string
		frequency     *string
		formats       []string
		tagsJSON      []byte
		headlineTitle string
		headlineDesc  string
	)

	dest := []any{
		&v.ID, &v.Title, &v.Description, &v.Service, &coverage,
		&v.TechnicalSource, &v.ProducerEmail, &v.ContactEmails, &frequency,
		&v.LastUpdatedAt, &v.PublishedURL, &v.License,
		&v.CatalogRecord.ID, &v.CatalogRecord.CreatedAt,
		&formats, &tagsJSON,
	}
	if highlighted {
		dest = append(dest, &headlineTitle, &headlineDesc)
	}

	if err := rows.Scan(dest...); err != nil {
		return View{}, fmt.Errorf("scan dataset: %w", err)
	}

	v.GeographicalCoverage = GeographicalCoverage(coverage)
	if frequency != nil {
		f := UpdateFrequency(*frequency)
		v.UpdateFrequency = &f
	}

	v.Formats = make([]DataFormat, len(formats))
	for i, f := range formats {
		v.Formats[i] = DataFormat(f)
	}

	if err := json.Unmarshal(tagsJSON, &v.Tags); err != nil {
		return View{}, fmt.Errorf("decode dataset tags: %w", err)
	}
	if v.Tags == nil {
		v.Tags = []tag.Tag{}
	}

	if highlighted {
		// A row can match on its title alone; the description headline is
		// only meaningful when the description itself contains a match.
		v.Headlines = &Headlines{Title: headlineTitle}
		if strings.Contains(headlineDesc, "<mark>") {
			v.Headlines.Description = &headlineDesc
		}
	}

	return v, nil
}

func frequencyString(f *UpdateFrequency) *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

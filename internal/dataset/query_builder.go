package dataset

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"datacatalog/internal/pagination"
)

// selectColumns are the columns every listing and get-by-id query scans.
// Formats and tags are folded into one row per dataset with correlated
// aggregates so the window arithmetic stays exact.
const selectColumns = `
	d.id, d.title, d.description, d.service, d.geographical_coverage,
	d.technical_source, d.producer_email, d.contact_emails, d.update_frequency,
	d.last_updated_at, d.published_url, d.license,
	cr.id, cr.created_at,
	(SELECT COALESCE(array_agg(df.name ORDER BY df.name), '{}')
	   FROM dataset_dataformat dd
	   JOIN dataformat df ON df.id = dd.dataformat_id
	  WHERE dd.dataset_id = d.id),
	(SELECT COALESCE(json_agg(json_build_object('id', t.id, 'name', t.name) ORDER BY t.name), '[]')
	   FROM dataset_tag dt
	   JOIN tag t ON t.id = dt.tag_id
	  WHERE dt.dataset_id = d.id)`

const fromClause = `
	FROM dataset d
	JOIN catalog_record cr ON cr.id = d.catalog_record_id`

// listQuery is one executable listing: a windowed data query, the matching
// unwindowed count query, and their shared arguments (the window arguments
// are appended to the data query only).
type listQuery struct {
	countSQL    string
	dataSQL     string
	args        []any
	dataArgs    []any
	highlighted bool
}

// buildListQuery turns a Spec plus a page window into SQL. Each facet present
// in the spec contributes exactly one conjunctive clause that is an any-of
// disjunction over its values; absent facets impose no constraint. A search
// term switches the ordering from newest-first to rank-descending.
func buildListQuery(spec Spec, page pagination.Page) listQuery {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if len(spec.GeographicalCoverage) > 0 {
		clauses = append(clauses, fmt.Sprintf("d.geographical_coverage = ANY($%d)", argn))
		args = append(args, coverageStrings(spec.GeographicalCoverage))
		argn++
	}

	if len(spec.Service) > 0 {
		clauses = append(clauses, fmt.Sprintf("d.service = ANY($%d)", argn))
		args = append(args, spec.Service)
		argn++
	}

	if len(spec.TechnicalSource) > 0 {
		clauses = append(clauses, fmt.Sprintf("d.technical_source = ANY($%d)", argn))
		args = append(args, spec.TechnicalSource)
		argn++
	}

	if len(spec.License) > 0 {
		clauses = append(clauses, fmt.Sprintf("d.license = ANY($%d)", argn))
		args = append(args, spec.License)
		argn++
	}

	if len(spec.Format) > 0 {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM dataset_dataformat dd
			JOIN dataformat df ON df.id = dd.dataformat_id
			WHERE dd.dataset_id = d.id AND df.name = ANY($%d))`, argn))
		args = append(args, formatStrings(spec.Format))
		argn++
	}

	if len(spec.TagID) > 0 {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM dataset_tag dt
			WHERE dt.dataset_id = d.id AND dt.tag_id = ANY($%d))`, argn))
		args = append(args, uuidStrings(spec.TagID))
		argn++
	}

	cols := selectColumns
	orderBy := "cr.created_at DESC"
	highlighted := false

	if spec.Search != nil {
		// plainto_tsquery normalizes the term into lexemes; an empty or
		// garbage term yields an empty tsquery, which matches no rows.
		tsQuery := fmt.Sprintf("plainto_tsquery('french', $%d)", argn)
		args = append(args, spec.Search.Term)
		argn++

		clauses = append(clauses, "d.search_tsv @@ "+tsQuery)
		orderBy = fmt.Sprintf("ts_rank_cd(d.search_tsv, %s) DESC, cr.created_at DESC", tsQuery)

		if spec.Search.Highlight {
			cols += fmt.Sprintf(`,
	ts_headline('french', d.title, %s, 'StartSel=<mark>, StopSel=</mark>, HighlightAll=1'),
	ts_headline('french', d.description, %s, 'StartSel=<mark>, StopSel=</mark>, MaxFragments=10')`,
				tsQuery, tsQuery)
			highlighted = true
		}
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	countSQL := "SELECT COUNT(*)" + fromClause + "\n\t" + where

	dataSQL := fmt.Sprintf("SELECT %s%s\n\t%s\n\tORDER BY %s\n\tLIMIT $%d OFFSET $%d",
		cols, fromClause, where, orderBy, argn, argn+1)

	dataArgs := append(append([]any{}, args...), page.Limit(), page.Offset())

	return listQuery{
		countSQL:    countSQL,
		dataSQL:     dataSQL,
		args:        args,
		dataArgs:    dataArgs,
		highlighted: highlighted,
	}
}

func coverageStrings(values []GeographicalCoverage) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func formatStrings(values []DataFormat) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func uuidStrings(values []uuid.UUID) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

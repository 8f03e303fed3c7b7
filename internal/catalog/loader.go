// Package catalog loads a galaxy catalog from a survey CSV export into an
// in-memory sample. The export carries a header row, may start with
// #-comment lines, and may contain columns the analysis does not use.
package catalog

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"clustermass/pkg/domain"
	"clustermass/pkg/serrors"
)

// Column aliases accepted in the header, lowercased. Survey exports are not
// consistent about naming the spectroscopic redshift and magnitude columns.
var (
	raAliases       = []string{"ra"}
	decAliases      = []string{"dec"}
	redshiftAliases = []string{"redshift", "specz", "z"}
	gmagAliases     = []string{"gmag", "g_mag", "g"}
	objIDAliases    = []string{"objid", "obj_id"}
)

// columns holds the resolved indices of the fields the analysis needs.
// objID is -1 when the catalog does not carry an identifier column.
type columns struct {
	ra, dec, redshift, gmag int
	objID                   int
}

// Load reads the catalog at path and returns one record per data row, with
// duplicate object ids dropped (first occurrence kept). It returns an
// ErrParse error when a required column is missing, a cell is not numeric,
// or the file holds no data rows.
func Load(path string) (domain.GalaxySample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrParse, err, "could not open catalog %q", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true
	// rows may carry trailing columns the analysis ignores
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrParse, err, "could not read catalog %q", path)
	}
	if len(rows) == 0 {
		return nil, serrors.With(serrors.ErrParse, "catalog %q is empty", path)
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	sample := make(domain.GalaxySample, 0, len(rows)-1)
	seen := make(map[string]struct{})
	for i, row := range rows[1:] {
		rec, err := parseRow(row, cols, i+2) // 1-based line, after the header
		if err != nil {
			return nil, err
		}

		if rec.ObjID != "" {
			if _, dup := seen[rec.ObjID]; dup {
				continue
			}
			seen[rec.ObjID] = struct{}{}
		}

		sample = append(sample, rec)
	}

	if len(sample) == 0 {
		return nil, serrors.With(serrors.ErrParse, "catalog %q has no data rows", path)
	}

	return sample, nil
}

// resolveColumns maps the header row to field indices, case-insensitively.
func resolveColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := idx[a]; ok {
				return i
			}
		}

		return -1
	}

	cols := columns{
		ra:       find(raAliases),
		dec:      find(decAliases),
		redshift: find(redshiftAliases),
		gmag:     find(gmagAliases),
		objID:    find(objIDAliases),
	}

	for _, req := range []struct {
		name string
		idx  int
	}{
		{"ra", cols.ra},
		{"dec", cols.dec},
		{"redshift", cols.redshift},
		{"gmag", cols.gmag},
	} {
		if req.idx < 0 {
			return columns{}, serrors.With(serrors.ErrParse, "catalog is missing required column %q", req.name)
		}
	}

	return cols, nil
}

// parseRow converts one CSV record into a GalaxyRecord. line is the 1-based
// line number used in error messages.
func parseRow(row []string, cols columns, line int) (domain.GalaxyRecord, error) {
	field := func(i int, name string) (float64, error) {
		if i >= len(row) {
			return 0, serrors.With(serrors.ErrParse, "line %d: missing column %q", line, name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return 0, serrors.With(serrors.ErrParse,
				"line %d: column %q: %q is not numeric", line, name, row[i])
		}

		return v, nil
	}

	var (
		rec domain.GalaxyRecord
		err error
	)
	if rec.RA, err = field(cols.ra, "ra"); err != nil {
		return domain.GalaxyRecord{}, err
	}
	if rec.Dec, err = field(cols.dec, "dec"); err != nil {
		return domain.GalaxyRecord{}, err
	}
	if rec.Redshift, err = field(cols.redshift, "redshift"); err != nil {
		return domain.GalaxyRecord{}, err
	}
	if rec.GMag, err = field(cols.gmag, "gmag"); err != nil {
		return domain.GalaxyRecord{}, err
	}

	if cols.objID >= 0 && cols.objID < len(row) {
		rec.ObjID = strings.TrimSpace(row[cols.objID])
	}

	return rec, nil
}

package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"disasterreport/model"
)

// ReportStore is a CSV file of reports with a fixed header row.
// All operations take the store lock, so appends and status rewrites never interleave
// within one process.
type ReportStore struct {
	mu      sync.Mutex
	path    string
	variant model.Variant
	columns []string
	lastID  int64
}

// OpenReportStore creates the file with the variant header when missing, otherwise
// checks the header and seeds the id counter from the existing rows.
func OpenReportStore(path string, variant model.Variant) (*ReportStore, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("unknown report variant %q", variant)
	}
	s := &ReportStore{path: path, variant: variant, columns: variant.Columns()}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.initialize(os.O_EXCL); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("stat report store: %w", err)
	case info.Size() == 0:
		if err := s.initialize(os.O_TRUNC); err != nil {
			return nil, err
		}
		return s, nil
	}

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	for _, rec := range records[1:] {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad id %q", ErrCorruptStore, rec[0])
		}
		s.lastID = max(s.lastID, id)
	}
	return s, nil
}

func (s *ReportStore) Path() string { return s.path }

func (s *ReportStore) Variant() model.Variant { return s.variant }

func (s *ReportStore) initialize(mode int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create report store dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|mode, 0o644)
	if err != nil {
		return fmt.Errorf("create report store: %w", err)
	}
	defer f.Close()
	return writeRecords(f, [][]string{s.columns})
}

// Append assigns the next id to r and writes it as a new row.
func (s *ReportStore) Append(ctx context.Context, r *model.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer f.Close()

	r.ID = s.lastID + 1
	if err := writeRecords(f, [][]string{r.Row(s.columns)}); err != nil {
		r.ID = 0
		return fmt.Errorf("append report: %w", err)
	}
	s.lastID = r.ID
	return nil
}

// ReadAll parses every row against the header.
func (s *ReportStore) ReadAll(ctx context.Context) ([]model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	records, err := s.readRecords()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	reports := make([]model.Report, 0, len(records)-1)
	for i, rec := range records[1:] {
		var r model.Report
		for j, col := range s.columns {
			if err := r.SetField(col, rec[j]); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrCorruptStore, i+2, err)
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// UpdateStatus overwrites the status column of the row with the given id and
// rewrites the file. The file is left untouched when no row matches.
func (s *ReportStore) UpdateStatus(ctx context.Context, id int64, status string) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	statusCol := slices.Index(s.columns, model.ColStatus)
	if statusCol < 0 {
		return nil, ErrStatusUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	key := strconv.FormatInt(id, 10)
	match := -1
	for i := 1; i < len(records); i++ {
		if records[i][0] == key {
			match = i
			break
		}
	}
	if match < 0 {
		return nil, ErrNotFound
	}
	records[match][statusCol] = status

	if err := s.rewrite(records); err != nil {
		return nil, err
	}

	var r model.Report
	for j, col := range s.columns {
		if err := r.SetField(col, records[match][j]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}
	}
	return &r, nil
}

// rewrite replaces the store atomically through a temp file in the same directory.
func (s *ReportStore) rewrite(records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecords(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace report store: %w", err)
	}
	return nil
}

// readRecords returns the header plus every row; the header must match the variant
// and every row must have as many fields as the header.
func (s *ReportStore) readRecords() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(s.columns)
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 || !slices.Equal(records[0], s.columns) {
		return nil, fmt.Errorf("%w: header does not match %s variant", ErrCorruptStore, s.variant)
	}
	return records, nil
}

func writeRecords(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

// Package snow stores manual snow-depth measurements.
//
// Measurements live in manuelt/sno.csv inside the site repository, with
// header "Date,Snow_cm". One row per date; registering the same date again
// overwrites the old value, and rows are kept sorted by date so the page
// builder can consume the file directly.
package snow

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// FileName is the measurement file inside the manual-data directory.
	FileName = "sno.csv"
	// DirName is the manual-data directory inside the site repository.
	DirName = "manuelt"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Measurement is one snow-depth reading.
type Measurement struct {
	Date   string // YYYY-MM-DD
	SnowCM float64
}

// Store reads and writes the measurement file.
type Store struct {
	path string
}

// NewStore creates a Store for the repository at repoDir.
func NewStore(repoDir string) *Store {
	return &Store{path: filepath.Join(repoDir, DirName, FileName)}
}

// Path returns the measurement file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all measurements. A missing file yields an empty slice.
func (s *Store) Load() ([]Measurement, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Measurement{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var measurements []Measurement
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue // header or malformed row
		}
		date := strings.TrimSpace(rec[0])
		if date == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid snow value %q for %s: %w", rec[1], date, err)
		}
		measurements = append(measurements, Measurement{Date: date, SnowCM: value})
	}

	return measurements, nil
}

// Add inserts or overwrites the measurement for its date and rewrites the file.
func (s *Store) Add(m Measurement) error {
	if err := ValidateDate(m.Date); err != nil {
		return err
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}

	byDate := make(map[string]float64, len(existing)+1)
	for _, e := range existing {
		byDate[e.Date] = e.SnowCM
	}
	byDate[m.Date] = m.SnowCM

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	sorted := make([]Measurement, 0, len(dates))
	for _, d := range dates {
		sorted = append(sorted, Measurement{Date: d, SnowCM: byDate[d]})
	}

	return s.writeAll(sorted)
}

// writeAll rewrites the measurement file from scratch.
func (s *Store) writeAll(measurements []Measurement) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Snow_cm"}); err != nil {
		return err
	}
	for _, m := range measurements {
		if err := w.Write([]string{m.Date, formatSnow(m.SnowCM)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatSnow renders a snow depth without trailing zeros (12, 12.4).
func formatSnow(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if !dateRe.MatchString(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

// ParseSnow parses a snow depth entered by the user.
// Accepts both decimal comma and decimal point.
func ParseSnow(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snow value %q, expected a number like 12.4", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("snow depth cannot be negative")
	}
	return v, nil
}

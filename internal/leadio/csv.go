// Package leadio handles moving leads across the CSV boundary: importing
// raw lead files for batch scoring and exporting scored results.
package leadio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
)

// Required CSV columns.
const (
	colRole        = "role"
	colCompanySize = "company_size"
	colMessage     = "message"
)

// Optional CSV columns.
const (
	colFullName    = "full_name"
	colEmail       = "email"
	colCompanyName = "company_name"
)

// Row rejection reasons, used as metric labels.
const (
	ReasonMalformed = "malformed"
	ReasonEmpty     = "empty"
)

// Import errors.
var (
	ErrMissingColumns = errors.New("csv is missing required columns")
	ErrTooManyRows    = errors.New("csv exceeds the row limit")
	ErrEmptyFile      = errors.New("csv has no header row")
)

// RowError records a rejected CSV row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of parsing a lead CSV.
type ImportResult struct {
	Leads    []domain.LeadInput `json:"leads"`
	Rejected []RowError         `json:"rejected,omitempty"`
}

// RejectedByReason aggregates rejected rows per reason.
func (r *ImportResult) RejectedByReason() map[string]int {
	if len(r.Rejected) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, re := range r.Rejected {
		counts[re.Reason]++
	}
	return counts
}

// ImportLeads parses a lead CSV. The header must contain the role,
// company_size, and message columns; full_name, email, and company_name are
// picked up when present. Each imported lead gets a generated ID. Malformed
// or entirely empty rows are rejected individually rather than failing the
// whole import. rowLimit <= 0 means unlimited.
func ImportLeads(r io.Reader, rowLimit int) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: ReasonMalformed})
			continue
		}

		if rowLimit > 0 && len(result.Leads) >= rowLimit {
			return nil, fmt.Errorf("%w (%d)", ErrTooManyRows, rowLimit)
		}

		lead := domain.LeadInput{
			ID:          uuid.NewString(),
			Name:        cols.get(record, colFullName),
			Email:       cols.get(record, colEmail),
			Company:     cols.get(record, colCompanyName),
			Role:        cols.get(record, colRole),
			CompanySize: cols.get(record, colCompanySize),
			Message:     cols.get(record, colMessage),
		}
		if lead.Role == "" && lead.CompanySize == "" && lead.Message == "" {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: ReasonEmpty})
			continue
		}

		result.Leads = append(result.Leads, lead)
	}

	return result, nil
}

// columnMap maps normalized column names to their index in a record.
type columnMap map[string]int

func mapColumns(header []string) (columnMap, error) {
	cols := make(columnMap, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, required := range []string{colRole, colCompanySize, colMessage} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columnMap) get(record []string, col string) string {
	idx, ok := c[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// exportHeader is the column order for scored lead exports.
var exportHeader = []string{
	colFullName, colEmail, colCompanyName, colRole, colCompanySize, colMessage,
	"score", "priority_label", "justification",
}

// ExportScored writes scored leads as CSV in a fixed column order.
func ExportScored(w io.Writer, leads []*domain.ScoredLead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, scored := range leads {
		record := []string{
			scored.Lead.Name,
			scored.Lead.Email,
			scored.Lead.Company,
			scored.Lead.Role,
			scored.Lead.CompanySize,
			scored.Lead.Message,
			strconv.Itoa(scored.Score),
			scored.Priority,
			scored.Justification,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

package leadio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
)

func TestImportLeads(t *testing.T) {
	input := strings.Join([]string{
		"full_name,email,company_name,role,company_size,message",
		`Ada Lovelace,ada@acme.example,Acme,CTO,1000+,"Urgent migration, budget approved"`,
		"Bob Jones,bob@school.example,State U,Student,1-10,free access for homework",
	}, "\n")

	result, err := ImportLeads(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, result.Leads, 2)
	assert.Empty(t, result.Rejected)

	first := result.Leads[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Ada Lovelace", first.Name)
	assert.Equal(t, "CTO", first.Role)
	assert.Equal(t, "1000+", first.CompanySize)
	assert.Equal(t, "Urgent migration, budget approved", first.Message)

	// Generated IDs are unique per row.
	assert.NotEqual(t, result.Leads[0].ID, result.Leads[1].ID)
}

func TestImportLeadsMinimalColumns(t *testing.T) {
	input := "role,company_size,message\nManager,50-200,interested in a demo\n"

	result, err := ImportLeads(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, result.Leads, 1)
	assert.Empty(t, result.Leads[0].Name)
	assert.Equal(t, "Manager", result.Leads[0].Role)
}

func TestImportLeadsHeaderIsCaseInsensitive(t *testing.T) {
	input := "Role, Company_Size ,MESSAGE\nCTO,1000+,urgent\n"

	result, err := ImportLeads(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, result.Leads, 1)
	assert.Equal(t, "CTO", result.Leads[0].Role)
}

func TestImportLeadsMissingColumns(t *testing.T) {
	input := "role,message\nCTO,urgent\n"

	_, err := ImportLeads(strings.NewReader(input), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "company_size")
}

func TestImportLeadsRejectsEmptyRows(t *testing.T) {
	input := "role,company_size,message\nCTO,1000+,urgent\n,,\n"

	result, err := ImportLeads(strings.NewReader(input), 0)
	require.NoError(t, err)
	assert.Len(t, result.Leads, 1)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, ReasonEmpty, result.Rejected[0].Reason)
	assert.Equal(t, 3, result.Rejected[0].Line)

	counts := result.RejectedByReason()
	assert.Equal(t, 1, counts[ReasonEmpty])
}

func TestImportLeadsShortRows(t *testing.T) {
	// A record shorter than the header still imports; missing cells are empty.
	input := "full_name,email,company_name,role,company_size,message\nAda,ada@acme.example,Acme,CTO\n"

	result, err := ImportLeads(strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, result.Leads, 1)
	assert.Equal(t, "CTO", result.Leads[0].Role)
	assert.Empty(t, result.Leads[0].Message)
}

func TestImportLeadsRowLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("role,company_size,message\n")
	for range 5 {
		sb.WriteString("Manager,50-200,demo please\n")
	}

	_, err := ImportLeads(strings.NewReader(sb.String()), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestImportLeadsEmptyFile(t *testing.T) {
	_, err := ImportLeads(strings.NewReader(""), 0)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestExportScored(t *testing.T) {
	leads := []*domain.ScoredLead{
		{
			Lead: domain.LeadInput{
				Name:        "Ada Lovelace",
				Email:       "ada@acme.example",
				Company:     "Acme",
				Role:        "CTO",
				CompanySize: "1000+",
				Message:     "urgent, budget approved",
			},
			Score:         100,
			Priority:      domain.PriorityHigh,
			Justification: "C-suite authority, urgent signals, budget mentioned",
			ScoredAt:      time.Now().UTC(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportScored(&buf, leads))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "full_name,email,company_name,role,company_size,message,score,priority_label,justification", lines[0])
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[1], "100")
	assert.Contains(t, lines[1], domain.PriorityHigh)
}
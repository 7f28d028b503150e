package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodRecord() PaymentRecord {
	return PaymentRecord{
		Date:    "08/07/2025",
		Payee:   "Century Link",
		Memo:    "505-291-1047",
		Address: []string{"P.O. Box 2961", "Phoenix, AZ", "85062-2961"},
		Amount:  decimal.RequireFromString("41.79"),
	}
}

func TestValidate_CleanBatch(t *testing.T) {
	issues := Validate([]PaymentRecord{goodRecord(), goodRecord()})
	assert.Empty(t, issues)
}

func TestValidate_FindsEveryProblem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PaymentRecord)
		field   string
		message string
	}{
		{
			name:    "bad date",
			mutate:  func(r *PaymentRecord) { r.Date = "2025-08-07" },
			field:   "date",
			message: "not MM/DD/YYYY",
		},
		{
			name:    "empty payee",
			mutate:  func(r *PaymentRecord) { r.Payee = "   " },
			field:   "payee",
			message: "payee is empty",
		},
		{
			name: "address too tall",
			mutate: func(r *PaymentRecord) {
				r.Address = []string{"a", "b", "c", "d", "e"}
			},
			field:   "address",
			message: "5 lines",
		},
		{
			name:    "zero amount",
			mutate:  func(r *PaymentRecord) { r.Amount = decimal.Zero },
			field:   "amount",
			message: "amount is zero",
		},
		{
			name:    "negative amount",
			mutate:  func(r *PaymentRecord) { r.Amount = decimal.RequireFromString("-5.00") },
			field:   "amount",
			message: "amount is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			tt.mutate(&rec)

			issues := Validate([]PaymentRecord{rec})
			require.Len(t, issues, 1)
			assert.Equal(t, "warning", issues[0].Severity)
			assert.Equal(t, 0, issues[0].RecordIndex)
			assert.Equal(t, tt.field, issues[0].Field)
			assert.Contains(t, issues[0].Message, tt.message)
		})
	}
}

func TestValidate_IndexesFollowTheBatch(t *testing.T) {
	bad := goodRecord()
	bad.Payee = ""

	issues := Validate([]PaymentRecord{goodRecord(), bad})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].RecordIndex)
}

func TestIssue_Error(t *testing.T) {
	issue := &Issue{
		Severity:    "warning",
		RecordIndex: 0,
		Field:       "payee",
		Value:       "",
		Message:     "payee is empty",
	}
	assert.Equal(t, "[WARNING] record 1, field 'payee': payee is empty (value: '')", issue.Error())
}

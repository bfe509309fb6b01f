package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func normalizeSQL(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

func TestRecentPaymentsQuery_OrdersByCreation(t *testing.T) {
	q := normalizeSQL(recentPaymentsQuery)

	assert.Contains(t, q, "COALESCE(p.payment_date, p.due_date) AS date")
	assert.Contains(t, q, "ORDER BY p.created_at DESC LIMIT $1")
	assert.NotContains(t, q, "ORDER BY date")
}

func TestActiveContractsByServiceQuery_GroupsByServiceID(t *testing.T) {
	q := normalizeSQL(activeContractsByServiceQuery)

	assert.Contains(t, q, "WHERE ct.status = 'ACTIVE'")
	assert.Contains(t, q, "GROUP BY s.id, s.name")
}

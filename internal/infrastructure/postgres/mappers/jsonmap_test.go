package mappers

import (
	"encoding/json"
	"testing"

	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestFromJSONMapConvertsNumbers(t *testing.T) {
	got := fromJSONMap(datatypes.JSONMap{
		"amount": json.Number("66"),
		"rate":   json.Number("0.033"),
		"reason": "no_commission",
		"nested": map[string]any{"attempts": json.Number("2")},
		"list":   []any{json.Number("1"), "x"},
	})

	assert.Equal(t, int64(66), got["amount"])
	assert.Equal(t, 0.033, got["rate"])
	assert.Equal(t, "no_commission", got["reason"])
	assert.Equal(t, map[string]any{"attempts": int64(2)}, got["nested"])
	assert.Equal(t, []any{int64(1), "x"}, got["list"])
	assert.Nil(t, fromJSONMap(nil))
}

func TestToDomainAuditRecordDetails(t *testing.T) {
	record := ToDomainAuditRecord(&models.AuditRecordModel{
		Details: datatypes.JSONMap{"amount": json.Number("66")},
	})
	assert.Equal(t, int64(66), record.Details["amount"])
}

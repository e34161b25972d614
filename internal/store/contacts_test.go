package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/gorm"
)

func seedTestContacts(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		row := models.Contact{
			ID:        uint64(i),
			FirstName: fmt.Sprintf("First%02d", i),
			LastName:  "Jones",
			Title:     "Director",
			Email:     fmt.Sprintf("p%02d@example.org", i),
		}
		if errCreate := db.Create(&row).Error; errCreate != nil {
			t.Fatalf("seed contact: %v", errCreate)
		}
	}
}

func TestRangeByStableIDOrdersAndPaginates(t *testing.T) {
	db := setupStoreDB(t)
	seedTestContacts(t, db, 30)
	contacts := NewContactStore(db)

	rows, errRange := contacts.RangeByStableID(context.Background(), 10, 5, "")
	if errRange != nil {
		t.Fatalf("range: %v", errRange)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.ID != uint64(11+i) {
			t.Fatalf("expected IDs 11..15, got %d at %d", row.ID, i)
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := setupStoreDB(t)
	seedTestContacts(t, db, 30)
	contacts := NewContactStore(db)

	count, errCount := contacts.Count(context.Background(), "FIRST0")
	if errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 9 {
		t.Fatalf("expected 9 matches for FIRST0, got %d", count)
	}
}

func TestRangeByIDsRestrictsAndOrders(t *testing.T) {
	db := setupStoreDB(t)
	seedTestContacts(t, db, 30)
	contacts := NewContactStore(db)

	rows, errRange := contacts.RangeByIDs(context.Background(), []uint64{22, 3, 15, 8}, 0, 3, "")
	if errRange != nil {
		t.Fatalf("range by ids: %v", errRange)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != 3 || rows[1].ID != 8 || rows[2].ID != 15 {
		t.Fatalf("expected IDs 3,8,15, got %d,%d,%d", rows[0].ID, rows[1].ID, rows[2].ID)
	}
}

func TestRangeByIDsToleratesMissingIDs(t *testing.T) {
	db := setupStoreDB(t)
	seedTestContacts(t, db, 10)
	contacts := NewContactStore(db)

	rows, errRange := contacts.RangeByIDs(context.Background(), []uint64{5, 999}, 0, 10, "")
	if errRange != nil {
		t.Fatalf("range by ids: %v", errRange)
	}
	if len(rows) != 1 || rows[0].ID != 5 {
		t.Fatalf("expected only ID 5, got %v", rows)
	}
}

func TestRangeByIDsEmptySet(t *testing.T) {
	db := setupStoreDB(t)
	contacts := NewContactStore(db)

	rows, errRange := contacts.RangeByIDs(context.Background(), nil, 0, 10, "")
	if errRange != nil {
		t.Fatalf("range by ids: %v", errRange)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestRecentContactsOmitReachFields(t *testing.T) {
	db := setupStoreDB(t)
	seedTestContacts(t, db, 10)
	contacts := NewContactStore(db)

	rows, errRecent := contacts.Recent(context.Background(), 5)
	if errRecent != nil {
		t.Fatalf("recent: %v", errRecent)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Email != "" || row.Phone != "" {
			t.Fatalf("recent contacts must not carry email or phone: %+v", row)
		}
	}
}

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	sqlDB, errDB := db.DB()
	if errDB != nil {
		t.Fatalf("unwrap db: %v", errDB)
	}
	// Single connection keeps concurrent sqlite writers from tripping over
	// each other with busy errors.
	sqlDB.SetMaxOpenConns(1)
	if errMigrate := db.AutoMigrate(&models.User{}, &models.Agency{}, &models.Contact{}, &models.DailyUsage{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func TestChargeCreatesEntryAndDerivesCount(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	total, errCharge := ledger.Charge(ctx, 1, "2026-03-15", []uint64{7, 3, 9})
	if errCharge != nil {
		t.Fatalf("charge: %v", errCharge)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}

	day, errGet := ledger.Get(ctx, 1, "2026-03-15")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if day.ViewedCount != len(day.ViewedContactIDs) {
		t.Fatalf("count %d diverges from set size %d", day.ViewedCount, len(day.ViewedContactIDs))
	}
}

func TestChargeIsIdempotent(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	if _, errCharge := ledger.Charge(ctx, 1, "2026-03-15", []uint64{1, 2, 3}); errCharge != nil {
		t.Fatalf("first charge: %v", errCharge)
	}
	total, errCharge := ledger.Charge(ctx, 1, "2026-03-15", []uint64{2, 3, 4})
	if errCharge != nil {
		t.Fatalf("second charge: %v", errCharge)
	}
	if total != 4 {
		t.Fatalf("expected union size 4, got %d", total)
	}

	// Re-charging the same IDs changes nothing.
	total, errCharge = ledger.Charge(ctx, 1, "2026-03-15", []uint64{1, 2, 3, 4})
	if errCharge != nil {
		t.Fatalf("third charge: %v", errCharge)
	}
	if total != 4 {
		t.Fatalf("expected total unchanged at 4, got %d", total)
	}
}

func TestChargeEmptySetIsReadOnly(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	total, errCharge := ledger.Charge(ctx, 1, "2026-03-15", nil)
	if errCharge != nil {
		t.Fatalf("empty charge: %v", errCharge)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}

	var rows int64
	if errCount := db.Model(&models.DailyUsage{}).Count(&rows).Error; errCount != nil {
		t.Fatalf("count rows: %v", errCount)
	}
	if rows != 0 {
		t.Fatalf("empty charge must not create a row, found %d", rows)
	}
}

func TestChargeConcurrentCallersUnion(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids := []uint64{uint64(g*3 + 1), uint64(g*3 + 2), uint64(g*3 + 3)}
			if _, errCharge := ledger.Charge(ctx, 1, "2026-03-15", ids); errCharge != nil {
				errs <- errCharge
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for errCharge := range errs {
		t.Fatalf("concurrent charge: %v", errCharge)
	}

	day, errGet := ledger.Get(ctx, 1, "2026-03-15")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if day.ViewedCount != 30 || len(day.ViewedContactIDs) != 30 {
		t.Fatalf("expected union of 30 IDs, got count=%d ids=%d", day.ViewedCount, len(day.ViewedContactIDs))
	}
}

func TestChargeDaysAreIsolated(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	if _, errCharge := ledger.Charge(ctx, 1, "2026-03-15", []uint64{1, 2}); errCharge != nil {
		t.Fatalf("charge day one: %v", errCharge)
	}
	if _, errCharge := ledger.Charge(ctx, 1, "2026-03-16", []uint64{1, 2, 3}); errCharge != nil {
		t.Fatalf("charge day two: %v", errCharge)
	}

	dayOne, _ := ledger.Get(ctx, 1, "2026-03-15")
	dayTwo, _ := ledger.Get(ctx, 1, "2026-03-16")
	if dayOne.ViewedCount != 2 || dayTwo.ViewedCount != 3 {
		t.Fatalf("days not isolated: %d / %d", dayOne.ViewedCount, dayTwo.ViewedCount)
	}
}

func TestGetMissingEntryIsZero(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)

	day, errGet := ledger.Get(context.Background(), 42, "2026-03-15")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if day.ViewedCount != 0 || len(day.ViewedContactIDs) != 0 {
		t.Fatalf("expected zero value, got %+v", day)
	}
}

func TestSumSince(t *testing.T) {
	db := setupStoreDB(t)
	ledger := NewLedgerStore(db)
	ctx := context.Background()

	if _, errCharge := ledger.Charge(ctx, 1, "2026-02-28", []uint64{1, 2}); errCharge != nil {
		t.Fatalf("charge: %v", errCharge)
	}
	if _, errCharge := ledger.Charge(ctx, 1, "2026-03-01", []uint64{3, 4, 5}); errCharge != nil {
		t.Fatalf("charge: %v", errCharge)
	}
	if _, errCharge := ledger.Charge(ctx, 1, "2026-03-10", []uint64{6}); errCharge != nil {
		t.Fatalf("charge: %v", errCharge)
	}

	sum, errSum := ledger.SumSince(ctx, 1, "2026-03-01")
	if errSum != nil {
		t.Fatalf("sum: %v", errSum)
	}
	if sum != 4 {
		t.Fatalf("expected month sum 4, got %d", sum)
	}
}

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/silverium/labelgen/domain/kepingan"
	"github.com/stretchr/testify/assert"
)

// testDBPath is the path to the test database file
const testDBPath = "test.db"

func cleanupTestDB(t *testing.T) {
	err := os.Remove(testDBPath)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to clean up test database: %v", err)
	}
}

func createTestJournal(t *testing.T) *SQLiteJournal {
	cleanupTestDB(t)

	journal, err := NewSQLiteJournal(testDBPath)
	if err != nil {
		t.Fatalf("Failed to create test journal: %v", err)
	}

	return journal
}

func TestNewSQLiteJournal(t *testing.T) {
	defer cleanupTestDB(t)

	journal, err := NewSQLiteJournal(testDBPath)

	assert.NoError(t, err)
	assert.NotNil(t, journal)
	assert.NotNil(t, journal.db)

	err = journal.Close()
	assert.NoError(t, err)
}

func TestNewSQLiteJournal_InvalidPath(t *testing.T) {
	journal, err := NewSQLiteJournal("/invalid/path/db.sqlite")

	assert.Error(t, err)
	assert.Nil(t, journal)
}

func TestSQLiteJournal_RecordAndList(t *testing.T) {
	journal := createTestJournal(t)
	defer cleanupTestDB(t)
	defer journal.Close()

	ctx := context.Background()
	rec := &kepingan.BatchRecord{
		ProductID:   42,
		ProductName: "Perak Batangan",
		Series:      "bullion",
		Count:       25,
		ArchiveName: "QR_Bullion_PerakBatangan_10g.zip",
		CreatedAt:   time.Now().Truncate(time.Second), // SQLite may not preserve nanoseconds
	}

	err := journal.Record(ctx, rec)
	assert.NoError(t, err)

	records, err := journal.List(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, uint(42), records[0].ProductID)
	assert.Equal(t, "Perak Batangan", records[0].ProductName)
	assert.Equal(t, "bullion", records[0].Series)
	assert.Equal(t, 25, records[0].Count)
	assert.Equal(t, "QR_Bullion_PerakBatangan_10g.zip", records[0].ArchiveName)
}

func TestSQLiteJournal_ListNewestFirst(t *testing.T) {
	journal := createTestJournal(t)
	defer cleanupTestDB(t)
	defer journal.Close()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := journal.Record(ctx, &kepingan.BatchRecord{
			ProductID:   uint(i + 1),
			ProductName: "Perak Batangan",
			Series:      "bullion",
			Count:       i + 1,
			ArchiveName: "QR_Bullion_PerakBatangan_10g.zip",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		assert.NoError(t, err)
	}

	records, err := journal.List(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, uint(3), records[0].ProductID)
	assert.Equal(t, uint(1), records[2].ProductID)
}

func TestSQLiteJournal_ListLimit(t *testing.T) {
	journal := createTestJournal(t)
	defer cleanupTestDB(t)
	defer journal.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		err := journal.Record(ctx, &kepingan.BatchRecord{
			ProductID:   42,
			ProductName: "Perak Batangan",
			Series:      "bullion",
			Count:       1,
			ArchiveName: "QR_Bullion_PerakBatangan_10g.zip",
		})
		assert.NoError(t, err)
	}

	records, err := journal.List(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSQLiteJournal_ListEmpty(t *testing.T) {
	journal := createTestJournal(t)
	defer cleanupTestDB(t)
	defer journal.Close()

	records, err := journal.List(context.Background(), 10)

	assert.NoError(t, err)
	assert.Empty(t, records)
}

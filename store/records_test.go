package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"contas/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "store_test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Income{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, HashedPassword: []byte("irrelevant")}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func newExpense(owner uint, amount string, date models.Date) models.Expense {
	return models.Expense{
		UserID:      owner,
		Amount:      decimal.RequireFromString(amount),
		Description: "test expense",
		Date:        date,
		ExpenseType: models.KindOneTime,
	}
}

func TestListIsOwnerScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewRecords[models.Expense](db)

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	older := newExpense(alice.ID, "10.00", models.NewDate(2025, time.January, 1))
	newer := newExpense(alice.ID, "20.00", models.NewDate(2025, time.March, 1))
	other := newExpense(bob.ID, "99.00", models.NewDate(2025, time.February, 1))
	require.NoError(t, store.Create(ctx, &older))
	require.NoError(t, store.Create(ctx, &newer))
	require.NoError(t, store.Create(ctx, &other))

	got, err := store.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID, "most recent date first")
	assert.Equal(t, older.ID, got[1].ID)
	for _, e := range got {
		assert.Equal(t, alice.ID, e.UserID)
	}
}

func TestGetForeignRecordIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewRecords[models.Expense](db)

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	exp := newExpense(alice.ID, "10.00", models.NewDate(2025, time.January, 1))
	require.NoError(t, store.Create(ctx, &exp))

	_, err := store.Get(ctx, bob.ID, exp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, alice.ID, exp.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get(ctx, alice.ID, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.ID)
}

func TestDeleteForeignRecordIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewRecords[models.Expense](db)

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	exp := newExpense(alice.ID, "10.00", models.NewDate(2025, time.January, 1))
	require.NoError(t, store.Create(ctx, &exp))

	assert.ErrorIs(t, store.Delete(ctx, bob.ID, exp.ID), ErrNotFound)

	// the record survives a foreign delete attempt
	_, err := store.Get(ctx, alice.ID, exp.ID)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, alice.ID, exp.ID))
	assert.ErrorIs(t, store.Delete(ctx, alice.ID, exp.ID), ErrNotFound)
}

func TestCategoryDeleteClearsReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catStore := NewCategories(db)
	expStore := NewRecords[models.Expense](db)

	alice := newTestUser(t, db, "alice")
	cat := models.Category{Name: "Lazer"}
	require.NoError(t, catStore.Create(ctx, &cat))

	exp := newExpense(alice.ID, "30.00", models.NewDate(2025, time.April, 5))
	exp.CategoryID = &cat.ID
	require.NoError(t, expStore.Create(ctx, &exp))

	require.NoError(t, catStore.Delete(ctx, cat.ID))

	got, err := expStore.Get(ctx, alice.ID, exp.ID)
	require.NoError(t, err, "record must survive category deletion")
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestIncomeStoreScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewRecords[models.Income](db)

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	in := models.Income{
		UserID:      alice.ID,
		Amount:      decimal.RequireFromString("2500.00"),
		Description: "salary",
		Date:        models.NewDate(2025, time.May, 1),
		IncomeType:  models.KindOneTime,
	}
	require.NoError(t, store.Create(ctx, &in))

	got, err := store.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

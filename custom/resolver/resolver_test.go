package resolver

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"retail_orders/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(model.ALL_ORDER_TABLES...))
	return db
}

func TestResolveCustomerCreatesThenReuses(t *testing.T) {
	db := openTestDB(t)

	id1, err := ResolveCustomer(db, "Ann", "555-1")
	require.NoError(t, err)
	assert.NotZero(t, id1)

	// Same phone with a conflicting name must reuse the identity and keep
	// the first-seen name.
	id2, err := ResolveCustomer(db, "Annie", "555-1")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored model.Customer
	require.NoError(t, db.First(&stored, "phone = ?", "555-1").Error)
	assert.Equal(t, "Ann", stored.Name)
}

func TestResolveCustomerDistinctPhones(t *testing.T) {
	db := openTestDB(t)

	id1, err := ResolveCustomer(db, "Ann", "555-1")
	require.NoError(t, err)
	id2, err := ResolveCustomer(db, "Ann", "555-2")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestResolveCustomerValidation(t *testing.T) {
	db := openTestDB(t)

	_, err := ResolveCustomer(db, "", "555-1")
	assert.Error(t, err)
	_, err = ResolveCustomer(db, "Ann", "")
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestResolveItemFirstPriceWins(t *testing.T) {
	db := openTestDB(t)

	id1, err := ResolveItem(db, "Coffee", decimal.RequireFromString("3.50"))
	require.NoError(t, err)

	id2, err := ResolveItem(db, "Coffee", decimal.RequireFromString("4.25"))
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var stored model.Item
	require.NoError(t, db.First(&stored, "name = ?", "Coffee").Error)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("3.50")),
		"catalog price %s should stay at the first-seen price", stored.Price)
}

func TestResolveItemExactMatchOnly(t *testing.T) {
	db := openTestDB(t)

	// no fuzzy matching: case and whitespace are significant
	id1, err := ResolveItem(db, "Coffee", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	id2, err := ResolveItem(db, "coffee", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	id3, err := ResolveItem(db, "Coffee ", decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.NotEqual(t, id1, id3)
}

func TestResolveItemRejectsBadPrice(t *testing.T) {
	db := openTestDB(t)

	_, err := ResolveItem(db, "Coffee", decimal.RequireFromString("-0.01"))
	assert.Error(t, err)
	_, err = ResolveItem(db, "Coffee", decimal.RequireFromString("1.999"))
	assert.Error(t, err)
	_, err = ResolveItem(db, "", decimal.RequireFromString("1.00"))
	assert.Error(t, err)
}

package resolver

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"retail_orders/constants"
	"retail_orders/model"
)

// Insert-or-get on the natural keys of the catalog entities. Lookups and
// inserts run on the caller's db handle, so a resolver call inside a
// transaction stays inside that transaction.
//
// First-write-wins: when the natural key already exists, the incoming
// non-key attributes are discarded and the existing surrogate id returned.
// An existing row is never mutated.

func ResolveCustomer(db *gorm.DB, name string, phone string) (uint, error) {
	if name == "" {
		return 0, errors.New(constants.CUSTOMER_NAME_REQUIRED)
	}
	if phone == "" {
		return 0, errors.New(constants.CUSTOMER_PHONE_REQUIRED)
	}

	var existing model.Customer
	err := db.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	// The nested transaction becomes a savepoint when db is already inside
	// one, so a unique-violation rollback leaves the caller's unit usable
	// on postgres and the retry lookup below can still run.
	fresh := model.Customer{Name: name, Phone: phone}
	errCreate := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&fresh).Error
	})
	if errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			// lost the insert race; the row exists now
			if errRead := db.Where("phone = ?", phone).First(&existing).Error; errRead != nil {
				return 0, errRead
			}
			return existing.ID, nil
		}
		return 0, errCreate
	}
	return fresh.ID, nil
}

func ResolveItem(db *gorm.DB, name string, price decimal.Decimal) (uint, error) {
	if name == "" {
		return 0, errors.New(constants.ITEM_NAME_REQUIRED)
	}
	if price.IsNegative() || !price.Equal(price.Round(2)) {
		return 0, errors.New(constants.ITEM_PRICE_INVALID)
	}

	var existing model.Item
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	fresh := model.Item{Name: name, Price: price}
	errCreate := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&fresh).Error
	})
	if errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			if errRead := db.Where("name = ?", name).First(&existing).Error; errRead != nil {
				return 0, errRead
			}
			return existing.ID, nil
		}
		return 0, errCreate
	}
	return fresh.ID, nil
}

package item

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"retail_orders/apperr"
	"retail_orders/constants"
	"retail_orders/custom/util"
	"retail_orders/model"
)

type HandlerContext struct {
	db *gorm.DB
}

func (ctx *HandlerContext) InitialHandlerContext(db *gorm.DB) {
	ctx.db = db
}

func (ctx *HandlerContext) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /items", ctx.CreateItem)
	mux.HandleFunc("GET /items/{id}", ctx.QueryItem)
	mux.HandleFunc("PUT /items/{id}", ctx.UpdateItem)
	mux.HandleFunc("DELETE /items/{id}", ctx.DeleteItem)
}

func validateItem(req *model.Item) string {
	if req.Name == "" {
		return constants.ITEM_NAME_REQUIRED
	}
	if req.Price.IsNegative() || !req.Price.Equal(req.Price.Round(2)) {
		return constants.ITEM_PRICE_INVALID
	}
	return ""
}

// CreateItem Create a new catalog item
func (ctx *HandlerContext) CreateItem(w http.ResponseWriter, r *http.Request) {
	req := model.Item{}
	err := util.FetchReqObject(r, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if validationErr := validateItem(&req); validationErr != "" {
		http.Error(w, validationErr, http.StatusBadRequest)
		return
	}

	req.ID = 0
	if errCreate := ctx.db.Create(&req).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			errDup := apperr.ConstraintViolation("item " + req.Name + " already exists")
			http.Error(w, errDup.Error(), apperr.HttpStatus(errDup))
			return
		}
		http.Error(w, errCreate.Error(), http.StatusInternalServerError)
		return
	}

	util.WriteJson(w, http.StatusCreated, req)
}

// QueryItem Fetch an item by id
func (ctx *HandlerContext) QueryItem(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	itemInfo := model.Item{}
	errQuery := ctx.db.Where("item_id = ?", id).First(&itemInfo).Error
	if errQuery != nil {
		if errors.Is(errQuery, gorm.ErrRecordNotFound) {
			http.Error(w, constants.ITEM_NOT_FOUND, http.StatusNotFound)
			return
		}
		http.Error(w, errQuery.Error(), http.StatusInternalServerError)
		return
	}

	util.WriteJson(w, http.StatusOK, itemInfo)
}

// UpdateItem Update the scalar fields of an item. Existing order lines keep
// their own price-at-time snapshots; a catalog price change never rewrites
// history.
func (ctx *HandlerContext) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := model.Item{}
	if err = util.FetchReqObject(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if validationErr := validateItem(&req); validationErr != "" {
		http.Error(w, validationErr, http.StatusBadRequest)
		return
	}

	result := ctx.db.Model(&model.Item{}).Where("item_id = ?", id).
		Updates(map[string]interface{}{"name": req.Name, "price": req.Price})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			errDup := apperr.ConstraintViolation("item " + req.Name + " already exists")
			http.Error(w, errDup.Error(), apperr.HttpStatus(errDup))
			return
		}
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, constants.ITEM_NOT_FOUND, http.StatusNotFound)
		return
	}

	req.ID = id
	util.WriteJson(w, http.StatusOK, req)
}

// DeleteItem Delete an item, rejected while order lines still reference it
func (ctx *HandlerContext) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		var referencing int64
		if errTx := tx.Model(&model.OrderLine{}).Where("item_id = ?", id).Count(&referencing).Error; errTx != nil {
			return errTx
		}
		if referencing > 0 {
			return apperr.ReferentialConflict(constants.ITEM_REFERENCED)
		}
		result := tx.Where("item_id = ?", id).Delete(&model.Item{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("item", id)
		}
		return nil
	})
	if errDb != nil {
		http.Error(w, errDb.Error(), apperr.HttpStatus(errDb))
		return
	}

	util.WriteJson(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

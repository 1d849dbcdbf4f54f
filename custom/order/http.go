package order

import (
	"errors"
	"net/http"

	"github.com/romana/rlog"
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
	mux.HandleFunc("POST /orders", ctx.CreateOrder)
	mux.HandleFunc("GET /orders/{id}", ctx.QueryOrder)
	mux.HandleFunc("PUT /orders/{id}", ctx.UpdateOrder)
	mux.HandleFunc("DELETE /orders/{id}", ctx.DeleteOrder)
}

// CreateOrder Create an order row directly through the access layer. Lines
// are only ever created by the normalizer; this endpoint stores the given
// scalars as-is after checking the customer reference.
func (ctx *HandlerContext) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req := model.Order{}
	err := util.FetchReqObject(r, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	if req.CustomerID == 0 {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}
	if req.TotalAmount.IsNegative() {
		http.Error(w, "total_amount must be non-negative", http.StatusBadRequest)
		return
	}

	req.ID = 0
	req.Customer = nil
	req.Lines = nil
	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if errTx := tx.Model(&model.Customer{}).Where("customer_id = ?", req.CustomerID).Count(&exists).Error; errTx != nil {
			return errTx
		}
		if exists == 0 {
			return apperr.ConstraintViolation(constants.CUSTOMER_NOT_FOUND)
		}
		return tx.Create(&req).Error
	})
	if errDb != nil {
		rlog.Error(errDb.Error())
		http.Error(w, errDb.Error(), apperr.HttpStatus(errDb))
		return
	}

	util.WriteJson(w, http.StatusCreated, req)
}

// QueryOrder Fetch order detail by order id
func (ctx *HandlerContext) QueryOrder(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orderDetail := model.Order{}
	errDb := ctx.db.Where("order_id = ?", id).First(&orderDetail).Error
	if errDb != nil {
		if errors.Is(errDb, gorm.ErrRecordNotFound) {
			http.Error(w, constants.ORDER_NOT_FOUND, http.StatusNotFound)
			return
		}
		rlog.Error(errDb.Error())
		http.Error(w, errDb.Error(), http.StatusInternalServerError)
		return
	}

	util.WriteJson(w, http.StatusOK, orderDetail)
}

// UpdateOrder Update order scalars in place. Derived state is never touched:
// total_amount is stored as given and the order's lines are not recomputed.
// Reassigning the customer requires the new customer to exist.
func (ctx *HandlerContext) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := model.Order{}
	if err = util.FetchReqObject(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerID == 0 {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if errTx := tx.Model(&model.Customer{}).Where("customer_id = ?", req.CustomerID).Count(&exists).Error; errTx != nil {
			return errTx
		}
		if exists == 0 {
			return apperr.ConstraintViolation(constants.CUSTOMER_NOT_FOUND)
		}
		result := tx.Model(&model.Order{}).Where("order_id = ?", id).
			Updates(map[string]interface{}{
				"customer_id":  req.CustomerID,
				"order_date":   req.OrderDate,
				"total_amount": req.TotalAmount,
				"notes":        req.Notes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("order", id)
		}
		return nil
	})
	if errDb != nil {
		http.Error(w, errDb.Error(), apperr.HttpStatus(errDb))
		return
	}

	req.ID = id
	util.WriteJson(w, http.StatusOK, req)
}

// DeleteOrder Delete an order together with its lines. The order owns its
// lines, so the delete cascades to them in the same transaction and can
// never leave a dangling line behind.
func (ctx *HandlerContext) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		if errTx := tx.Where("order_id = ?", id).Delete(&model.OrderLine{}).Error; errTx != nil {
			return errTx
		}
		result := tx.Where("order_id = ?", id).Delete(&model.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("order", id)
		}
		return nil
	})
	if errDb != nil {
		http.Error(w, errDb.Error(), apperr.HttpStatus(errDb))
		return
	}

	util.WriteJson(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

package customer

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
	mux.HandleFunc("POST /customers", ctx.CreateCustomer)
	mux.HandleFunc("GET /customers/{id}", ctx.QueryCustomer)
	mux.HandleFunc("PUT /customers/{id}", ctx.UpdateCustomer)
	mux.HandleFunc("DELETE /customers/{id}", ctx.DeleteCustomer)
}

// CreateCustomer Create a new customer
func (ctx *HandlerContext) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	req := model.Customer{}
	err := util.FetchReqObject(r, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Validate payload
	if req.Name == "" {
		http.Error(w, constants.CUSTOMER_NAME_REQUIRED, http.StatusBadRequest)
		return
	}
	if req.Phone == "" {
		http.Error(w, constants.CUSTOMER_PHONE_REQUIRED, http.StatusBadRequest)
		return
	}

	req.ID = 0
	if errCreate := ctx.db.Create(&req).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			err = apperr.ConstraintViolation("customer phone " + req.Phone + " already exists")
			http.Error(w, err.Error(), apperr.HttpStatus(err))
			return
		}
		http.Error(w, errCreate.Error(), http.StatusInternalServerError)
		return
	}

	util.WriteJson(w, http.StatusCreated, req)
}

// QueryCustomer Fetch a customer by id
func (ctx *HandlerContext) QueryCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customerInfo := model.Customer{}
	errQuery := ctx.db.Where("customer_id = ?", id).First(&customerInfo).Error
	if errQuery != nil {
		if errors.Is(errQuery, gorm.ErrRecordNotFound) {
			http.Error(w, constants.CUSTOMER_NOT_FOUND, http.StatusNotFound)
			return
		}
		http.Error(w, errQuery.Error(), http.StatusInternalServerError)
		return
	}

	util.WriteJson(w, http.StatusOK, customerInfo)
}

// UpdateCustomer Update the scalar fields of a customer in place
func (ctx *HandlerContext) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := model.Customer{}
	if err = util.FetchReqObject(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, constants.CUSTOMER_NAME_REQUIRED, http.StatusBadRequest)
		return
	}
	if req.Phone == "" {
		http.Error(w, constants.CUSTOMER_PHONE_REQUIRED, http.StatusBadRequest)
		return
	}

	result := ctx.db.Model(&model.Customer{}).Where("customer_id = ?", id).
		Updates(map[string]interface{}{"name": req.Name, "phone": req.Phone})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			errDup := apperr.ConstraintViolation("customer phone " + req.Phone + " already exists")
			http.Error(w, errDup.Error(), apperr.HttpStatus(errDup))
			return
		}
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, constants.CUSTOMER_NOT_FOUND, http.StatusNotFound)
		return
	}

	req.ID = id
	util.WriteJson(w, http.StatusOK, req)
}

// DeleteCustomer Delete a customer, rejected while orders still reference it
func (ctx *HandlerContext) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := util.FetchIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	errDb := ctx.db.Transaction(func(tx *gorm.DB) error {
		var referencing int64
		if errTx := tx.Model(&model.Order{}).Where("customer_id = ?", id).Count(&referencing).Error; errTx != nil {
			return errTx
		}
		if referencing > 0 {
			return apperr.ReferentialConflict(constants.CUSTOMER_REFERENCED)
		}
		result := tx.Where("customer_id = ?", id).Delete(&model.Customer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("customer", id)
		}
		return nil
	})
	if errDb != nil {
		http.Error(w, errDb.Error(), apperr.HttpStatus(errDb))
		return
	}

	util.WriteJson(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

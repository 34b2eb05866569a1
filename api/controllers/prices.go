package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/api/validators"
	"github.com/mstanchev/pricewatch-backend/internal/prices"
	pkgerrors "github.com/mstanchev/pricewatch-backend/pkg/errors"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
	"github.com/mstanchev/pricewatch-backend/pkg/pagination"
)

type createPriceRequest struct {
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	StoreID      string          `json:"store_id" validate:"required,uuid"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	DateObserved string          `json:"date_observed,omitempty"`
	OnSale       bool            `json:"on_sale"`
}

// ComparePrices returns all observations for a product, cheapest first.
func ComparePrices(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.RequireQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Compare(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ListPrices returns raw observations filtered by product and store,
// cursor-paged newest first.
func ListPrices(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := validators.ParseQueryUUID(r, "store_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), productID, storeID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CreatePrice records an observed price.
func CreatePrice(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createPriceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// DeletePrice removes one observation, admin only.
func DeletePrice(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceID, err := pathUUID(r, "priceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actor, priceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (req createPriceRequest) toInput() (prices.CreatePriceInput, error) {
	input := prices.CreatePriceInput{
		Price:  req.Price,
		OnSale: req.OnSale,
	}

	var err error
	if input.ProductID, err = parseUUIDField(req.ProductID, "product_id"); err != nil {
		return prices.CreatePriceInput{}, err
	}
	if input.StoreID, err = parseUUIDField(req.StoreID, "store_id"); err != nil {
		return prices.CreatePriceInput{}, err
	}

	if req.DateObserved != "" {
		observed, err := time.Parse("2006-01-02", req.DateObserved)
		if err != nil {
			return prices.CreatePriceInput{}, pkgerrors.New(pkgerrors.CodeValidation, "date_observed must be YYYY-MM-DD")
		}
		input.DateObserved = observed
	}
	return input, nil
}

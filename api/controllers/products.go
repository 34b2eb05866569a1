package controllers

import (
	"net/http"

	"github.com/mstanchev/pricewatch-backend/api/responses"
	"github.com/mstanchev/pricewatch-backend/api/validators"
	"github.com/mstanchev/pricewatch-backend/internal/products"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=160"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=120"`
	Brand       *string `json:"brand,omitempty" validate:"omitempty,max=120"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
}

type updateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=160"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=120"`
	Brand       *string `json:"brand,omitempty" validate:"omitempty,max=120"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
}

// ListProducts returns products visible to the requester, optionally
// narrowed by category.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), viewerFromRequest(r), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CreateProduct submits a new product.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), actor, products.CreateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Brand:       req.Brand,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateProduct mutates an existing product, owner or admin only.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), actor, productID, products.UpdateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Brand:       req.Brand,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteProduct removes a product and its observations, admin only.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actor, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

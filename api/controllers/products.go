package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/techstore/backend/api/responses"
	"github.com/techstore/backend/api/validators"
	productsvc "github.com/techstore/backend/internal/products"
	pkgerrors "github.com/techstore/backend/pkg/errors"
	"github.com/techstore/backend/pkg/logger"
)

// ProxyProducts serves GET /api/products, dispatching on query parameters:
// ?id= for single-item lookup, ?meta=categories for the category list,
// otherwise a list query scoped by category/limit/q.
func ProxyProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		params := r.URL.Query()

		if raw := strings.TrimSpace(params.Get("id")); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "id must be numeric"))
				return
			}
			product, err := svc.Get(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteJSON(w, http.StatusOK, product)
			return
		}

		if params.Get("meta") == "categories" {
			categories, err := svc.Categories(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteJSON(w, http.StatusOK, categories)
			return
		}

		// the limit is forwarded to the upstream catalog untouched
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), productsvc.ListInput{
			Category: params.Get("category"),
			Limit:    limit,
			Query:    params.Get("q"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, items)
	}
}

type createProductRequest struct {
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// CreateProduct serves POST /api/products, appending a locally created
// product to the ephemeral store.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Price == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number"))
			return
		}

		product, err := svc.Create(r.Context(), productsvc.CreateInput{
			Title:       payload.Title,
			Price:       *payload.Price,
			Description: payload.Description,
			Category:    payload.Category,
			Image:       payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, product)
	}
}

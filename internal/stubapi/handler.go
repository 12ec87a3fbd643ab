package stubapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/themilho/product-catalog/internal/domain"
	apperrors "github.com/themilho/product-catalog/pkg/errors"
	"github.com/themilho/product-catalog/pkg/httputil"
	"github.com/themilho/product-catalog/pkg/logger"
	"github.com/themilho/product-catalog/pkg/pagination"
	"github.com/themilho/product-catalog/pkg/validator"
)

// ProductHandler handles HTTP requests for the product endpoints.
type ProductHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(store *Store, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		store:  store,
		logger: logger,
	}
}

// ListProducts handles GET /products. With _page or _limit only that page is
// returned and X-Total-Count carries the full size.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.store.List(r.Context())

	params, paged := pagination.FromRequest(r)
	if !paged {
		httputil.WriteJSON(w, http.StatusOK, products)
		return
	}
	pagination.SetTotal(w, len(products))
	httputil.WriteJSON(w, http.StatusOK, pagination.Page(products, params))
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /products and POST /products/new
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := validator.DecodeAndValidate(r, &in); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	p := h.store.Create(r.Context(), in)
	logger.FromContext(r.Context()).InfoContext(r.Context(), "product created",
		slog.Int("product_id", p.ID),
		slog.String("category", p.Category),
	)
	httputil.WriteJSON(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT and PATCH /products/{id}. Both merge the fields
// present in the body into the stored product.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteValidationError(w, r, fmt.Errorf("decode request body: %w", err))
		return
	}
	if err := patch.Validate(); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	p, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, r, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	logger.FromContext(r.Context()).InfoContext(r.Context(), "product deleted", slog.Int("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: &httputil.ErrorResponse{
				Code:      apperrors.CodeInvalidParams,
				Message:   "product id must be a positive integer",
				RequestID: logger.CorrelationIDFromContext(r.Context()),
			},
		})
		return 0, false
	}
	return id, true
}

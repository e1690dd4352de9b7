package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

func categoryInput(req ledgersdk.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		Name:  req.Name,
		Kind:  domain.EntryKind(req.Kind),
		Color: req.Color,
	}
}

// HandleList returns the user's categories sorted by name.
//
//	@Summary	List categories
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	ledgersdk.CategoryResponse
//	@Router		/api/v1/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a category.
//
//	@Summary	Create category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ledgersdk.CategoryRequest	true	"Category"
//	@Success	201		{object}	ledgersdk.CategoryResponse
//	@Failure	409		{object}	ledgersdk.APIError	"Name already in use"
//	@Router		/api/v1/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	c, err := h.CategoryService.Create(r.Context(), userID(r), categoryInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// HandleGet returns one category.
//
//	@Summary	Get category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	ledgersdk.CategoryResponse
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/categories/{id} [get].
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategoryService.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

// HandleUpdate rewrites a category.
//
//	@Summary	Update category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Category ID"
//	@Param		request	body		ledgersdk.CategoryRequest	true	"Category"
//	@Success	200		{object}	ledgersdk.CategoryResponse
//	@Failure	404		{object}	ledgersdk.APIError
//	@Router		/api/v1/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	c, err := h.CategoryService.Update(r.Context(), userID(r), r.PathValue("id"), categoryInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

// HandleDelete removes a category. Referencing transactions and plans become
// uncategorised.
//
//	@Summary	Delete category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Category ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CategoryService.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

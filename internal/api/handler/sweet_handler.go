package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for catalog and inventory operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// Create handles POST /sweets.
//
// @Summary      Create a catalog entry
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "New sweet"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sweet, err := h.service.CreateSweet(c.Request().Context(), toCreateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid input"})
		}
		return err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(sweet.Category).Inc()
	return c.JSON(http.StatusCreated, toSweetResponse(sweet))
}

// List handles GET /sweets.
//
// @Summary      List the catalog, newest first
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   sweetResponse
// @Failure      401  {object}  errorResponse
// @Router       /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.ListSweets(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Search handles GET /sweets/search.
//
// @Summary      Search the catalog by name, category, and price range
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Substring match on name"
// @Param        category  query     string  false  "Exact category match"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {array}   sweetResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	input := ports.SearchSweetsInput{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	minPrice, err := parsePriceParam(c.QueryParam("minPrice"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid minPrice"})
	}
	input.MinPrice = minPrice

	maxPrice, err := parsePriceParam(c.QueryParam("maxPrice"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid maxPrice"})
	}
	input.MaxPrice = maxPrice

	sweets, err := h.service.SearchSweets(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Update handles PUT /sweets/:id — partial update, provided fields only.
//
// @Summary      Update a catalog entry
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to update"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sweet, err := h.service.UpdateSweet(c.Request().Context(), id, toUpdateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSweetNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "sweet not found"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid input"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Delete handles DELETE /sweets/:id (admin only) and returns the removed
// snapshot.
//
// @Summary      Delete a catalog entry
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Sweet id"
// @Success      200  {object}  sweetResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	sweet, err := h.service.DeleteSweet(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSweetNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "sweet not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Purchase handles POST /sweets/:id/purchase — takes one unit of stock.
//
// @Summary      Purchase one unit
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Sweet id"
// @Success      200  {object}  sweetResponse
// @Failure      400  {object}  errorResponse  "out of stock"
// @Failure      404  {object}  errorResponse
// @Router       /sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	sweet, err := h.service.PurchaseSweet(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSweetNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "sweet not found"})
		case errors.Is(err, domain.ErrOutOfStock):
			metrics.OutOfStockTotal.Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "out of stock"})
		}
		return err
	}

	metrics.PurchasesTotal.WithLabelValues(sweet.Category).Inc()
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Restock handles POST /sweets/:id/restock (admin only).
//
// @Summary      Restock by a positive amount
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Sweet id"
// @Param        body  body      restockRequest  true  "Restock amount"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sweet, err := h.service.RestockSweet(c.Request().Context(), id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSweetNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "sweet not found"})
		case errors.Is(err, domain.ErrInvalidAmount):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "restock amount must be positive"})
		case errors.Is(err, domain.ErrStockLimitExceeded):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "stock limit exceeded"})
		}
		return err
	}

	metrics.RestocksTotal.Inc()
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// parsePriceParam parses an optional decimal query parameter; an empty value
// means the bound is absent.
func parsePriceParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

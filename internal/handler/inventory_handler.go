package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotely/internal/service"
)

// InventoryHandler handles the tenant's catalog endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create handles POST /api/v1/inventory
// @Summary Add a catalog item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body service.CreateInventoryInput true "Item"
// @Success 201 {object} Response{data=domain.InventoryItem} "Item created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input service.CreateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/inventory
// @Summary List catalog items
// @Tags inventory
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.InventoryItem,meta=PagMeta} "Catalog page; status NO_DATA when empty"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.inventoryService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, len(items), PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/inventory/:id
// @Summary Get a catalog item
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=domain.InventoryItem} "Item"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "inventory")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PUT /api/v1/inventory/:id
// @Summary Update a catalog item
// @Description Only the supplied fields change
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param request body service.UpdateInventoryInput true "Fields to update"
// @Success 200 {object} Response{data=domain.InventoryItem} "Item updated"
// @Failure 400 {object} ErrorResponseBody "Validation error or empty update"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "inventory")
	if !ok {
		return
	}

	var input service.UpdateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/inventory/:id
// @Summary Delete a catalog item
// @Description Existing document lines keep their copied name and price
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=DeletedResponse} "Item deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "inventory")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondDeleted(c, id)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	query := c.Query("q")

	results, err := h.searchService.Search(orgID, query)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(results)
}

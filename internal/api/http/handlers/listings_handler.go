package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/api/dto"
	"github.com/Rahmatul-Rovi/Loan-Management-System-Server/internal/service"
	apperrors "github.com/Rahmatul-Rovi/Loan-Management-System-Server/pkg/util"
)

// ListingsHandler exposes loan listing CRUD.
type ListingsHandler struct {
	listings *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listingService *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listingService}
}

// List handles GET /loans.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	listings, err := h.listings.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListingResponses(listings))
}

// Get handles GET /loans/:id.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListingResponse(listing))
}

// Create handles POST /loans (admin).
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Create(c.Context(), listingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Loan added successfully", "loanId": listing.ID})
}

// Update handles PATCH /loans/:id (admin).
func (h *ListingsHandler) Update(c *fiber.Ctx) error {
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.listings.Update(c.Context(), c.Params("id"), listingInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Loan updated successfully"})
}

// Delete handles DELETE /loans/:id (admin).
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.listings.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Loan deleted successfully"})
}

func listingInput(req dto.ListingRequest) service.ListingInput {
	return service.ListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/model"
	"kycapi/internal/service"
)

type ndaRequest struct {
	InvestorType string         `json:"investor_type"`
	UserData     map[string]any `json:"user_data"`
	CompanyData  map[string]any `json:"company_data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendNDA emails an NDA request with the submitted investor data to the admin.
//
// @Summary Request NDA documents
// @Tags nda
// @Accept json
// @Produce json
// @Param body body ndaRequest true "investor type with user_data or company_data"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/admin/verify-NDA-documents [post]
func SendNDA(svc service.NDAService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		const msg = "Error sending NDA documents"

		var body ndaRequest
		if err := c.BodyParser(&body); err != nil {
			return writeErrorDetail(c, fiber.StatusBadRequest, "INVALID_BODY", msg, err)
		}

		data := body.CompanyData
		if body.InvestorType == string(model.InvestorIndividual) {
			data = body.UserData
		}

		err := svc.SendNDA(c.UserContext(), service.NDARequest{InvestorType: body.InvestorType, Data: data})
		if err != nil {
			if errors.Is(err, service.ErrMissingField) {
				return writeErrorDetail(c, fiber.StatusBadRequest, "MISSING_FIELD", msg, err)
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "NOTIFICATION_FAILED", msg, err)
		}
		return c.JSON(messageResponse{Success: true, Message: "NDA documents sent successfully"})
	}
}

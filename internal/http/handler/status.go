package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/logging"
	"kycapi/internal/service"
)

const (
	msgNotFound      = "No KYC application found for this email"
	msgInvalidStatus = "Status must be pending, approved or rejected"
)

type statusResponse struct {
	Success bool                  `json:"success"`
	Data    *service.StatusResult `json:"data"`
}

type notAppliedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type statusUpdateResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *service.StatusResult `json:"data"`
}

type statusUpdateInput struct {
	Email  string `json:"email" form:"email"`
	Status string `json:"status" form:"status"`
}

// GetKYCStatus reports the review status of the latest application for an email.
//
// @Summary Get KYC status by email
// @Tags kyc
// @Produce json
// @Param email path string true "contact email"
// @Success 200 {object} statusResponse
// @Failure 404 {object} notAppliedResponse
// @Failure 500 {object} errorPayload
// @Router /api/admin/kyc-verification-status/{email} [get]
func GetKYCStatus(svc service.StatusService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := url.PathUnescape(c.Params("email"))
		if err != nil || strings.TrimSpace(email) == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EMAIL", "invalid email")
		}

		res, err := svc.GetStatus(c.UserContext(), email)
		if err != nil {
			if errors.Is(err, service.ErrApplicationNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(notAppliedResponse{
					Message: msgNotFound,
					Status:  "not applied",
				})
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching KYC application status", err)
		}
		return c.JSON(statusResponse{Success: true, Data: res})
	}
}

// UpdateKYCStatus sets the status of the latest application for an email.
// GET requests come from the admin email links and get an HTML page back;
// every other method gets JSON.
//
// @Summary Update KYC status
// @Tags kyc
// @Produce json,html
// @Param email query string false "contact email (or in the body)"
// @Param status query string false "pending, approved or rejected (or in the body)"
// @Success 200 {object} statusUpdateResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/admin/kyc-verification-status [get]
// @Router /api/admin/kyc-verification-status [post]
func UpdateKYCStatus(svc service.StatusService, dashboardURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := statusUpdateInput{Email: c.Query("email"), Status: c.Query("status")}
		if (in.Email == "" || in.Status == "") && len(c.Body()) > 0 {
			var body statusUpdateInput
			if err := c.BodyParser(&body); err == nil {
				if in.Email == "" {
					in.Email = body.Email
				}
				if in.Status == "" {
					in.Status = body.Status
				}
			}
		}
		if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Status) == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "Email and status are required")
		}

		res, err := svc.SetStatus(c.UserContext(), in.Email, in.Status)
		asHTML := c.Method() == fiber.MethodGet

		var status int
		var code, msg string
		switch {
		case err == nil:
			if asHTML {
				return renderPage(c, fiber.StatusOK, page{
					Title:   "KYC Status Updated",
					Heading: "Status Updated Successfully",
					Tone:    toneSuccess,
					Lines: []string{
						fmt.Sprintf("The KYC application for %s has been marked as %s.", in.Email, res.Status),
					},
					Link:     dashboardURL + "/kyc-applications",
					LinkText: "Back to dashboard",
				})
			}
			return c.JSON(statusUpdateResponse{
				Success: true,
				Message: "KYC application status updated successfully",
				Data:    res,
			})
		case errors.Is(err, service.ErrApplicationNotFound):
			status, code, msg = fiber.StatusNotFound, "NOT_FOUND", msgNotFound
		case errors.Is(err, service.ErrInvalidStatus):
			status, code, msg = fiber.StatusBadRequest, "INVALID_STATUS", msgInvalidStatus
		default:
			if asHTML {
				logging.From(c.UserContext()).Error("kyc status update failed", "error", err.Error())
				return renderPage(c, fiber.StatusInternalServerError, page{
					Title:    "KYC Status Error",
					Heading:  "Error Updating Status",
					Tone:     toneError,
					Lines:    []string{"The status could not be updated. Please try again from the dashboard."},
					Link:     dashboardURL + "/kyc-applications",
					LinkText: "Return to dashboard",
				})
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Error updating KYC application status", err)
		}

		if asHTML {
			return renderPage(c, status, page{
				Title:   "KYC Status Update Failed",
				Heading: "Update Failed",
				Tone:    toneError,
				Lines:   []string{msg},
			})
		}
		return writeError(c, status, code, msg)
	}
}

package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/esign"
	"kycapi/internal/logging"
	"kycapi/internal/service"
)

// providerRetryAfter is how long clients are told to wait when the signing
// account is unavailable.
const providerRetryAfter = 60 * time.Second

type providerErrorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Action     string `json:"action,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

type consentResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SendDocuSign creates an NDA envelope for the investor in the emailed
// acceptance link and shows the envelope id.
//
// @Summary Send an NDA envelope for signature
// @Tags esign
// @Produce html,json
// @Param investorType query string true "individual or institutional"
// @Param userData query string false "JSON signer data (individual)"
// @Param companyData query string false "JSON company data (institutional)"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} providerErrorResponse
// @Failure 503 {object} providerErrorResponse
// @Failure 500 {object} providerErrorResponse
// @Router /api/admin/send-docusign [get]
func SendDocuSign(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := service.EnvelopeRequest{
			InvestorType: c.Query("investorType"),
			UserData:     c.Query("userData"),
			CompanyData:  c.Query("companyData"),
		}
		if req.InvestorType == "" || (req.UserData == "" && req.CompanyData == "") {
			return c.Status(fiber.StatusBadRequest).JSON(providerErrorResponse{Error: "Missing required parameters"})
		}

		sum, err := svc.SendEnvelope(c.UserContext(), req)
		if err != nil {
			return envelopeError(c, err)
		}

		return renderPage(c, fiber.StatusOK, page{
			Title:   "DocuSign Envelope Sent",
			Heading: "Envelope Sent Successfully",
			Tone:    toneSuccess,
			Lines: []string{
				"The NDA has been sent to the investor for signature.",
				"Envelope ID: " + sum.EnvelopeID,
			},
		})
	}
}

func envelopeError(c *fiber.Ctx, err error) error {
	var authErr *esign.ProviderAuthError
	switch {
	case errors.As(err, &authErr):
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(providerRetryAfter.Seconds())))
		return c.Status(fiber.StatusServiceUnavailable).JSON(providerErrorResponse{
			Error:      "DocuSign account is not available",
			Details:    authErr.Error(),
			Action:     "Please verify your DocuSign developer account status or contact support to renew your account.",
			RetryAfter: int(providerRetryAfter.Seconds()),
		})
	case errors.Is(err, service.ErrUnsupportedInvestorType):
		return c.Status(fiber.StatusBadRequest).JSON(providerErrorResponse{Error: "Unsupported investor type or missing data"})
	case errors.Is(err, service.ErrMalformedField), errors.Is(err, service.ErrMissingField):
		return c.Status(fiber.StatusBadRequest).JSON(providerErrorResponse{Error: "Invalid signer data", Details: err.Error()})
	}

	logging.From(c.UserContext()).Error("send docusign envelope failed", "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(providerErrorResponse{
		Error:   "Failed to send DocuSign envelope",
		Details: err.Error(),
	})
}

// DocuSignCallback completes the consent redirect by exchanging the
// authorization code. The token is kept server side.
//
// @Summary DocuSign consent callback
// @Tags esign
// @Produce json
// @Param code query string true "authorization code"
// @Success 200 {object} consentResponse
// @Failure 400 {object} providerErrorResponse
// @Failure 500 {object} providerErrorResponse
// @Router /api/admin/docusign/callback [get]
func DocuSignCallback(svc service.SignatureService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Query("code")
		if code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(providerErrorResponse{Error: "Authorization code is missing"})
		}

		res, err := svc.CompleteConsent(c.UserContext(), code)
		if err != nil {
			logging.From(c.UserContext()).Error("docusign callback failed", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(providerErrorResponse{
				Error:   "Failed to handle callback",
				Details: err.Error(),
			})
		}
		return c.JSON(consentResponse{
			Success:   true,
			Message:   "Authorization successful",
			TokenType: res.TokenType,
			ExpiresAt: res.ExpiresAt,
		})
	}
}

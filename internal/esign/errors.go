package esign

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// ProviderAuthError means the signing account or its credentials cannot be
// used right now. Callers should surface it as a retryable unavailability.
type ProviderAuthError struct {
	Reason string
	Err    error
}

func (e *ProviderAuthError) Error() string {
	return "failed to verify DocuSign account status: " + e.Reason
}

func (e *ProviderAuthError) Unwrap() error { return e.Err }

// APIError is a non-auth failure returned by the eSignature REST API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("DocuSign API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("DocuSign API error (%d): %s", e.StatusCode, e.Message)
}

func accountStatusError(status int, err error) error {
	switch status {
	case http.StatusUnauthorized:
		return &ProviderAuthError{Reason: "DocuSign account credentials are invalid or expired. Please check your developer account status.", Err: err}
	case http.StatusNotFound:
		return &ProviderAuthError{Reason: "DocuSign account not found. The account may have been deactivated or deleted.", Err: err}
	case http.StatusForbidden:
		return &ProviderAuthError{Reason: "Access to DocuSign account is forbidden. The account may be suspended or restricted.", Err: err}
	}
	return nil
}

// tokenError maps OAuth token endpoint failures to readable reasons.
func tokenError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return &ProviderAuthError{Reason: "Failed to generate JWT token: " + err.Error(), Err: err}
	}
	code, msg := re.ErrorCode, re.ErrorDescription
	if code == "" {
		// the JWT token source does not decode the error body
		var body struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if json.Unmarshal(re.Body, &body) == nil {
			code, msg = body.Error, body.Description
		}
	}
	if msg == "" {
		msg = code
	}
	var reason string
	switch code {
	case "invalid_grant":
		reason = "Invalid grant: " + msg + ". Please check your Integrator Key, User ID, and private key."
	case "invalid_client":
		reason = "Invalid client: " + msg + ". Please check your Integrator Key."
	case "invalid_request":
		reason = "Invalid request: " + msg + ". Please check your JWT token configuration."
	case "invalid_scope":
		reason = "Invalid scope: " + msg + ". The requested scope is not allowed."
	case "consent_required":
		reason = "Consent required: " + msg + ". Grant consent for the integration key and retry."
	case "":
		reason = "Failed to generate JWT token: " + err.Error()
	default:
		reason = "DocuSign API error: " + msg
	}
	return &ProviderAuthError{Reason: reason, Err: err}
}

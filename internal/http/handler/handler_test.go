package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kycapi/internal/model"
	"kycapi/internal/service"
	serviceMocks "kycapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
		assert.False(t, body.Success)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// kycForm builds a multipart KYC request body.
func kycForm(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			part.Write([]byte("content of " + name))
		}
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

var individualFields = map[string]string{
	"investorType":    "individual",
	"contactInfo":     `{"name":"Ann","email":"ann@example.com","phone":"+65"}`,
	"investorDetails": `{"fullLegalName":"Ann Lee"}`,
	"declarations":    `[{"id":"d1","text":"I agree","accepted":true}]`,
}

func TestSubmitKYC(t *testing.T) {
	mockSvc := new(serviceMocks.MockKYCService)
	app := fiber.New()
	app.Post("/kyc-verification", SubmitKYC(mockSvc, 64))

	t.Run("success", func(t *testing.T) {
		body, ct := kycForm(t, individualFields, map[string][]string{
			"idDocument":         {"id.pdf"},
			"financialDocuments": {"a.pdf", "b.pdf"},
		})

		ref := model.DocumentReference{StoragePath: "ann@example.com/idDocument_1.pdf", FileName: "id.pdf", DocumentType: model.DocIDDocument}
		expected := &service.SubmitResult{
			ApplicationID: uuid.NewString(),
			Documents:     model.Documents{model.DocIDDocument: {ref}},
		}
		mockSvc.On("Submit", mock.Anything, mock.MatchedBy(func(sub service.Submission) bool {
			fin := sub.Files[model.DocFinancialDocuments]
			return sub.InvestorType == "individual" &&
				strings.Contains(sub.ContactInfo, "ann@example.com") &&
				sub.BeneficialOwners == "" &&
				len(sub.Files[model.DocIDDocument]) == 1 &&
				string(sub.Files[model.DocIDDocument][0].Content) == "content of id.pdf" &&
				len(fin) == 2 && fin[0].Filename == "a.pdf" && fin[1].Filename == "b.pdf"
		})).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/kyc-verification", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "KYC application submitted successfully", result["message"])
		assert.Equal(t, expected.ApplicationID, result["applicationId"])
		docs, _ := result["documents"].(map[string]any)
		id, _ := docs["idDocument"].(map[string]any)
		assert.Equal(t, "id.pdf", id["fileName"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("file too large", func(t *testing.T) {
		body, ct := kycForm(t, individualFields, map[string][]string{
			"idDocument": {strings.Repeat("x", 80) + ".pdf"},
		})

		req := httptest.NewRequest(http.MethodPost, "/kyc-verification", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kyc-verification", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FORM", res.Code)
	})

	errCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing field", fmt.Errorf("investorType is required: %w", service.ErrMissingField), http.StatusBadRequest, "MISSING_FIELD"},
		{"too many files", fmt.Errorf("at most 1 file: %w", service.ErrTooManyFiles), http.StatusBadRequest, "TOO_MANY_FILES"},
		{"malformed json", &service.MalformedFieldError{Field: "contactInfo", Err: errors.New("unexpected end of JSON input")}, http.StatusInternalServerError, "MALFORMED_FIELD"},
		{"upload failure", errors.New("failed to upload id.pdf after 3 attempts"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := kycForm(t, individualFields, nil)
			mockSvc.On("Submit", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/kyc-verification", body)
			req.Header.Set("Content-Type", ct)
			resp, _ := app.Test(req)

			assert.Equal(t, tc.status, resp.StatusCode)
			var res errorPayload
			json.NewDecoder(resp.Body).Decode(&res)
			assert.False(t, res.Success)
			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, "Error processing KYC application", res.Message)
			assert.Equal(t, tc.err.Error(), res.Error)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestListApplications(t *testing.T) {
	mockSvc := new(serviceMocks.MockKYCService)
	app := fiber.New()
	app.Get("/kyc-applications", ListApplications(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.ApplicationListResult{
			Items: []model.Application{{ID: uuid.NewString(), Status: model.StatusPending}},
			Total: 1,
		}
		mockSvc.On("ListApplications", mock.Anything, 10, 0, "pending").Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/kyc-applications?status=pending", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data  []model.Application `json:"data"`
			Total int                 `json:"total"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/kyc-applications?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		mockSvc.On("ListApplications", mock.Anything, 10, 0, "done").Return(nil, fmt.Errorf("x: %w", service.ErrInvalidStatus)).Once()

		req := httptest.NewRequest(http.MethodGet, "/kyc-applications?status=done", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListApplications", mock.Anything, 10, 0, "").Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/kyc-applications", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetApplication(t *testing.T) {
	mockSvc := new(serviceMocks.MockKYCService)
	app := fiber.New()
	app.Get("/kyc-applications/:id", GetApplication(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("GetApplication", mock.Anything, id).Return(&model.Application{ID: id, InvestorType: model.InvestorIndividual}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-applications/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result["id"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("GetApplication", mock.Anything, id).Return(nil, fmt.Errorf("x: %w", service.ErrApplicationNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-applications/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-applications/invalid-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Code)
	})
}

func TestGetKYCStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatusService)
	app := fiber.New()
	app.Get("/kyc-verification-status/:email", GetKYCStatus(mockSvc))

	t.Run("found", func(t *testing.T) {
		mockSvc.On("GetStatus", mock.Anything, "ann@example.com").
			Return(&service.StatusResult{ApplicationID: "app-1", Status: model.StatusApproved}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status/ann%40example.com", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Success bool `json:"success"`
			Data    struct {
				ApplicationID string `json:"applicationId"`
				Status        string `json:"status"`
			} `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, "app-1", result.Data.ApplicationID)
		assert.Equal(t, "approved", result.Data.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not applied", func(t *testing.T) {
		mockSvc.On("GetStatus", mock.Anything, "nobody@example.com").
			Return(nil, fmt.Errorf("lookup: %w", service.ErrApplicationNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status/nobody@example.com", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var result notAppliedResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.False(t, result.Success)
		assert.Equal(t, "not applied", result.Status)
		assert.Equal(t, "No KYC application found for this email", result.Message)
	})

	t.Run("ledger error", func(t *testing.T) {
		mockSvc.On("GetStatus", mock.Anything, "err@example.com").Return(nil, errors.New("connection refused")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status/err@example.com", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Error fetching KYC application status", res.Message)
		assert.Equal(t, "connection refused", res.Error)
	})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestUpdateKYCStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatusService)
	app := fiber.New()
	app.All("/kyc-verification-status", UpdateKYCStatus(mockSvc, "http://dash.test"))

	updatedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ok := &service.StatusResult{ApplicationID: "app-1", Status: model.StatusApproved, UpdatedAt: &updatedAt}

	t.Run("missing parameters", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status?email=a@b.c", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Email and status are required", res.Message)
	})

	t.Run("GET renders success page", func(t *testing.T) {
		mockSvc.On("SetStatus", mock.Anything, "ann@example.com", "approved").Return(ok, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status?email=ann@example.com&status=approved", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		html := readBody(t, resp)
		assert.Contains(t, html, "Status Updated Successfully")
		assert.Contains(t, html, "ann@example.com")
		mockSvc.AssertExpectations(t)
	})

	t.Run("GET renders failure page", func(t *testing.T) {
		mockSvc.On("SetStatus", mock.Anything, "nobody@example.com", "rejected").
			Return(nil, fmt.Errorf("x: %w", service.ErrApplicationNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status?email=nobody@example.com&status=rejected", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		html := readBody(t, resp)
		assert.Contains(t, html, "Update Failed")
		assert.Contains(t, html, "No KYC application found for this email")
	})

	t.Run("GET renders error page with dashboard link", func(t *testing.T) {
		mockSvc.On("SetStatus", mock.Anything, "err@example.com", "approved").Return(nil, errors.New("db down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kyc-verification-status?email=err@example.com&status=approved", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		html := readBody(t, resp)
		assert.Contains(t, html, "Error Updating Status")
		assert.Contains(t, html, `href="http://dash.test/kyc-applications"`)
		assert.NotContains(t, html, "db down")
	})

	t.Run("POST JSON body", func(t *testing.T) {
		mockSvc.On("SetStatus", mock.Anything, "ann@example.com", "approved").Return(ok, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/kyc-verification-status", strings.NewReader(`{"email":"ann@example.com","status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result statusUpdateResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, "KYC application status updated successfully", result.Message)
		require.NotNil(t, result.Data)
		assert.Equal(t, "app-1", result.Data.ApplicationID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("PUT invalid status", func(t *testing.T) {
		mockSvc.On("SetStatus", mock.Anything, "ann@example.com", "done").
			Return(nil, fmt.Errorf("x: %w", service.ErrInvalidStatus)).Once()

		req := httptest.NewRequest(http.MethodPut, "/kyc-verification-status?email=ann@example.com&status=done", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STATUS", res.Code)
	})
}

func TestSendNDA(t *testing.T) {
	mockSvc := new(serviceMocks.MockNDAService)
	app := fiber.New()
	app.Post("/verify-NDA-documents", SendNDA(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/verify-NDA-documents", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("individual uses user_data", func(t *testing.T) {
		mockSvc.On("SendNDA", mock.Anything, service.NDARequest{
			InvestorType: "individual",
			Data:         map[string]any{"name": "Ann"},
		}).Return(nil).Once()

		resp := post(`{"investor_type":"individual","user_data":{"name":"Ann"},"company_data":{"name":"ignored"}}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result messageResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, "NDA documents sent successfully", result.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("institutional uses company_data", func(t *testing.T) {
		mockSvc.On("SendNDA", mock.Anything, service.NDARequest{
			InvestorType: "institutional",
			Data:         map[string]any{"companyName": "Acme"},
		}).Return(nil).Once()

		resp := post(`{"investor_type":"institutional","company_data":{"companyName":"Acme"}}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("mail failure", func(t *testing.T) {
		mockSvc.On("SendNDA", mock.Anything, mock.Anything).
			Return(fmt.Errorf("send: %w", service.ErrNotificationFailed)).Once()

		resp := post(`{"investor_type":"individual","user_data":{"name":"Ann"}}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Error sending NDA documents", res.Message)
	})

	t.Run("missing data", func(t *testing.T) {
		mockSvc.On("SendNDA", mock.Anything, mock.Anything).
			Return(fmt.Errorf("x: %w", service.ErrMissingField)).Once()

		resp := post(`{"investor_type":"individual"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAddData(t *testing.T) {
	mockSvc := new(serviceMocks.MockKnowledgeService)
	app := fiber.New()
	app.Post("/add-data", AddData(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/add-data", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("AddData", mock.Anything, service.AddDataRequest{Content: "Fees are 2%", Category: "pricing"}).
			Return(&model.KnowledgeEntry{ID: "k-1", Content: "Fees are 2%", Category: "pricing"}, nil).Once()

		resp := post(`{"content":"Fees are 2%","category":"pricing"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result addDataResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, "Data added successfully with embedding", result.Message)
		require.NotNil(t, result.Data)
		assert.Equal(t, "k-1", result.Data.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("content required", func(t *testing.T) {
		mockSvc.On("AddData", mock.Anything, service.AddDataRequest{}).Return(nil, service.ErrContentRequired).Once()

		resp := post(`{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Content is required", res.Message)
	})

	t.Run("embedding failure", func(t *testing.T) {
		mockSvc.On("AddData", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited")).Once()

		resp := post(`{"content":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Error processing request", res.Message)
		assert.Equal(t, "rate limited", res.Error)
	})
}

func TestChat(t *testing.T) {
	mockSvc := new(serviceMocks.MockKnowledgeService)
	app := fiber.New()
	app.Post("/chat", Chat(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("answer", func(t *testing.T) {
		mockSvc.On("Chat", mock.Anything, mock.MatchedBy(func(req service.ChatRequest) bool {
			return req.Query == "What are the fees?" && len(req.ConversationHistory) == 1
		})).Return(&service.ChatResponse{
			Response:       "Fees are 2%. See https://fees.test",
			Links:          []string{"https://fees.test"},
			Sources:        []service.ChatSource{{Content: "Fees are 2%...", Category: "pricing"}},
			ConversationID: "conv-1",
		}, nil).Once()

		resp := post(`{"query":"What are the fees?","conversation_history":[{"role":"user","content":"hi"}]}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Fees are 2%. See https://fees.test", result["response"])
		assert.Equal(t, []any{"https://fees.test"}, result["links"])
		assert.Equal(t, "conv-1", result["conversation_id"])
		assert.Len(t, result["sources"], 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("query required", func(t *testing.T) {
		mockSvc.On("Chat", mock.Anything, mock.Anything).Return(nil, service.ErrQueryRequired).Once()

		resp := post(`{"query":""}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Query is required", res.Message)
	})

	t.Run("completion failure", func(t *testing.T) {
		mockSvc.On("Chat", mock.Anything, mock.Anything).Return(nil, errors.New("model unavailable")).Once()

		resp := post(`{"query":"hello"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Error processing chat request", res.Message)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	kycSvc := new(serviceMocks.MockKYCService)
	knowledgeSvc := new(serviceMocks.MockKnowledgeService)
	RegisterRoutes(app, nil, Services{
		KYC:       kycSvc,
		Status:    new(serviceMocks.MockStatusService),
		NDA:       new(serviceMocks.MockNDAService),
		Signature: new(serviceMocks.MockSignatureService),
		Knowledge: knowledgeSvc,
	}, Options{DashboardURL: "http://dash.test"})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Code)
	})

	t.Run("admin group", func(t *testing.T) {
		kycSvc.On("ListApplications", mock.Anything, 10, 0, "").
			Return(&service.ApplicationListResult{Items: []model.Application{}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/kyc-applications", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		kycSvc.AssertExpectations(t)
	})

	t.Run("knowledge group", func(t *testing.T) {
		knowledgeSvc.On("Chat", mock.Anything, mock.Anything).Return(&service.ChatResponse{ConversationID: "c"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		knowledgeSvc.AssertExpectations(t)
	})
}

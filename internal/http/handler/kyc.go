package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kycapi/internal/model"
	"kycapi/internal/service"
)

// form fields carrying JSON encoded application parts
const (
	fieldInvestorType          = "investorType"
	fieldContactInfo           = "contactInfo"
	fieldDeclarations          = "declarations"
	fieldEDDScreening          = "eddScreening"
	fieldInvestorDetails       = "investorDetails"
	fieldBeneficialOwners      = "beneficialOwners"
	fieldAuthorizedSignatories = "authorizedSignatories"
)

type submitResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	ApplicationID string          `json:"applicationId"`
	Documents     model.Documents `json:"documents"`
}

// SubmitKYC handles a multipart KYC application.
//
// @Summary Submit a KYC application
// @Tags kyc
// @Accept multipart/form-data
// @Produce json
// @Param investorType formData string true "individual or institutional"
// @Param contactInfo formData string true "JSON {name,email,phone}"
// @Param investorDetails formData string true "JSON investor details"
// @Param declarations formData string false "JSON declarations"
// @Param eddScreening formData string false "JSON EDD screening"
// @Param beneficialOwners formData string false "JSON beneficial owners (institutional)"
// @Param authorizedSignatories formData string false "JSON authorized signatories (institutional)"
// @Success 201 {object} submitResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/admin/kyc-verification [post]
func SubmitKYC(svc service.KYCService, maxFileBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form data is required")
		}

		files, err := readFormFiles(form, maxFileBytes)
		if errors.Is(err, errFileTooLarge) {
			return writeErrorDetail(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "Error processing KYC application", err)
		}
		if err != nil {
			return writeErrorDetail(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file", err)
		}

		sub := service.Submission{
			InvestorType:          formValue(form, fieldInvestorType),
			ContactInfo:           formValue(form, fieldContactInfo),
			Declarations:          formValue(form, fieldDeclarations),
			EDDScreening:          formValue(form, fieldEDDScreening),
			InvestorDetails:       formValue(form, fieldInvestorDetails),
			BeneficialOwners:      formValue(form, fieldBeneficialOwners),
			AuthorizedSignatories: formValue(form, fieldAuthorizedSignatories),
			Files:                 files,
		}

		res, err := svc.Submit(c.UserContext(), sub)
		if err != nil {
			const msg = "Error processing KYC application"
			switch {
			case errors.Is(err, service.ErrMissingField):
				return writeErrorDetail(c, fiber.StatusBadRequest, "MISSING_FIELD", msg, err)
			case errors.Is(err, service.ErrTooManyFiles):
				return writeErrorDetail(c, fiber.StatusBadRequest, "TOO_MANY_FILES", msg, err)
			case errors.Is(err, service.ErrMalformedField):
				return writeErrorDetail(c, fiber.StatusInternalServerError, "MALFORMED_FIELD", msg, err)
			default:
				return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msg, err)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(submitResponse{
			Success:       true,
			Message:       "KYC application submitted successfully",
			ApplicationID: res.ApplicationID,
			Documents:     res.Documents,
		})
	}
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

var errFileTooLarge = errors.New("file too large")

// readFormFiles buffers every uploaded file, keyed by its form field.
// Field names are validated by the service. maxBytes <= 0 disables the size check.
func readFormFiles(form *multipart.Form, maxBytes int64) (map[model.DocumentType][]model.UploadedFile, error) {
	out := make(map[model.DocumentType][]model.UploadedFile, len(form.File))
	for field, headers := range form.File {
		files := make([]model.UploadedFile, 0, len(headers))
		for _, fh := range headers {
			if maxBytes > 0 && fh.Size > maxBytes {
				return nil, fmt.Errorf("%w: %s exceeds %d bytes", errFileTooLarge, fh.Filename, maxBytes)
			}
			f, err := readFile(fh)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
		out[model.DocumentType(field)] = files
	}
	return out, nil
}

func readFile(fh *multipart.FileHeader) (model.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return model.UploadedFile{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return model.UploadedFile{}, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return model.UploadedFile{Filename: fh.Filename, ContentType: ct, Content: content}, nil
}

// ListApplications returns submitted applications for the admin dashboard.
//
// @Summary List KYC applications
// @Tags kyc
// @Produce json
// @Param limit query int false "page size (default 10, max 100)"
// @Param offset query int false "offset"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} service.ApplicationListResult
// @Failure 400 {object} errorPayload
// @Router /api/admin/kyc-applications [get]
func ListApplications(svc service.KYCService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListApplications(c.UserContext(), limit, offset, c.Query("status"))
		if err != nil {
			if errors.Is(err, service.ErrInvalidStatus) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "status must be pending, approved or rejected")
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
		}
		return c.JSON(res)
	}
}

// GetApplication returns one application by id.
//
// @Summary Get a KYC application
// @Tags kyc
// @Produce json
// @Param id path string true "application id"
// @Success 200 {object} model.Application
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/admin/kyc-applications/{id} [get]
func GetApplication(svc service.KYCService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		app, err := svc.GetApplication(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrApplicationNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "application not found")
			}
			return writeErrorDetail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
		}
		return c.JSON(app)
	}
}

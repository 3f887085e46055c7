package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"kycapi/internal/service"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	KYC       service.KYCService
	Status    service.StatusService
	NDA       service.NDAService
	Signature service.SignatureService
	Knowledge service.KnowledgeService
}

// Options tune the HTTP layer.
type Options struct {
	// DashboardURL is where HTML result pages link back to.
	DashboardURL string
	// MaxFileBytes caps each uploaded KYC document. Zero disables the check.
	MaxFileBytes int64
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// KYC and e-signature routes live under /api/admin, knowledge routes under /api.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, opts Options) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	admin := app.Group("/api/admin")
	admin.Post("/kyc-verification", SubmitKYC(svcs.KYC, opts.MaxFileBytes))
	admin.Get("/kyc-verification-status/:email", GetKYCStatus(svcs.Status))
	admin.All("/kyc-verification-status", UpdateKYCStatus(svcs.Status, opts.DashboardURL))
	admin.Get("/kyc-applications", ListApplications(svcs.KYC))
	admin.Get("/kyc-applications/:id", GetApplication(svcs.KYC))
	admin.Post("/verify-NDA-documents", SendNDA(svcs.NDA))
	admin.Get("/send-docusign", SendDocuSign(svcs.Signature))
	admin.Get("/docusign/callback", DocuSignCallback(svcs.Signature))

	api := app.Group("/api")
	api.Post("/add-data", AddData(svcs.Knowledge))
	api.Post("/chat", Chat(svcs.Knowledge))
}

package notification

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"kycapi/internal/model"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format("Jan 2, 2006 15:04 UTC") },
	"yesNo": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFiles, "templates/*.html"))

// DocumentRow is one line of the submitted documents table.
type DocumentRow struct {
	Label      string
	FileName   string
	UploadedAt time.Time
	URL        string
}

// ActionLink is a one-click status update link shown to the admin.
type ActionLink struct {
	Label string
	Class string
	URL   string
}

// ApplicationView is everything the application emails display.
type ApplicationView struct {
	ApplicationID         string
	InvestorType          model.InvestorType
	ApplicantEmail        string
	SubmittedAt           time.Time
	Individual            *model.IndividualDetails
	Institutional         *model.InstitutionalDetails
	BeneficialOwners      []model.BeneficialOwner
	AuthorizedSignatories []model.AuthorizedSignatory
	Documents             []DocumentRow
	Actions               []ActionLink
	Admin                 bool
}

// StatusURL is the link that sets the status of the latest application for email.
func StatusURL(baseURL, email string, status model.Status) string {
	q := "email=" + url.QueryEscape(email) + "&status=" + url.QueryEscape(string(status))
	return strings.TrimRight(baseURL, "/") + "/api/admin/kyc-verification-status?" + q
}

// NewApplicationView flattens app for rendering. resolveURL maps a storage
// path to a link; actionBase is the public base URL of this service.
func NewApplicationView(app *model.Application, resolveURL func(string) string, actionBase string) ApplicationView {
	v := ApplicationView{
		ApplicationID:         app.ID,
		InvestorType:          app.InvestorType,
		ApplicantEmail:        app.ContactInfo.Email,
		SubmittedAt:           app.CreatedAt,
		Individual:            app.InvestorDetails.Individual,
		Institutional:         app.InvestorDetails.Institutional,
		BeneficialOwners:      app.BeneficialOwners,
		AuthorizedSignatories: app.AuthorizedSignatories,
	}

	for _, t := range model.DocumentTypes() {
		refs := app.Documents[t]
		if !t.MultiValued() && len(refs) > 1 {
			refs = refs[len(refs)-1:]
		}
		for i, ref := range refs {
			label := t.Label()
			if t.MultiValued() {
				label += " " + strconv.Itoa(i+1)
			}
			link := ref.URL
			if resolveURL != nil && ref.StoragePath != "" {
				link = resolveURL(ref.StoragePath)
			}
			v.Documents = append(v.Documents, DocumentRow{
				Label:      label,
				FileName:   ref.FileName,
				UploadedAt: ref.UploadedAt,
				URL:        link,
			})
		}
	}

	v.Actions = []ActionLink{
		{Label: "Approve KYC", Class: "approve", URL: StatusURL(actionBase, app.ContactInfo.Email, model.StatusApproved)},
		{Label: "Reject KYC", Class: "reject", URL: StatusURL(actionBase, app.ContactInfo.Email, model.StatusRejected)},
		{Label: "Mark for Review", Class: "review", URL: StatusURL(actionBase, app.ContactInfo.Email, model.StatusPending)},
	}
	return v
}

// RenderApplicationEmail renders the applicant confirmation, or the admin
// notification with action links when admin is true.
func RenderApplicationEmail(v ApplicationView, admin bool) (string, error) {
	v.Admin = admin
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "application", v); err != nil {
		return "", fmt.Errorf("render application email: %w", err)
	}
	return buf.String(), nil
}

// NDARow is one field of the NDA request table.
type NDARow struct {
	Field string
	Value string
}

// NDAView is the admin NDA request email.
type NDAView struct {
	InvestorType string
	Rows         []NDARow
	AcceptURL    string
}

// NewNDAView humanizes the submitted fields and builds the Accept NDA link.
func NewNDAView(investorType string, data map[string]any, baseURL string) (NDAView, error) {
	v := NDAView{InvestorType: investorType}
	if len(data) == 0 {
		return v, nil
	}

	title := cases.Title(language.Und, cases.NoLower)
	for _, k := range sortedKeys(data) {
		v.Rows = append(v.Rows, NDARow{
			Field: title.String(strings.ReplaceAll(k, "_", " ")),
			Value: formatValue(data[k]),
		})
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return NDAView{}, fmt.Errorf("encode nda data: %w", err)
	}
	v.AcceptURL = AcceptNDAURL(baseURL, investorType, string(raw))
	return v, nil
}

// AcceptNDAURL links to the e-signature dispatch endpoint with the data attached.
func AcceptNDAURL(baseURL, investorType, dataJSON string) string {
	param := "userData"
	if investorType == string(model.InvestorInstitutional) {
		param = "companyData"
	}
	return strings.TrimRight(baseURL, "/") + "/api/admin/send-docusign?investorType=" +
		url.QueryEscape(investorType) + "&" + param + "=" + url.QueryEscape(dataJSON)
}

// RenderNDAEmail renders the NDA request sent to the admin.
func RenderNDAEmail(v NDAView) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "nda", v); err != nil {
		return "", fmt.Errorf("render nda email: %w", err)
	}
	return buf.String(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case map[string]any:
		parts := make([]string, 0, len(val))
		for _, k := range sortedKeys(val) {
			parts = append(parts, k+": "+formatValue(val[k]))
		}
		return strings.Join(parts, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

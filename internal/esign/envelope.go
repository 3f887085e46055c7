package esign

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidSignerData is returned when submitted data lacks the fields a
// template role needs.
var ErrInvalidSignerData = errors.New("missing signer data")

// TextTab prefills one text field of a template.
type TextTab struct {
	TabLabel string `json:"tabLabel"`
	Value    string `json:"value"`
}

// Tabs holds the prefilled fields of a template role.
type Tabs struct {
	TextTabs []TextTab `json:"textTabs"`
}

// TemplateRole binds a recipient to a role of the template.
type TemplateRole struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleName string `json:"roleName"`
	Tabs     Tabs   `json:"tabs"`
}

// EnvelopeDefinition is the body of an envelope creation request.
type EnvelopeDefinition struct {
	TemplateID    string         `json:"templateId"`
	TemplateRoles []TemplateRole `json:"templateRoles"`
	Status        string         `json:"status"`
}

// EnvelopeSummary is the provider response to an envelope creation.
type EnvelopeSummary struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime"`
	URI            string `json:"uri"`
}

const signerRole = "User"

// Address is the postal address collected with NDA requests.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// IndividualSigner is the userData payload of an individual NDA.
type IndividualSigner struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Designation string  `json:"designation"`
	Address     Address `json:"address"`
}

// InstitutionalSigner is the companyData payload of an institutional NDA.
type InstitutionalSigner struct {
	Name           string  `json:"Name"`
	Email          string  `json:"Email"`
	Title          string  `json:"Title"`
	CompanyName    string  `json:"CompanyName"`
	CompanyState   string  `json:"CompanyState"`
	CompanyAddress Address `json:"CompanyAddress"`
}

func requireSigner(name, email string) error {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return errors.Join(ErrInvalidSignerData, errors.New(strings.Join(missing, ", ")+" required"))
	}
	return nil
}

// IndividualEnvelope fills the individual NDA template. today stamps the CurrentDate tab.
func IndividualEnvelope(templateID string, s IndividualSigner, today time.Time) (EnvelopeDefinition, error) {
	if err := requireSigner(s.FullName, s.Email); err != nil {
		return EnvelopeDefinition{}, err
	}
	a := s.Address
	return EnvelopeDefinition{
		TemplateID: templateID,
		TemplateRoles: []TemplateRole{{
			Email:    s.Email,
			Name:     s.FullName,
			RoleName: signerRole,
			Tabs: Tabs{TextTabs: []TextTab{
				{TabLabel: "Address", Value: a.Street + " , " + a.City + ", " + a.State + ", " + a.Country},
				{TabLabel: "City", Value: a.City},
				{TabLabel: "Country", Value: a.Country},
				{TabLabel: "CurrentDate", Value: today.UTC().Format("2006-01-02")},
				{TabLabel: "Email", Value: s.Email},
				{TabLabel: "MobileNumber", Value: s.Phone},
				{TabLabel: "Name", Value: s.FullName},
				{TabLabel: "state", Value: a.State},
				{TabLabel: "Title", Value: s.Designation},
			}},
		}},
		Status: "sent",
	}, nil
}

// InstitutionalEnvelope fills the institutional NDA template.
func InstitutionalEnvelope(templateID string, s InstitutionalSigner) (EnvelopeDefinition, error) {
	if err := requireSigner(s.Name, s.Email); err != nil {
		return EnvelopeDefinition{}, err
	}
	a := s.CompanyAddress
	return EnvelopeDefinition{
		TemplateID: templateID,
		TemplateRoles: []TemplateRole{{
			Email:    s.Email,
			Name:     s.Name,
			RoleName: signerRole,
			Tabs: Tabs{TextTabs: []TextTab{
				{TabLabel: "CompanyName", Value: s.CompanyName},
				{TabLabel: "CompanyState", Value: s.CompanyState},
				{TabLabel: "CompanyAddress", Value: a.Street + ", " + a.City + ", " + a.State},
				{TabLabel: "Name", Value: s.Name},
				{TabLabel: "Title", Value: s.Title},
				{TabLabel: "Email", Value: s.Email},
			}},
		}},
		Status: "sent",
	}, nil
}

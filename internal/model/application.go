package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvestorType selects which investor detail variant an application carries.
type InvestorType string

const (
	InvestorIndividual    InvestorType = "individual"
	InvestorInstitutional InvestorType = "institutional"
)

// Valid reports whether t is a known investor type.
func (t InvestorType) Valid() bool {
	return t == InvestorIndividual || t == InvestorInstitutional
}

// Status is the review state of an application.
// Any status may move to any other status; "pending" is the initial state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates s against the closed set of statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// ContactInfo identifies the applicant. Email is the external lookup key.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Declaration is one statement the applicant accepted or declined.
type Declaration struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Accepted   bool       `json:"accepted"`
	AcceptedAt *time.Time `json:"acceptedAt"`
}

// EDDScreening holds the enhanced due diligence answers.
type EDDScreening struct {
	IsPEP                       bool   `json:"isPep"`
	PEPDetails                  string `json:"pepDetails,omitempty"`
	IsHighRiskJurisdiction      bool   `json:"isHighRiskJurisdiction"`
	HighRiskJurisdictionDetails string `json:"highRiskJurisdictionDetails,omitempty"`
	InvestmentAmountExceeds10m  bool   `json:"investmentAmountExceeds10m"`
	HasComplexStructure         bool   `json:"hasComplexStructure"`
	ComplexStructureDetails     string `json:"complexStructureDetails,omitempty"`
}

// IndividualDetails is the investor detail variant for natural persons.
type IndividualDetails struct {
	FullLegalName            string `json:"fullLegalName"`
	DateOfBirth              string `json:"dateOfBirth"`
	Nationality              string `json:"nationality"`
	IDType                   string `json:"idType"`
	IDNumber                 string `json:"idNumber"`
	IDIssuingCountry         string `json:"idIssuingCountry"`
	TaxResidenceCountry      string `json:"taxResidenceCountry"`
	TaxIDNumber              string `json:"taxIdNumber"`
	IsUSPerson               bool   `json:"isUsPerson"`
	SourceOfFundsDescription string `json:"sourceOfFundsDescription"`
}

// InstitutionalDetails is the investor detail variant for legal entities.
type InstitutionalDetails struct {
	LegalEntityName          string `json:"legalEntityName"`
	RegistrationNumber       string `json:"registrationNumber"`
	IncorporationDate        string `json:"incorporationDate"`
	Jurisdiction             string `json:"jurisdiction"`
	NatureOfBusiness         string `json:"natureOfBusiness"`
	SourceOfFundsDescription string `json:"sourceOfFundsDescription"`
}

// InvestorDetails holds exactly one variant, matching the application's investor type.
type InvestorDetails struct {
	Individual    *IndividualDetails
	Institutional *InstitutionalDetails
}

var ErrInvestorDetailsMismatch = errors.New("investor details do not match investor type")

// ParseInvestorDetails decodes raw into the variant selected by t.
func ParseInvestorDetails(t InvestorType, raw []byte) (InvestorDetails, error) {
	switch t {
	case InvestorIndividual:
		var d IndividualDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return InvestorDetails{}, err
		}
		return InvestorDetails{Individual: &d}, nil
	case InvestorInstitutional:
		var d InstitutionalDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return InvestorDetails{}, err
		}
		return InvestorDetails{Institutional: &d}, nil
	}
	return InvestorDetails{}, fmt.Errorf("%w: %q", ErrInvestorDetailsMismatch, t)
}

// MarshalJSON encodes whichever variant is set.
func (d InvestorDetails) MarshalJSON() ([]byte, error) {
	switch {
	case d.Individual != nil:
		return json.Marshal(d.Individual)
	case d.Institutional != nil:
		return json.Marshal(d.Institutional)
	}
	return []byte("{}"), nil
}

// BeneficialOwner is a natural person holding a stake in an institutional investor.
type BeneficialOwner struct {
	FullLegalName       string             `json:"fullLegalName"`
	Nationality         string             `json:"nationality"`
	DateOfBirth         string             `json:"dateOfBirth,omitempty"`
	OwnershipPercentage Percentage         `json:"ownershipPercentage"`
	IDDocument          *DocumentReference `json:"idDocument"`
}

// Percentage is an ownership share as the applicant typed it. Numbers, with
// or without a trailing %, decode into Value; blank input stays null; any
// other text is kept in Raw so the submission still goes through.
type Percentage struct {
	Value decimal.NullDecimal
	Raw   string
}

// NewPercentage wraps a known numeric share.
func NewPercentage(d decimal.Decimal) Percentage {
	return Percentage{Value: decimal.NewNullDecimal(d)}
}

func (p *Percentage) UnmarshalJSON(b []byte) error {
	*p = Percentage{}
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	}
	if s == "" || s == "null" {
		return nil
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%"))); err == nil {
		p.Value = decimal.NewNullDecimal(d)
		return nil
	}
	p.Raw = s
	return nil
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	switch {
	case p.Value.Valid:
		return json.Marshal(p.Value.Decimal.String())
	case p.Raw != "":
		return json.Marshal(p.Raw)
	}
	return []byte("null"), nil
}

// Display renders the share for people: "25.5%", the raw text, or "".
func (p Percentage) Display() string {
	if p.Value.Valid {
		return p.Value.Decimal.String() + "%"
	}
	return p.Raw
}

// AuthorizedSignatory may sign on behalf of an institutional investor.
type AuthorizedSignatory struct {
	FullLegalName         string             `json:"fullLegalName"`
	Position              string             `json:"position"`
	Email                 string             `json:"email,omitempty"`
	AuthorizationDocument *DocumentReference `json:"authorizationDocument"`
}

// Application is one KYC submission as stored in the ledger.
type Application struct {
	ID                    string                `json:"id"`
	InvestorType          InvestorType          `json:"investorType"`
	ContactInfo           ContactInfo           `json:"contactInfo"`
	Declarations          []Declaration         `json:"declarations"`
	EDDScreening          EDDScreening          `json:"eddScreening"`
	InvestorDetails       InvestorDetails       `json:"investorDetails"`
	BeneficialOwners      []BeneficialOwner     `json:"beneficialOwners,omitempty"`
	AuthorizedSignatories []AuthorizedSignatory `json:"authorizedSignatories,omitempty"`
	Documents             Documents             `json:"documents"`
	Status                Status                `json:"status"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

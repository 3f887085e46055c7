package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DocumentType is the multipart field name a KYC document was uploaded under.
type DocumentType string

const (
	DocIDDocument                DocumentType = "idDocument"
	DocAddressProof              DocumentType = "addressProof"
	DocTaxForm                   DocumentType = "taxForm"
	DocSourceOfFunds             DocumentType = "sourceOfFundsDoc"
	DocArticlesOfIncorporation   DocumentType = "articlesOfIncorporation"
	DocOperatingAgreement        DocumentType = "operatingAgreement"
	DocCertificateOfGoodStanding DocumentType = "certificateOfGoodStanding"
	DocBeneficialOwnerIDs        DocumentType = "beneficialOwnerIds"
	DocAuthorizationDocument     DocumentType = "authorizationDocument"
	DocFinancialDocuments        DocumentType = "financialDocuments"
)

type documentTypeInfo struct {
	label    string
	maxCount int
}

var documentTypes = map[DocumentType]documentTypeInfo{
	DocIDDocument:                {"Government ID", 1},
	DocAddressProof:              {"Proof of Address", 1},
	DocTaxForm:                   {"Tax Form", 1},
	DocSourceOfFunds:             {"Source of Funds Document", 1},
	DocArticlesOfIncorporation:   {"Articles of Incorporation", 1},
	DocOperatingAgreement:        {"Operating Agreement", 1},
	DocCertificateOfGoodStanding: {"Certificate of Good Standing", 1},
	DocBeneficialOwnerIDs:        {"Beneficial Owner IDs", 10},
	DocAuthorizationDocument:     {"Authorization Document", 1},
	DocFinancialDocuments:        {"Financial Documents", 5},
}

// DocumentTypes returns every accepted upload field in a stable order.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, 0, len(documentTypes))
	for t := range documentTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether t is an accepted upload field.
func (t DocumentType) Valid() bool {
	_, ok := documentTypes[t]
	return ok
}

// MultiValued reports whether t accumulates a list of references.
func (t DocumentType) MultiValued() bool {
	return t == DocBeneficialOwnerIDs || t == DocFinancialDocuments
}

// MaxCount is the number of files accepted for t.
func (t DocumentType) MaxCount() int {
	return documentTypes[t].maxCount
}

// Label is the human readable name used in emails.
func (t DocumentType) Label() string {
	if info, ok := documentTypes[t]; ok {
		return info.label
	}
	return string(t)
}

// DocumentReference points at one uploaded file in object storage.
// References are created at submission time and never modified afterwards.
type DocumentReference struct {
	StoragePath  string       `json:"storagePath"`
	URL          string       `json:"url"`
	FileName     string       `json:"fileName"`
	DocumentType DocumentType `json:"documentType"`
	MimeType     string       `json:"mimeType"`
	FileSize     int64        `json:"fileSize"`
	UploadedAt   time.Time    `json:"uploadedAt"`
}

// Documents maps a document type to its references. Single valued types hold
// at most one element and are encoded as a JSON object; multi valued types are
// encoded as arrays.
type Documents map[DocumentType][]DocumentReference

// Single returns the reference stored for a single valued type.
func (d Documents) Single(t DocumentType) *DocumentReference {
	refs := d[t]
	if len(refs) == 0 {
		return nil
	}
	ref := refs[len(refs)-1]
	return &ref
}

// MarshalJSON implements json.Marshaler.
func (d Documents) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d))
	for t, refs := range d {
		if len(refs) == 0 {
			continue
		}
		if t.MultiValued() {
			out[string(t)] = refs
			continue
		}
		out[string(t)] = refs[len(refs)-1]
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Documents) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Documents, len(raw))
	for key, val := range raw {
		t := DocumentType(key)
		if len(val) == 0 || string(val) == "null" {
			continue
		}
		if val[0] == '[' {
			var refs []DocumentReference
			if err := json.Unmarshal(val, &refs); err != nil {
				return fmt.Errorf("documents.%s: %w", key, err)
			}
			out[t] = refs
			continue
		}
		var ref DocumentReference
		if err := json.Unmarshal(val, &ref); err != nil {
			return fmt.Errorf("documents.%s: %w", key, err)
		}
		out[t] = []DocumentReference{ref}
	}
	*d = out
	return nil
}

// UploadedFile is a buffered multipart file ready to be stored.
type UploadedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size is the byte size of the buffered content.
func (f UploadedFile) Size() int64 {
	return int64(len(f.Content))
}

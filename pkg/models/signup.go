package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nursemoves/beta-signup/pkg/utils"
)

// SchemaVersion is written into every stored signup document
const SchemaVersion = 1

// DateLayout matches the US short date the landing page shows (M/D/YYYY)
const DateLayout = "1/2/2006"

// Field names accepted by SignupFields.Set
const (
	FieldFullName  = "fullName"
	FieldEmail     = "email"
	FieldCountry   = "country"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldSignature = "signature"
	FieldCheckbox1 = "checkbox1"
	FieldCheckbox2 = "checkbox2"
	FieldCheckbox3 = "checkbox3"
)

// RolePlaceholder is substituted into the confirmation email when no role was given
const RolePlaceholder = "N/A"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrFieldType    = errors.New("wrong value type for field")
)

// Document is a schemaless key-value document as held by the document store
type Document map[string]interface{}

// SignupFields represents the editable values of the beta signup form
type SignupFields struct {
	FullName  string `json:"fullName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Signature string `json:"signature" validate:"required"`
	Checkbox1 bool   `json:"checkbox1" validate:"required"`
	Checkbox2 bool   `json:"checkbox2" validate:"required"`
	Checkbox3 bool   `json:"checkbox3" validate:"required"`
}

// Normalize trims text fields and lowercases the email.
func (f *SignupFields) Normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = utils.NormalizeEmail(f.Email)
	f.Country = strings.TrimSpace(f.Country)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Role = strings.TrimSpace(f.Role)
	f.Signature = strings.TrimSpace(f.Signature)
}

// Set updates a single field by its form name.
func (f *SignupFields) Set(name string, value interface{}) error {
	switch name {
	case FieldFullName, FieldEmail, FieldCountry, FieldPhone, FieldRole, FieldSignature:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects text", ErrFieldType, name)
		}
		switch name {
		case FieldFullName:
			f.FullName = s
		case FieldEmail:
			f.Email = s
		case FieldCountry:
			f.Country = s
		case FieldPhone:
			f.Phone = s
		case FieldRole:
			f.Role = s
		case FieldSignature:
			f.Signature = s
		}
	case FieldCheckbox1, FieldCheckbox2, FieldCheckbox3:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects a boolean", ErrFieldType, name)
		}
		switch name {
		case FieldCheckbox1:
			f.Checkbox1 = b
		case FieldCheckbox2:
			f.Checkbox2 = b
		case FieldCheckbox3:
			f.Checkbox3 = b
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SignupRecord is the persisted outcome of one successful submission.
// Records are never updated or deleted.
type SignupRecord struct {
	ID            string    `json:"id"`
	SchemaVersion int       `json:"schemaVersion"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Country       string    `json:"country"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	Signature     string    `json:"signature"`
	Checkbox1     bool      `json:"checkbox1"`
	Checkbox2     bool      `json:"checkbox2"`
	Checkbox3     bool      `json:"checkbox3"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSignupRecord builds a record from validated fields and the date captured
// when the form was opened.
func NewSignupRecord(fields SignupFields, date string, now time.Time) *SignupRecord {
	return &SignupRecord{
		SchemaVersion: SchemaVersion,
		FullName:      fields.FullName,
		Email:         fields.Email,
		Country:       fields.Country,
		Phone:         fields.Phone,
		Role:          fields.Role,
		Signature:     fields.Signature,
		Checkbox1:     fields.Checkbox1,
		Checkbox2:     fields.Checkbox2,
		Checkbox3:     fields.Checkbox3,
		Date:          date,
		CreatedAt:     now.UTC(),
	}
}

// Document converts the record into the canonical stored shape.
func (r *SignupRecord) Document() Document {
	doc := Document{
		"schemaVersion": r.SchemaVersion,
		"fullName":      r.FullName,
		"email":         r.Email,
		"country":       r.Country,
		"role":          r.Role,
		"signature":     r.Signature,
		"checkbox1":     r.Checkbox1,
		"checkbox2":     r.Checkbox2,
		"checkbox3":     r.Checkbox3,
		"date":          r.Date,
		"createdAt":     r.CreatedAt.Format(time.RFC3339),
	}
	if r.Phone != "" {
		doc["phone"] = r.Phone
	}
	return doc
}

// ConfirmationParams are the substitution fields of the confirmation email.
func (r *SignupRecord) ConfirmationParams() map[string]string {
	role := r.Role
	if role == "" {
		role = RolePlaceholder
	}
	return map[string]string{
		"full_name": r.FullName,
		"email":     r.Email,
		"role":      role,
		"date":      r.Date,
	}
}

// FormatDate renders t the way the signup form shows its date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UpgradeDocument maps documents written by earlier form revisions into the
// canonical shape. Older revisions stored "state" (with "phone") where the
// current form stores "country", and carried no schema version.
func UpgradeDocument(doc Document) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	if _, ok := out["country"]; !ok {
		if state, ok := out["state"]; ok {
			out["country"] = state
			delete(out, "state")
		}
	}
	if _, ok := out["schemaVersion"]; !ok {
		out["schemaVersion"] = 0
	}
	return out
}

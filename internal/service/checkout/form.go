package checkout

import (
	"fmt"

	"monsavonvert/internal/domain"
	"monsavonvert/internal/validate"
)

// Form field names as the storefront sends them.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldPostalCode = "postalCode"
	FieldCountry    = "country"
)

var requiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldCity,
	FieldPostalCode,
}

// Form holds the customer-information step. Every change re-derives the whole
// error map and the validity flag from scratch; errors are never patched
// incrementally.
type Form struct {
	data   domain.CustomerForm
	errors domain.FieldErrors
	valid  bool
}

func NewForm() *Form {
	f := &Form{
		data: domain.CustomerForm{Country: "France"},
	}
	f.revalidate()
	return f
}

// SetField stores a text field after stripping script fragments, then
// re-validates everything.
func (f *Form) SetField(name, value string) error {
	value = validate.StripScriptTags(value)
	switch name {
	case FieldFirstName:
		f.data.FirstName = value
	case FieldLastName:
		f.data.LastName = value
	case FieldEmail:
		f.data.Email = value
	case FieldPhone:
		f.data.Phone = value
	case FieldAddress:
		f.data.Address = value
	case FieldCity:
		f.data.City = value
	case FieldPostalCode:
		f.data.PostalCode = value
	case FieldCountry:
		if value == "" {
			value = "France"
		}
		f.data.Country = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.revalidate()
	return nil
}

// SetTermsAccepted flips the terms checkbox and re-validates.
func (f *Form) SetTermsAccepted(accepted bool) {
	f.data.TermsAccepted = accepted
	f.revalidate()
}

func (f *Form) Data() domain.CustomerForm {
	return f.data
}

// Errors returns a copy of the per-field format errors.
func (f *Form) Errors() domain.FieldErrors {
	out := make(domain.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Valid reports whether the form can leave the information step.
func (f *Form) Valid() bool {
	return f.valid
}

// revalidate rebuilds the error map and the validity flag from the current
// data. Empty required fields block validity without producing a message.
func (f *Form) revalidate() {
	errs := domain.FieldErrors{}
	setIf := func(field, msg string) {
		if msg != "" {
			errs[field] = msg
		}
	}
	setIf(FieldEmail, validate.Email(f.data.Email))
	setIf(FieldPhone, validate.Phone(f.data.Phone))
	setIf(FieldPostalCode, validate.PostalCode(f.data.PostalCode, f.data.Country))
	setIf(FieldAddress, validate.StreetAddress(f.data.Address))
	f.errors = errs

	filled := true
	for _, field := range requiredFields {
		if f.fieldValue(field) == "" {
			filled = false
			break
		}
	}
	f.valid = filled && len(errs) == 0 && f.data.TermsAccepted
}

func (f *Form) fieldValue(name string) string {
	switch name {
	case FieldFirstName:
		return f.data.FirstName
	case FieldLastName:
		return f.data.LastName
	case FieldEmail:
		return f.data.Email
	case FieldPhone:
		return f.data.Phone
	case FieldAddress:
		return f.data.Address
	case FieldCity:
		return f.data.City
	case FieldPostalCode:
		return f.data.PostalCode
	case FieldCountry:
		return f.data.Country
	default:
		return ""
	}
}

package fields

import "strings"

// CanonicalField maps one canonical key to its known real-world spelling
// variants. Alias order encodes priority: first match wins.
type CanonicalField struct {
	Key     string   `mapstructure:"key" json:"key"`
	Aliases []string `mapstructure:"aliases" json:"aliases"`
}

// Table is the ordered alias table. Table order makes resolution
// deterministic regardless of input map iteration.
type Table []CanonicalField

// DefaultTable returns the built-in alias table.
func DefaultTable() Table {
	return Table{
		{Key: "full_name", Aliases: []string{"name", "fullname", "full_name", "fullName", "fullName1", "applicant_name", "name_full"}},
		{Key: "first_name", Aliases: []string{"firstname", "first_name", "firstName", "fname", "given_name"}},
		{Key: "last_name", Aliases: []string{"lastname", "last_name", "lastName", "lname", "surname", "family_name"}},
		{Key: "email", Aliases: []string{"email", "email_address", "emailAddress", "e_mail", "e-mail", "mail"}},
		{Key: "phone", Aliases: []string{"phone", "phone_number", "phoneNumber", "telephone", "tel", "mobile", "cell"}},
		{Key: "address", Aliases: []string{"address", "street_address", "streetAddress", "street", "address_line_1", "address1"}},
		{Key: "address_line_2", Aliases: []string{"address_line_2", "address2", "address_line2", "apt", "apartment", "unit"}},
		{Key: "city", Aliases: []string{"city", "town"}},
		{Key: "state", Aliases: []string{"state", "province", "region"}},
		{Key: "zip", Aliases: []string{"zip", "zip_code", "zipCode", "postal_code", "postalCode", "postcode"}},
		{Key: "country", Aliases: []string{"country", "nation"}},
		{Key: "date_of_birth", Aliases: []string{"dob", "date_of_birth", "dateOfBirth", "birth_date", "birthdate"}},
		{Key: "ssn", Aliases: []string{"ssn", "social_security_number", "socialSecurityNumber", "tax_id"}},
	}
}

// MapFields maps PDF-native field names to canonical keys for the canonical
// keys listed in dataKeys. Matching is case-folded exact alias equality; a
// canonical key with no alias match contributes nothing.
func (t Table) MapFields(dataKeys []string, pdfFieldNames []string) map[string]string {
	present := make(map[string]bool, len(dataKeys))
	for _, k := range dataKeys {
		present[k] = true
	}

	folded := make(map[string]string, len(pdfFieldNames))
	for _, name := range pdfFieldNames {
		folded[strings.ToLower(name)] = name
	}

	result := make(map[string]string)
	for _, field := range t {
		if !present[field.Key] {
			continue
		}
		for _, alias := range field.Aliases {
			if pdfName, ok := folded[strings.ToLower(alias)]; ok {
				result[pdfName] = field.Key
				break
			}
		}
	}
	return result
}

// Resolve assigns canonical profile values to PDF-native field names.
func (t Table) Resolve(data map[string]any, pdfFieldNames []string) map[string]any {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}

	result := make(map[string]any)
	for pdfName, canonicalKey := range t.MapFields(keys, pdfFieldNames) {
		result[pdfName] = data[canonicalKey]
	}
	return result
}

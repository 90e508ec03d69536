package tools

import "strings"

// SpaceDelimitedFields lists record fields whose string value encodes multiple
// tokens separated by spaces.
var SpaceDelimitedFields = []string{
	"region_of_origin",
}

// CommaDelimitedFields lists record fields whose string value encodes multiple
// tokens separated by commas.
var CommaDelimitedFields = []string{
	"company_codes",
	"subject_codes",
	"region_codes",
	"industry_codes",
	"person_codes",
	"currency_codes",
	"market_index_codes",
}

// MultivalueToList splits a delimited string into its non-empty tokens. Empty
// input yields an empty, non-nil slice.
func MultivalueToList(value, separator string) []string {
	tokens := []string{}
	if value == "" {
		return tokens
	}
	for _, token := range strings.Split(value, separator) {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// FormatMultivalues converts, in place, every multivalue field present in
// record from its delimited string form into a token list.
func FormatMultivalues(record map[string]interface{}) {
	splitFields(record, SpaceDelimitedFields, " ")
	splitFields(record, CommaDelimitedFields, ",")
}

func splitFields(record map[string]interface{}, fields []string, separator string) {
	for _, field := range fields {
		raw, ok := record[field]
		if !ok {
			continue
		}
		if value, ok := raw.(string); ok {
			record[field] = MultivalueToList(value, separator)
		}
	}
}

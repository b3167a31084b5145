package airtable

import "strings"

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EqualsFormula builds {field} = "value" with value quoted safely.
func EqualsFormula(field, value string) string {
	return "{" + field + `} = "` + formulaEscaper.Replace(value) + `"`
}

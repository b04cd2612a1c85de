package instagram

import (
	"encoding/json"
	"net/url"
)

// BuildQueryPayload builds the x-www-form-urlencoded body for the GraphQL
// shortcode query. Pure; encoding a plain string map cannot fail.
func BuildQueryPayload(shortcode string, docID string) string {
	variables, _ := json.Marshal(map[string]string{"shortcode": shortcode})
	return "variables=" + url.QueryEscape(string(variables)) + "&doc_id=" + docID
}

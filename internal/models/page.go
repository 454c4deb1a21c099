package models

// PageSize is the number of ads requested per page.
const PageSize = 10

// Page is one fetched page of results for a query.
type Page struct {
	Number  int  `json:"pageNumber"`
	Ads     []Ad `json:"ads"`
	HasMore bool `json:"hasMore"`
}

// Empty reports a well-formed page with no ads.
func (p Page) Empty() bool {
	return len(p.Ads) == 0
}

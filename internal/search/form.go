package search

import (
	"errors"
	"strings"

	"github.com/jimezsa/adscli/internal/models"
)

var (
	ErrMissingCountry = errors.New("no country selected")
	ErrUnknownCountry = errors.New("no countries found")
	// ErrIncompleteForm carries the message shown under the search box.
	ErrIncompleteForm = errors.New("Please enter both a search phrase and a country.")
)

// Form holds what the user typed on the search screen.
type Form struct {
	Phrase  string
	Country string
}

// Ready reports whether the search button would be enabled.
func (f Form) Ready() bool {
	return strings.TrimSpace(f.Phrase) != "" && strings.TrimSpace(f.Country) != ""
}

// Submit validates the form and builds the query handed to the results
// screen.
func (f Form) Submit() (models.Query, error) {
	if !f.Ready() {
		return models.Query{}, ErrIncompleteForm
	}
	country, err := ResolveCountry(f.Country)
	if err != nil {
		return models.Query{}, err
	}
	q, err := models.NewQuery(f.Phrase, country)
	if err != nil {
		return models.Query{}, ErrIncompleteForm
	}
	return q, nil
}

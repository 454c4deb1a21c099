package models

import (
	"errors"
	"strings"
)

var ErrIncompleteQuery = errors.New("search phrase and country are required")

// Query identifies a search: the phrase typed by the user and the country
// picked from the list.
type Query struct {
	Phrase  string
	Country string
}

// NewQuery trims both fields and rejects empty values.
func NewQuery(phrase, country string) (Query, error) {
	q := Query{
		Phrase:  strings.TrimSpace(phrase),
		Country: strings.TrimSpace(country),
	}
	if !q.Valid() {
		return Query{}, ErrIncompleteQuery
	}
	return q, nil
}

func (q Query) Valid() bool {
	return strings.TrimSpace(q.Phrase) != "" && strings.TrimSpace(q.Country) != ""
}

// Key returns the cache key for the query. The separator cannot appear in
// terminal input.
func (q Query) Key() string {
	return q.Phrase + "\x00" + q.Country
}

func (q Query) String() string {
	return q.Phrase + " (" + q.Country + ")"
}

package search

import (
	"fmt"
	"strings"
)

// Countries is the static list offered by the country picker. Names match
// what the ad library accepts in its country dropdown.
var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Argentina",
	"Armenia", "Australia", "Austria", "Azerbaijan", "Bahamas", "Bahrain",
	"Bangladesh", "Barbados", "Belarus", "Belgium", "Belize", "Benin",
	"Bhutan", "Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil",
	"Brunei", "Bulgaria", "Burkina Faso", "Burundi", "Cambodia", "Cameroon",
	"Canada", "Cape Verde", "Central African Republic", "Chad", "Chile",
	"China", "Colombia", "Comoros", "Congo", "Costa Rica", "Croatia", "Cuba",
	"Cyprus", "Czech Republic", "Denmark", "Djibouti", "Dominica",
	"Dominican Republic", "Ecuador", "Egypt", "El Salvador",
	"Equatorial Guinea", "Eritrea", "Estonia", "Eswatini", "Ethiopia", "Fiji",
	"Finland", "France", "Gabon", "Gambia", "Georgia", "Germany", "Ghana",
	"Greece", "Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana",
	"Haiti", "Honduras", "Hong Kong", "Hungary", "Iceland", "India",
	"Indonesia", "Iran", "Iraq", "Ireland", "Israel", "Italy", "Ivory Coast",
	"Jamaica", "Japan", "Jordan", "Kazakhstan", "Kenya", "Kiribati", "Kosovo",
	"Kuwait", "Kyrgyzstan", "Laos", "Latvia", "Lebanon", "Lesotho", "Liberia",
	"Libya", "Liechtenstein", "Lithuania", "Luxembourg", "Madagascar",
	"Malawi", "Malaysia", "Maldives", "Mali", "Malta", "Marshall Islands",
	"Mauritania", "Mauritius", "Mexico", "Micronesia", "Moldova", "Monaco",
	"Mongolia", "Montenegro", "Morocco", "Mozambique", "Myanmar", "Namibia",
	"Nauru", "Nepal", "Netherlands", "New Zealand", "Nicaragua", "Niger",
	"Nigeria", "North Macedonia", "Norway", "Oman", "Pakistan", "Palau",
	"Panama", "Papua New Guinea", "Paraguay", "Peru", "Philippines", "Poland",
	"Portugal", "Qatar", "Romania", "Russia", "Rwanda",
	"Saint Kitts and Nevis", "Saint Lucia",
	"Saint Vincent and the Grenadines", "Samoa", "San Marino",
	"Sao Tome and Principe", "Saudi Arabia", "Senegal", "Serbia",
	"Seychelles", "Sierra Leone", "Singapore", "Slovakia", "Slovenia",
	"Solomon Islands", "Somalia", "South Africa", "South Korea",
	"South Sudan", "Spain", "Sri Lanka", "Sudan", "Suriname", "Sweden",
	"Switzerland", "Syria", "Taiwan", "Tajikistan", "Tanzania", "Thailand",
	"Timor-Leste", "Togo", "Tonga", "Trinidad and Tobago", "Tunisia",
	"Turkey", "Turkmenistan", "Tuvalu", "Uganda", "Ukraine",
	"United Arab Emirates", "United Kingdom", "USA", "Uruguay", "Uzbekistan",
	"Vanuatu", "Vatican City", "Venezuela", "Vietnam", "Yemen", "Zambia",
	"Zimbabwe",
}

// FilterCountries returns the countries whose name contains term, ignoring
// case. An empty term returns the full list.
func FilterCountries(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]string, 0, len(Countries))
	for _, country := range Countries {
		if term == "" || strings.Contains(strings.ToLower(country), term) {
			out = append(out, country)
		}
	}
	return out
}

// AmbiguousCountryError is returned when input matches several countries.
type AmbiguousCountryError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguousCountryError) Error() string {
	const maxShown = 8
	shown := e.Candidates
	suffix := ""
	if len(shown) > maxShown {
		shown = shown[:maxShown]
		suffix = fmt.Sprintf(", ... (%d more)", len(e.Candidates)-maxShown)
	}
	return fmt.Sprintf("country %q is ambiguous: %s%s", e.Input, strings.Join(shown, ", "), suffix)
}

// ResolveCountry picks a country from free-form input: an exact match
// (ignoring case) wins, otherwise the filter must leave exactly one entry.
func ResolveCountry(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrMissingCountry
	}
	for _, country := range Countries {
		if strings.EqualFold(country, input) {
			return country, nil
		}
	}
	matches := FilterCountries(input)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, input)
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousCountryError{Input: input, Candidates: matches}
	}
}

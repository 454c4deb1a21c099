package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/adscli/internal/export"
	"github.com/jimezsa/adscli/internal/models"
	"github.com/jimezsa/adscli/internal/results"
	"github.com/jimezsa/adscli/internal/search"
	"github.com/jimezsa/adscli/internal/theme"
)

type BrowseCmd struct {
	Phrase  string `help:"Search phrase; with --country skips the search prompt."`
	Country string `help:"Country; with --phrase skips the search prompt."`
	Links   string `help:"Link display: short or full." enum:"short,full" default:"short"`
	Proxies string `help:"Comma-separated proxy URLs." env:"ADSCLI_PROXIES"`
}

func (b *BrowseCmd) Run(ctx *Context) error {
	fetcher, err := ctx.fetcher(b.Proxies)
	if err != nil {
		return err
	}
	session := newBrowseSession(ctx, results.NewController(fetcher, ctx.Logger))
	session.links = b.Links
	return session.run(context.Background(), b.Phrase, b.Country)
}

// handoff is what the search screen passes to the results screen. It lives
// in memory only.
type handoff struct {
	Phrase    string
	Country   string
	ResetPage bool
}

type screenAction int

const (
	actionSearch screenAction = iota
	actionQuit
)

type browseSession struct {
	ctx           *Context
	in            *bufio.Scanner
	controller    *results.Controller
	redirectDelay time.Duration
	sleep         func(context.Context, time.Duration) error
	links         string
}

func newBrowseSession(ctx *Context, controller *results.Controller) *browseSession {
	return &browseSession{
		ctx:           ctx,
		in:            bufio.NewScanner(ctx.In),
		controller:    controller,
		redirectDelay: ctx.Config.RedirectDelay(),
		sleep:         sleepContext,
		links:         string(export.LinkStyleShort),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *browseSession) run(ctx context.Context, phrase, country string) error {
	var pending *handoff
	if strings.TrimSpace(phrase) != "" || strings.TrimSpace(country) != "" {
		h := handoff{Phrase: phrase, Country: country, ResetPage: true}
		if strings.TrimSpace(phrase) != "" && strings.TrimSpace(country) != "" {
			q, err := search.Form{Phrase: phrase, Country: country}.Submit()
			if err != nil {
				s.ctx.UI.Errorf("%v", err)
				h = handoff{}
			} else {
				h = handoff{Phrase: q.Phrase, Country: q.Country, ResetPage: true}
			}
		}
		if h.ResetPage {
			pending = &h
		}
	}

	for {
		if pending == nil {
			h, ok := s.searchScreen()
			if !ok {
				return nil
			}
			pending = &h
		}

		action, err := s.resultsScreen(ctx, *pending)
		pending = nil
		if err != nil {
			return err
		}
		if action == actionQuit {
			return nil
		}
	}
}

// searchScreen collects a phrase and a country. It returns false when input
// ends or the user quits.
func (s *browseSession) searchScreen() (handoff, bool) {
	s.ctx.UI.Headingf("Facebook Ads Scraper")
	fmt.Fprintln(s.ctx.Out, s.ctx.UI.Muted("Search and analyze Facebook ads in real time. Commands: /theme, /quit"))

	for {
		phrase, ok := s.prompt("Search phrase: ")
		if !ok {
			return handoff{}, false
		}
		switch strings.ToLower(phrase) {
		case "/quit", "/q":
			return handoff{}, false
		case "/theme", "/t":
			s.toggleTheme()
			continue
		}

		country, ok := s.promptCountry()
		if !ok {
			return handoff{}, false
		}

		q, err := search.Form{Phrase: phrase, Country: country}.Submit()
		if err != nil {
			s.ctx.UI.Errorf("%v", err)
			continue
		}
		return handoff{Phrase: q.Phrase, Country: q.Country, ResetPage: true}, true
	}
}

// promptCountry narrows the country list until one entry is left.
func (s *browseSession) promptCountry() (string, bool) {
	fallback := strings.TrimSpace(s.ctx.Config.DefaultCountry)
	label := "Country: "
	if fallback != "" {
		label = fmt.Sprintf("Country [%s]: ", fallback)
	}

	for {
		input, ok := s.prompt(label)
		if !ok {
			return "", false
		}
		if input == "" {
			return fallback, true
		}

		country, err := search.ResolveCountry(input)
		if err == nil {
			return country, true
		}

		var ambiguous *search.AmbiguousCountryError
		switch {
		case errors.As(err, &ambiguous):
			s.ctx.UI.Warnf("Matching countries: %s", strings.Join(ambiguous.Candidates, ", "))
		case errors.Is(err, search.ErrUnknownCountry):
			s.ctx.UI.Warnf("No countries found")
		default:
			s.ctx.UI.Warnf("%v", err)
		}
	}
}

func (s *browseSession) resultsScreen(ctx context.Context, h handoff) (screenAction, error) {
	q := models.Query{Phrase: strings.TrimSpace(h.Phrase), Country: strings.TrimSpace(h.Country)}
	if err := s.controller.Start(q); err != nil {
		s.ctx.UI.Errorf("%s", results.MessageMissingQuery)
		if err := s.sleep(ctx, s.redirectDelay); err != nil {
			return actionQuit, err
		}
		return actionSearch, nil
	}

	needsLoad := true
	for {
		if needsLoad {
			stop := startIndicator(s.ctx, "Loading ads...")
			view, err := s.controller.Load(ctx)
			stop()
			if err != nil && !errors.Is(err, results.ErrStale) {
				s.ctx.Logger.Debug().Err(err).Int("page", view.Page).Msg("page load failed")
			}
			needsLoad = false
		}

		view := s.controller.View()
		if err := s.render(view); err != nil {
			return actionQuit, err
		}

		input, ok := s.prompt("> ")
		if !ok {
			return actionQuit, nil
		}

		switch strings.ToLower(input) {
		case "n", "next":
			if s.controller.Next() {
				needsLoad = true
			} else {
				s.ctx.UI.Warnf("No more pages.")
			}
		case "p", "prev", "previous":
			if s.controller.Previous() {
				needsLoad = true
			} else {
				s.ctx.UI.Warnf("Already on the first page.")
			}
		case "r", "retry":
			needsLoad = true
		case "t", "theme":
			s.toggleTheme()
		case "b", "back":
			return actionSearch, nil
		case "q", "quit":
			return actionQuit, nil
		case "":
		default:
			s.ctx.UI.Warnf("Unknown command %q", input)
		}
	}
}

func (s *browseSession) render(view results.View) error {
	s.ctx.UI.Headingf("Ads Results: %s, page %d", view.Query, view.Page)

	switch view.Status {
	case results.StatusEmpty:
		s.ctx.UI.Warnf("No Ads Found: %s", view.Message)
	case results.StatusError:
		s.ctx.UI.Errorf("%s", view.Message)
		if view.Err != nil && s.ctx.Verbose {
			s.ctx.UI.Errorf("  %v", view.Err)
		}
	}

	if len(view.Ads) > 0 {
		opts := writeOptions(s.ctx, s.links, isTTY(s.ctx.Out))
		if err := export.WriteAds(s.ctx.Out, view.Ads, export.FormatTable, opts); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(s.ctx.Out, s.footer(view))
	return err
}

func (s *browseSession) footer(view results.View) string {
	control := func(enabled bool, text string) string {
		if enabled {
			return text
		}
		return s.ctx.UI.Muted(text + " (disabled)")
	}

	parts := []string{
		control(view.CanPrevious(), "[p] Previous"),
		control(view.CanNext(), "[n] Next"),
	}
	if view.Status == results.StatusError {
		parts = append(parts, "[r] Retry")
	}
	parts = append(parts, "[t] "+s.ctx.Theme.Label(), "[b] Back", "[q] Quit")
	return strings.Join(parts, "  ")
}

func (s *browseSession) toggleTheme() {
	store := s.ctx.ThemeStore
	if store == nil {
		store = &theme.MemoryStore{Value: s.ctx.Theme}
	}
	next, err := theme.Toggle(store, s.ctx.Theme)
	if err != nil {
		s.ctx.UI.Errorf("toggle theme: %v", err)
		return
	}
	s.ctx.setTheme(next)
	s.ctx.UI.Successf("Theme: %s", next)
}

func (s *browseSession) prompt(label string) (string, bool) {
	fmt.Fprint(s.ctx.Out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.ctx.Out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

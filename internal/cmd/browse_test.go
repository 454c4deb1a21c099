package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/adscli/internal/results"
	"github.com/jimezsa/adscli/internal/search"
	"github.com/jimezsa/adscli/internal/theme"
	"github.com/rs/zerolog"
)

func newTestSession(env testEnv, fetcher results.Fetcher) (*browseSession, *[]time.Duration) {
	session := newBrowseSession(env.ctx, results.NewController(fetcher, zerolog.Nop()))
	var slept []time.Duration
	session.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return session, &slept
}

func TestBrowseWalkthroughFetchesEachPageOnce(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.set(1, true, adOne)
	fetcher.set(2, false, adTwo)

	env := newTestEnv(fetcher, "shoes\nUSA\nn\np\nn\nq\n")
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "", ""); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := env.out.String()
	for _, want := range []string{
		"Facebook Ads Scraper",
		"Ads Results: shoes (USA), page 1",
		"Ads Results: shoes (USA), page 2",
		"Runners",
		"Trail",
		"[n] Next (disabled)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if got := fetcher.callsFor(1); got != 1 {
		t.Fatalf("page 1 fetched %d times, want 1", got)
	}
	if got := fetcher.callsFor(2); got != 1 {
		t.Fatalf("page 2 fetched %d times, want 1", got)
	}
}

func TestBrowseFirstPageDisablesPrevious(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.set(1, false, adOne)

	env := newTestEnv(fetcher, "p\nq\n")
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "shoes", "USA"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.out.String(), "[p] Previous (disabled)") {
		t.Fatalf("previous control should be disabled:\n%s", env.out.String())
	}
	if !strings.Contains(env.errOut.String(), "Already on the first page.") {
		t.Fatalf("missing first page warning: %q", env.errOut.String())
	}
	if strings.Contains(env.out.String(), "Facebook Ads Scraper") {
		t.Fatalf("flags should skip the search screen")
	}
}

func TestBrowseEmptyResultsShowNoAdsMessage(t *testing.T) {
	fetcher := newStubFetcher()

	env := newTestEnv(fetcher, "q\n")
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "zzqx", "India"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.errOut.String(), results.MessageNoAds) {
		t.Fatalf("missing no-ads message: %q", env.errOut.String())
	}
}

func TestBrowseMissingParamsRedirectsToSearch(t *testing.T) {
	fetcher := newStubFetcher()

	env := newTestEnv(fetcher, "")
	session, slept := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "shoes", ""); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.errOut.String(), results.MessageMissingQuery) {
		t.Fatalf("missing redirect message: %q", env.errOut.String())
	}
	if len(*slept) != 1 || (*slept)[0] != 2*time.Second {
		t.Fatalf("slept = %v, want [2s]", *slept)
	}
	if !strings.Contains(env.out.String(), "Facebook Ads Scraper") {
		t.Fatalf("expected the search screen after the redirect")
	}
	if got := fetcher.callsFor(1); got != 0 {
		t.Fatalf("fetched %d times without a query", got)
	}
}

func TestBrowseRetryAfterTransportError(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.set(1, false, adOne)
	fetcher.failures[1] = 1

	env := newTestEnv(fetcher, "r\nq\n")
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "shoes", "USA"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.errOut.String(), results.MessageFetchFailed) {
		t.Fatalf("missing fetch error: %q", env.errOut.String())
	}
	if !strings.Contains(env.out.String(), "[r] Retry") {
		t.Fatalf("retry control missing:\n%s", env.out.String())
	}
	if !strings.Contains(env.out.String(), "Runners") {
		t.Fatalf("retry did not render the ads:\n%s", env.out.String())
	}
	if got := fetcher.callsFor(1); got != 2 {
		t.Fatalf("page 1 fetched %d times, want 2", got)
	}
}

func TestBrowseCountryPromptNarrowsAmbiguousInput(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.set(1, false, adOne)

	env := newTestEnv(fetcher, "shoes\nxyzzy\nGuin\nGuinea\nq\n")
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "", ""); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	errOut := env.errOut.String()
	if !strings.Contains(errOut, "No countries found") {
		t.Fatalf("missing unknown country warning: %q", errOut)
	}
	if !strings.Contains(errOut, "Matching countries:") {
		t.Fatalf("missing candidates: %q", errOut)
	}
	if !strings.Contains(env.out.String(), "Ads Results: shoes (Guinea), page 1") {
		t.Fatalf("unexpected output:\n%s", env.out.String())
	}
}

func TestBrowseIncompleteFormStaysOnSearch(t *testing.T) {
	env := newTestEnv(newStubFetcher(), "\nUSA\n")
	session, _ := newTestSession(env, newStubFetcher())

	if err := session.run(context.Background(), "", ""); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(env.errOut.String(), search.ErrIncompleteForm.Error()) {
		t.Fatalf("missing form error: %q", env.errOut.String())
	}
}

func TestBrowseThemeToggleUpdatesFooter(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.set(1, false, adOne)

	env := newTestEnv(fetcher, "t\nq\n")
	store := &theme.MemoryStore{Value: theme.Light}
	env.ctx.ThemeStore = store
	session, _ := newTestSession(env, fetcher)

	if err := session.run(context.Background(), "shoes", "USA"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if store.Value != theme.Dark || env.ctx.Theme != theme.Dark {
		t.Fatalf("theme = %q/%q, want dark", store.Value, env.ctx.Theme)
	}
	out := env.out.String()
	if !strings.Contains(out, "[t] Dark Theme") || !strings.Contains(out, "[t] Light Theme") {
		t.Fatalf("footer labels did not flip:\n%s", out)
	}
}

package results

import "github.com/jimezsa/adscli/internal/models"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// View is the displayable state of the results screen.
type View struct {
	Query   models.Query
	Page    int
	Ads     []models.Ad
	HasMore bool
	Loading bool
	Status  Status
	// Message is the user-facing text for the empty and error states.
	Message string
	Err     error
}

func (v View) CanNext() bool {
	return v.HasMore && !v.Loading
}

func (v View) CanPrevious() bool {
	return v.Page > 1 && !v.Loading
}

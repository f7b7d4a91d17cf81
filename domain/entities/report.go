package entities

import "time"

// RunStatus represents the status of a scenario run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusPassed    RunStatus = "passed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunReport records one scenario execution
type RunReport struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         RunStatus      `json:"status"`
	Browser        BrowserName    `json:"browser,omitempty"`
	BrowserVersion string         `json:"browser_version,omitempty"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at,omitempty"`
	Results        []ActionResult `json:"results"`
}

// Failed - returns the first failed result, if any
func (r *RunReport) Failed() (ActionResult, bool) {
	for _, res := range r.Results {
		if !res.Success {
			return res, true
		}
	}
	return ActionResult{}, false
}

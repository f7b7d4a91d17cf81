package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

// Runner executes scenarios step by step against one page
type Runner struct {
	page     *pages.BasePage
	store    interfaces.ReportStore
	redactor interfaces.Redactor
	logger   *logrus.Logger

	browser entities.BrowserName
	version string
	report  *entities.RunReport
}

// Option configures a Runner
type Option func(*Runner)

// WithStore - saves every report after the run ends
func WithStore(store interfaces.ReportStore) Option {
	return func(r *Runner) { r.store = store }
}

// WithBrowser - records the driven browser in reports
func WithBrowser(name entities.BrowserName, version string) Option {
	return func(r *Runner) {
		r.browser = name
		r.version = version
	}
}

// NewRunner - creates a runner; typed text is masked with redactor before it
// is logged or recorded
func NewRunner(page *pages.BasePage, redactor interfaces.Redactor, logger *logrus.Logger, opts ...Option) *Runner {
	r := &Runner{
		page:     page,
		redactor: redactor,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run - executes the steps in order, stopping at the first failure or when ctx
// is done. The report is returned and saved in every case.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*entities.RunReport, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	r.report = &entities.RunReport{
		ID:             uuid.NewString(),
		Name:           sc.Name,
		Status:         entities.RunStatusRunning,
		Browser:        r.browser,
		BrowserVersion: r.version,
		StartedAt:      time.Now(),
		Results:        make([]entities.ActionResult, 0, len(sc.Steps)),
	}
	r.logger.Infof("Running scenario %q (%d steps)", sc.Name, len(sc.Steps))

	runErr := r.run(ctx, sc.Steps)

	r.report.FinishedAt = time.Now()
	switch {
	case runErr == nil:
		r.report.Status = entities.RunStatusPassed
	case ctx.Err() != nil:
		r.report.Status = entities.RunStatusCancelled
	default:
		r.report.Status = entities.RunStatusFailed
	}
	r.logger.Infof("Scenario %q %s", sc.Name, r.report.Status)

	if r.store != nil {
		if err := r.store.SaveReport(r.report); err != nil {
			r.logger.Warnf("Failed to save report %s: %v", r.report.ID, err)
		}
	}
	return r.report, runErr
}

func (r *Runner) run(ctx context.Context, steps []entities.Action) error {
	for i, step := range steps {
		select {
		case <-ctx.Done():
			return fmt.Errorf("scenario canceled: %w", ctx.Err())
		default:
		}

		recorded := r.mask(step)
		r.logger.Infof("Step %d/%d: %s", i+1, len(steps), describe(recorded))

		start := time.Now()
		msg, err := r.execute(ctx, step)
		res := entities.ActionResult{
			Action:   recorded,
			Success:  err == nil,
			Message:  msg,
			Duration: time.Since(start),
		}
		if u, uerr := r.page.CurrentURL(); uerr == nil {
			res.URL = u
		}
		if err != nil {
			res.Error = err.Error()
		}
		r.report.Results = append(r.report.Results, res)

		if err != nil {
			r.logger.Warnf("Step %d failed: %v", i+1, err)
			return fmt.Errorf("step %d (%s): %w", i+1, step.Type, err)
		}
	}
	return nil
}

// Report - returns the report of the last run, nil before the first
func (r *Runner) Report() *entities.RunReport {
	return r.report
}

// mask - hides typed text aimed at a sensitive field
func (r *Runner) mask(a entities.Action) entities.Action {
	if a.Type != entities.ActionTypeText && a.Type != entities.ActionSlowType {
		return a
	}
	key := a.Description
	if a.Locator != nil {
		key += " " + a.Locator.Selector
	}
	a.Text = r.redactor.Mask(key, a.Text)
	return a
}

func describe(a entities.Action) string {
	if a.Description != "" {
		return a.Description
	}
	parts := []string{string(a.Type)}
	if a.Locator != nil {
		parts = append(parts, a.Locator.String())
	}
	if a.URL != "" {
		parts = append(parts, a.URL)
	}
	if a.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", a.Text))
	}
	return strings.Join(parts, " ")
}

func (r *Runner) execute(ctx context.Context, a entities.Action) (string, error) {
	p := r.page
	timeout := a.Timeout(p.Timeout())
	var loc entities.Locator
	if a.Locator != nil {
		loc = *a.Locator
	}

	switch a.Type {
	case entities.ActionNavigate:
		return "navigated to " + a.URL, p.Navigate(a.URL)

	case entities.ActionClick:
		return "clicked " + loc.String(), p.Click(loc)

	case entities.ActionClickAndVanish:
		return "clicked and waited out " + loc.String(), p.ClickAndWaitForInvisibility(loc, timeout)

	case entities.ActionTypeText:
		return "typed into " + loc.String(), p.EnterText(loc, a.Text, true)

	case entities.ActionSlowType:
		return "slow-typed into " + loc.String(), p.SlowType(loc, a.Text, 0)

	case entities.ActionHover:
		return "hovered " + loc.String(), p.Hover(loc, 0)

	case entities.ActionSelectText:
		return fmt.Sprintf("selected %q", a.Text), p.SelectByVisibleText(loc, a.Text)

	case entities.ActionSelectPartial:
		return fmt.Sprintf("selected option containing %q", a.Text), p.SelectByPartialText(loc, a.Text)

	case entities.ActionSelectValue:
		return fmt.Sprintf("selected value %q", a.Value), p.SelectByValue(loc, a.Value)

	case entities.ActionPressEnter:
		return "pressed Enter", p.PressEnter(a.Locator)

	case entities.ActionWaitVisible:
		return loc.String() + " visible", p.WaitForVisibility(loc, timeout)

	case entities.ActionWaitInvisible, entities.ActionAssertHidden:
		return loc.String() + " hidden", p.WaitForInvisibility(loc, timeout)

	case entities.ActionAssertVisible:
		ok, err := p.IsVisible(loc, timeout)
		if err == nil && !ok {
			err = fmt.Errorf("%s is not visible after %s", loc, timeout)
		}
		return loc.String() + " visible", err

	case entities.ActionAssertAttribute:
		got, err := p.Attribute(loc, a.Attribute)
		if err == nil && got != a.Value {
			err = fmt.Errorf("attribute %q of %s is %q, want %q", a.Attribute, loc, got, a.Value)
		}
		return fmt.Sprintf("attribute %q of %s matched", a.Attribute, loc), err

	case entities.ActionAssertText:
		return fmt.Sprintf("text %q present", a.Text), p.WaitForText(loc, a.Text, timeout)

	case entities.ActionSwitchWindow:
		var ref entities.WindowRef = entities.WindowPosition(a.WindowPosition)
		if a.WindowHandle != "" {
			ref = entities.WindowHandle(a.WindowHandle)
		}
		return "switched to " + ref.String(), p.SwitchWindow(ref)

	case entities.ActionSwitchFrame:
		var ref entities.FrameRef = entities.FrameIndex(a.FrameIndex)
		switch {
		case a.FrameID != "":
			ref = entities.FrameID(a.FrameID)
		case a.Locator != nil:
			ref = entities.FrameLocator{Locator: loc}
		}
		return "switched to " + ref.String(), p.SwitchFrame(ref, timeout)

	case entities.ActionDefaultContent:
		return "switched to top-level document", p.DefaultContent()

	case entities.ActionSleep:
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("sleep canceled: %w", ctx.Err())
		case <-time.After(timeout):
		}
		return fmt.Sprintf("slept %s", timeout), nil

	default:
		return "", errs.InvalidArgumentf("action", "unknown action type %q", a.Type)
	}
}

package pages

import (
	"time"

	"ui_automation/domain/entities"
)

// DashboardTitle is the navigation entry shown once signed in
var DashboardTitle = entities.XPath("//a[text()='Content Manager']")

// DashboardPage is the landing page after sign-in
type DashboardPage struct {
	*BasePage
}

// NewDashboardPage - wraps base with the dashboard locators
func NewDashboardPage(base *BasePage) *DashboardPage {
	return &DashboardPage{BasePage: base}
}

// IsLoaded - reports whether the dashboard title shows up within timeout
func (p *DashboardPage) IsLoaded(timeout time.Duration) (bool, error) {
	return p.IsVisible(DashboardTitle, timeout)
}

package pages

import (
	"fmt"
	"time"

	"ui_automation/domain/entities"
)

var (
	LoginButton   = entities.XPath("//button[normalize-space()='Sign in']")
	EmailField    = entities.XPath("//input[contains(@class, 'mantine-TextInput-input')]")
	PasswordField = entities.XPath("//input[contains(@class, 'mantine-PasswordInput-innerInput')]")
)

// LoginPage is the sign-in form
type LoginPage struct {
	*BasePage
}

// NewLoginPage - wraps base with the sign-in form locators
func NewLoginPage(base *BasePage) *LoginPage {
	return &LoginPage{BasePage: base}
}

// WaitUntilLoaded - waits for the Sign in button
func (p *LoginPage) WaitUntilLoaded(timeout time.Duration) error {
	return p.WaitForVisibility(LoginButton, timeout)
}

// EnterEmail - replaces the email field content and returns what the field now holds
func (p *LoginPage) EnterEmail(email string) (string, error) {
	if err := p.EnterText(EmailField, email, true); err != nil {
		return "", err
	}
	return p.Attribute(EmailField, "value")
}

// EnterPassword - replaces the password field content and returns what the field now holds
func (p *LoginPage) EnterPassword(password string) (string, error) {
	if err := p.EnterText(PasswordField, password, true); err != nil {
		return "", err
	}
	return p.Attribute(PasswordField, "value")
}

// Submit - clicks Sign in and waits for the form to go away
func (p *LoginPage) Submit(timeout time.Duration) error {
	return p.ClickAndWaitForInvisibility(LoginButton, timeout)
}

// Login - fills in the form and submits it. The typed values are read back
// so a field that drops keystrokes fails here rather than at submit.
func (p *LoginPage) Login(email, password string, timeout time.Duration) error {
	if err := p.WaitUntilLoaded(timeout); err != nil {
		return err
	}
	got, err := p.EnterEmail(email)
	if err != nil {
		return err
	}
	if got != email {
		return fmt.Errorf("email field holds %q, typed %q", got, email)
	}
	got, err = p.EnterPassword(password)
	if err != nil {
		return err
	}
	if got != password {
		return fmt.Errorf("password field does not hold the typed password")
	}
	return p.Submit(timeout)
}

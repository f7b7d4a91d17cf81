package entities

import (
	"strings"

	"ui_automation/domain/errs"
)

// BrowserName selects how the driver session is created
type BrowserName string

const (
	BrowserChrome     BrowserName = "chrome"
	BrowserDebugging  BrowserName = "debugging"
	BrowserPlaywright BrowserName = "playwright"
)

// ParseBrowser - validates a browser name given on the command line
func ParseBrowser(name string) (BrowserName, error) {
	switch b := BrowserName(strings.ToLower(strings.TrimSpace(name))); b {
	case BrowserChrome, BrowserDebugging, BrowserPlaywright:
		return b, nil
	case "":
		return BrowserChrome, nil
	default:
		return "", errs.InvalidArgumentf("browser", "unsupported browser %q (want chrome, debugging or playwright)", name)
	}
}

// BrowserOptions describes the session to create
type BrowserOptions struct {
	Name         BrowserName
	Version      string
	URL          string
	Headless     bool
	DebuggerAddr string
	DriverPath   string
	DriverPort   int
	ChromeBinary string
}

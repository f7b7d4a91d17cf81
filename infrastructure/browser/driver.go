// Package browser creates driver sessions and adapts WebDriver and playwright
// to interfaces.Session.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

const (
	// DefaultDriverPort is the port chromedriver listens on
	DefaultDriverPort = 9515
	// DefaultDebuggerAddr is where a Chrome started with --remote-debugging-port listens
	DefaultDebuggerAddr = "localhost:9222"
)

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(explicit string) (string, error) {
	for _, path := range []string{explicit, os.Getenv("BROWSER_DRIVER_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(explicit string) string {
	for _, path := range []string{explicit, os.Getenv("CHROME_BINARY_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// chromeCapabilities - builds the capabilities for a fresh or attached Chrome
func chromeCapabilities(opts entities.BrowserOptions) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "chrome"}
	if opts.Version != "" {
		caps["browserVersion"] = opts.Version
	}

	if opts.Name == entities.BrowserDebugging {
		addr := opts.DebuggerAddr
		if addr == "" {
			addr = DefaultDebuggerAddr
		}
		caps.AddChrome(chrome.Capabilities{DebuggerAddr: addr})
		return caps
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--use-fake-device-for-media-stream",
			"--use-fake-ui-for-media-stream",
			"--disable-dev-shm-usage",
		},
		ExcludeSwitches: []string{"enable-automation"},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if bin := findChromeBinary(opts.ChromeBinary); bin != "" {
		chromeCaps.Path = bin
	}
	caps.AddChrome(chromeCaps)
	return caps
}

// newSeleniumSession - starts chromedriver and opens a WebDriver session
func newSeleniumSession(opts entities.BrowserOptions, logger *logrus.Logger) (*SeleniumSession, error) {
	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	port := opts.DriverPort
	if port == 0 {
		port = DefaultDriverPort
	}
	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	wd, err := selenium.NewRemote(chromeCapabilities(opts), fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}
	return NewSeleniumSession(wd, service, logger), nil
}

// NewSession - creates a session for the selected browser
func NewSession(opts entities.BrowserOptions, logger *logrus.Logger) (interfaces.Session, error) {
	switch opts.Name {
	case entities.BrowserChrome, entities.BrowserDebugging, "":
		if opts.Name == entities.BrowserDebugging {
			logger.Infof("Attaching to Chrome at %s", opts.DebuggerAddr)
		}
		return newSeleniumSession(opts, logger)
	case entities.BrowserPlaywright:
		return NewPlaywrightSession(opts, logger)
	default:
		return nil, errs.InvalidArgumentf("browser", "unsupported browser %q", opts.Name)
	}
}

// BrowserVersion - returns the negotiated browserVersion capability
func BrowserVersion(s interfaces.Session) (string, error) {
	caps, err := s.Capabilities()
	if err != nil {
		return "", fmt.Errorf("failed to read capabilities: %w", err)
	}
	for _, key := range []string{"browserVersion", "version"} {
		if v, ok := caps[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Prepare - maximizes the window, opens url and returns the browser version.
// The session is closed when preparation fails.
func Prepare(s interfaces.Session, url string, logger *logrus.Logger) (string, error) {
	if err := s.MaximizeWindow(); err != nil {
		logger.Warnf("Failed to maximize window: %v", err)
	}
	if url != "" {
		if err := s.Navigate(url); err != nil {
			s.Close()
			return "", fmt.Errorf("failed to open %s: %w", url, err)
		}
	}
	version, err := BrowserVersion(s)
	if err != nil {
		s.Close()
		return "", err
	}
	logger.Infof("Browser version: %s", version)
	return version, nil
}

// Launch - creates and prepares a session in one step
func Launch(opts entities.BrowserOptions, logger *logrus.Logger) (interfaces.Session, string, error) {
	s, err := NewSession(opts, logger)
	if err != nil {
		return nil, "", err
	}
	version, err := Prepare(s, opts.URL, logger)
	if err != nil {
		return nil, "", err
	}
	return s, version, nil
}

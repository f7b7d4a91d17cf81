// Package terminal is the command-line surface: it builds the configuration
// table, the logger and the browser session, then hands them to the pages,
// the scenario runner or the API client.
package terminal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/application/pages"
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/network"
	"ui_automation/infrastructure/security"
)

// LaunchFunc creates a prepared session and reports the browser version
type LaunchFunc func(opts entities.BrowserOptions, logger *logrus.Logger) (interfaces.Session, string, error)

type globalFlags struct {
	url            string
	browser        string
	browserVersion string
	env            string
	configs        []string
	logLevel       string
	headless       bool
	timeout        time.Duration
}

// App holds the state shared by every command
type App struct {
	logger   *logrus.Logger
	config   *config.Table
	redactor *security.Redactor
	out      io.Writer
	flags    globalFlags

	launch      LaunchFunc
	netOpts     []network.Option
	pageOpts    []pages.Option
	browserName entities.BrowserName
}

// NewApp - creates the CLI application writing results to out
func NewApp(out io.Writer) *App {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &App{
		logger:   logger,
		config:   config.NewTable(logger),
		redactor: security.NewRedactor(logger),
		out:      out,
		launch:   browser.Launch,
	}
}

// Logger - returns the application logger
func (a *App) Logger() *logrus.Logger { return a.logger }

// Config - returns the configuration table
func (a *App) Config() *config.Table { return a.config }

// setup - configures logging and loads the configuration table. Command-line
// values are applied as overrides so they win over every file.
func (a *App) setup() error {
	level, err := logrus.ParseLevel(a.flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.flags.logLevel, err)
	}
	a.logger.SetLevel(level)

	sources := a.flags.configs
	if len(sources) == 0 {
		sources = config.DefaultSources
		if a.flags.env != "" {
			envFile := filepath.Join("resources", a.flags.env+".properties")
			sources = append([]string{sources[0], envFile}, sources[1:]...)
		}
	}
	for _, src := range sources {
		a.config.AddSource(src)
	}
	if err := a.config.Load(); err != nil {
		return err
	}

	if a.flags.url != "" {
		a.config.Set(config.KeyURL, a.flags.url)
	}
	if a.flags.browser != "" {
		a.config.Set(config.KeyBrowser, a.flags.browser)
	}
	name, err := entities.ParseBrowser(a.config.GetOr(config.KeyBrowser, string(entities.BrowserChrome)))
	if err != nil {
		return err
	}
	a.browserName = name
	a.logger.Debugf("Configuration loaded from %s", strings.Join(a.config.Sources(), ", "))
	return nil
}

// browserOptions - builds the session request from flags and configuration
func (a *App) browserOptions() entities.BrowserOptions {
	return entities.BrowserOptions{
		Name:         a.browserName,
		Version:      a.flags.browserVersion,
		URL:          a.config.GetOr(config.KeyURL, ""),
		Headless:     a.flags.headless,
		DebuggerAddr: browser.DefaultDebuggerAddr,
		DriverPort:   browser.DefaultDriverPort,
		DriverPath:   a.config.GetOr("browser_driver_path", ""),
		ChromeBinary: a.config.GetOr("chrome_binary_path", ""),
	}
}

// openPage - starts the browser on the configured URL and records the
// negotiated version as browser_version
func (a *App) openPage() (*pages.BasePage, func(), error) {
	opts := a.browserOptions()
	session, version, err := a.launch(opts, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start %s: %w", opts.Name, err)
	}
	a.config.Set(config.KeyBrowserVersion, version)

	pageOpts := append([]pages.Option{
		pages.WithTimeout(a.flags.timeout),
		pages.WithNetwork(a.toggler()),
	}, a.pageOpts...)
	page := pages.NewBasePage(session, a.logger, pageOpts...)

	closeFn := func() {
		if err := session.Close(); err != nil {
			a.logger.Warnf("Failed to close browser: %v", err)
		}
	}
	return page, closeFn, nil
}

func (a *App) toggler() *network.Toggler {
	return network.NewToggler(a.config.GetOr(config.KeyLocalPassword, ""), a.logger, a.netOpts...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

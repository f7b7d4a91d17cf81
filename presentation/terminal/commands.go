package terminal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"ui_automation/application/pages"
	"ui_automation/application/scenario"
	"ui_automation/infrastructure/api"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/generator"
	"ui_automation/infrastructure/storage"
)

// RootCommand - builds the ui_automation command tree
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ui_automation",
		Short:         "Browser UI automation and login API checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.url, "url", "", "application URL, overrides the url key")
	pf.StringVar(&a.flags.browser, "browser", "", "chrome, debugging or playwright")
	pf.StringVar(&a.flags.browserVersion, "browser-version", "", "requested browser version")
	pf.StringVar(&a.flags.env, "env", "dev", "environment; loads resources/<env>.properties when present")
	pf.StringArrayVar(&a.flags.configs, "config", nil, "configuration source, repeatable; later sources win")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "log level")
	pf.BoolVar(&a.flags.headless, "headless", false, "run the browser without a window")
	pf.DurationVar(&a.flags.timeout, "timeout", pages.DefaultTimeout, "default wait timeout")

	root.AddCommand(
		a.loginCommand(),
		a.apiLoginCommand(),
		a.runCommand(),
		a.networkCommand(),
		a.configCommand(),
		a.reportsCommand(),
		a.generateCommand(),
	)
	return root
}

func (a *App) credentials() (string, string, error) {
	email, ok := a.config.Get(config.KeyUserEmail)
	if !ok {
		return "", "", fmt.Errorf("%s is not configured", config.KeyUserEmail)
	}
	password, ok := a.config.Get(config.KeyUserPassword)
	if !ok {
		return "", "", fmt.Errorf("%s is not configured", config.KeyUserPassword)
	}
	return email, password, nil
}

func (a *App) loginCommand() *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in through the UI and check the dashboard loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials()
			if err != nil {
				return err
			}
			page, closeFn, err := a.openPage()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := pages.NewLoginPage(page).Login(email, password, wait); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			loaded, err := pages.NewDashboardPage(page).IsLoaded(wait)
			if err != nil {
				return err
			}
			if !loaded {
				return fmt.Errorf("dashboard did not load within %s", wait)
			}
			a.printf("Signed in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 10*time.Second, "how long each login step may take")
	return cmd
}

func (a *App) apiLoginCommand() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "api-login",
		Short: "Log in through the API and validate the response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials()
			if err != nil {
				return err
			}
			client, err := api.NewAuthClient(a.config.GetOr(config.KeyLoginBaseURL, ""), a.logger)
			if err != nil {
				return err
			}
			schema, err := api.LoadSchema(schemaPath)
			if err != nil {
				return err
			}

			payload := api.CreateAuthPayload(email, password)
			result, err := client.Login(cmd.Context(), payload)
			if err != nil {
				return err
			}
			if err := result.Check(payload); err != nil {
				return err
			}
			if err := schema.Validate(result.Body); err != nil {
				return err
			}
			a.printf("Logged in as %s (%s), token %s\n", result.Response.FullName, result.Response.Role,
				a.redactor.Mask("token", result.Response.Token))
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", api.DefaultLoginSchemaPath, "login response JSON schema")
	return cmd
}

func (a *App) runCommand() *cobra.Command {
	var reportDir string
	cmd := &cobra.Command{
		Use:   "run <steps.json>",
		Short: "Run a scripted scenario and save its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.LoadScenario(args[0])
			if err != nil {
				return err
			}
			store, err := storage.NewReportStore(reportDir)
			if err != nil {
				return err
			}
			page, closeFn, err := a.openPage()
			if err != nil {
				return err
			}
			defer closeFn()

			version := a.config.GetOr(config.KeyBrowserVersion, "")
			runner := scenario.NewRunner(page, a.redactor, a.logger,
				scenario.WithStore(store), scenario.WithBrowser(a.browserName, version))
			report, runErr := runner.Run(cmd.Context(), sc)
			if report != nil {
				for i, res := range report.Results {
					mark := "ok  "
					if !res.Success {
						mark = "FAIL"
					}
					a.printf("%s %2d %s (%s)\n", mark, i+1, res.Message, res.Duration.Round(time.Millisecond))
				}
				a.printf("%s: %s, report %s\n", report.Name, report.Status, report.ID)
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&reportDir, "report-dir", storage.DefaultReportDir(), "where run reports are saved")
	return cmd
}

func (a *App) networkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Turn host networking on or off",
	}
	toggle := func(use, short string, fn func(ctx context.Context) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return fn(cmd.Context())
			},
		}
	}
	cmd.AddCommand(
		toggle("enable", "Bring the network back", func(ctx context.Context) error { return a.toggler().Enable(ctx) }),
		toggle("disable", "Cut the network", func(ctx context.Context) error { return a.toggler().Disable(ctx) }),
	)
	return cmd
}

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration table",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every key with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := a.redactor.RedactMap(a.config.Snapshot())
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				a.printf("%s=%s\n", k, values[k])
			}
			return nil
		},
	})
	return cmd
}

func (a *App) reportsCommand() *cobra.Command {
	var reportDir string
	cmd := &cobra.Command{
		Use:   "reports [id]",
		Short: "List saved run reports, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewReportStore(reportDir)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				ids, err := store.ListReports()
				if err != nil {
					return err
				}
				for _, id := range ids {
					a.printf("%s\n", id)
				}
				return nil
			}
			report, err := store.LoadReport(args[0])
			if err != nil {
				return err
			}
			a.printf("%s %s %s started %s\n", report.ID, report.Name, report.Status, report.StartedAt.Format(time.RFC3339))
			if failed, ok := report.Failed(); ok {
				a.printf("failed at %s: %s\n", failed.Action.Type, failed.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reportDir, "report-dir", storage.DefaultReportDir(), "where run reports are saved")
	return cmd
}

func (a *App) generateCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:       "generate password|id|string",
		Short:     "Print generated test data",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"password", "id", "string"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "password":
				a.printf("%s\n", generator.GeneratePassword(length))
			case "id":
				n := length
				if n <= 0 {
					n = 8
				}
				a.printf("%s\n", generator.CustomID(n))
			case "string":
				a.printf("%s\n", generator.RandomAlphanumeric(length))
			default:
				return fmt.Errorf("unknown generator %q (want password, id or string)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "length of the generated value, 0 for the default")
	return cmd
}

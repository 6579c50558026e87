package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/themizzi/shopflow/internal/cli"
	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/database"
	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/repository"
	"github.com/themizzi/shopflow/internal/scenarios"
	"github.com/themizzi/shopflow/internal/services"
)

var version = "0.1.0"

var scenarioFlag = &cli.StringFlag{
	Name:    "scenario",
	Aliases: []string{"s"},
	Usage:   "only scenarios whose name matches this regular expression",
}

var postgresFlag = &cli.BoolFlag{
	Name:  "postgres",
	Usage: "serve the fixture catalog from PostgreSQL instead of memory",
}

// catalogRepository returns the fixture catalog source. The returned func
// releases the database connection when one was opened.
func catalogRepository(usePostgres bool) (services.CatalogRepository, func(), error) {
	if !usePostgres {
		return repository.NewMemoryCatalogRepository(database.SeedProducts()), func() {}, nil
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	// Run database migrations
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewCatalogRepository(), func() { database.Close() }, nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Play the Product Flow suite in a browser",
		Flags: []cli.Flag{
			scenarioFlag,
			postgresFlag,
			&cli.StringFlag{Name: "base-url", Usage: "site to drive (overrides SHOPFLOW_BASE_URL)"},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser without a window"},
			&cli.StringFlag{Name: "report", Usage: "write an HTML report to this path"},
			&cli.BoolFlag{Name: "install", Usage: "download the browser before running"},
			&cli.BoolFlag{Name: "fixture", Usage: "drive a local fixture storefront instead of the live site"},
		},
		Action: func(c *cli.Context) error {
			browserConfig, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid browser configuration: %w", err)
			}
			runnerConfig, err := config.LoadRunnerConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid runner configuration: %w", err)
			}

			if c.IsSet("headless") {
				browserConfig.Headless = c.Bool("headless")
			}
			if c.IsSet("report") {
				runnerConfig.ReportPath = c.String("report")
			}
			if raw := c.String("base-url"); raw != "" {
				if browserConfig.BaseURL, err = config.ParseBaseURL(raw); err != nil {
					return err
				}
			}

			if c.Bool("fixture") {
				repo, release, err := catalogRepository(c.Bool("postgres"))
				if err != nil {
					return err
				}
				defer release()

				fixture, err := internalcli.StartFixture(config.LoadServerConfig(os.Getenv), repo)
				if err != nil {
					return err
				}
				defer fixture.Close()

				if browserConfig.BaseURL, err = config.ParseBaseURL(fixture.BaseURL); err != nil {
					return err
				}
			}

			if c.Bool("install") {
				if err := driver.Install(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = internalcli.RunScenarios(ctx, internalcli.RunOptions{
				Browser: browserConfig,
				Runner:  *runnerConfig,
				Filter:  c.String("scenario"),
				Pauses:  scenarios.DefaultPauses(),
			})
			return err
		},
	}
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the scenarios a run would play",
		Flags: []cli.Flag{scenarioFlag},
		Action: func(c *cli.Context) error {
			return internalcli.ListScenarios(c.App.Writer, c.String("scenario"))
		},
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve the fixture storefront until interrupted",
		Flags: []cli.Flag{
			postgresFlag,
			&cli.StringFlag{Name: "port", Usage: "port to listen on (overrides PORT)"},
		},
		Action: func(c *cli.Context) error {
			serverConfig := config.LoadServerConfig(os.Getenv)
			if port := c.String("port"); port != "" {
				serverConfig.Port = port
			}

			repo, release, err := catalogRepository(c.Bool("postgres"))
			if err != nil {
				return err
			}
			defer release()

			deps, err := internalcli.BuildServerDependencies(serverConfig, repo)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return internalcli.RunServe(ctx, deps)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the browser build the runner drives",
		Action: func(c *cli.Context) error {
			return driver.Install()
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopflow",
		Usage:   "Shopping-flow browser automation",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ListCommand(),
			FixtureCommand(),
			InstallCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

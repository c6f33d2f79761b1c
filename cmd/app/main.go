package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gpkgadapter "github.com/CHRISCARLON/uk-future-works-model/internal/adapters/db/gpkg"
	httpadapter "github.com/CHRISCARLON/uk-future-works-model/internal/adapters/http"
	"github.com/CHRISCARLON/uk-future-works-model/internal/application"
	"github.com/CHRISCARLON/uk-future-works-model/internal/seed"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const defaultPath = "uk_future_works_example.gpkg"

var log = logrus.New()

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "futureworks",
		Usage: "UK Future Works GeoPackage profile builder and sample data loader",
		Commands: []*cli.Command{
			createCommand(),
			populateCommand(),
			reportCommand(),
			serveCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

// gpkgPath resolves the container path from the optional positional argument.
func gpkgPath(c *cli.Command) string {
	if p := c.Args().First(); p != "" {
		return p
	}
	return defaultPath
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Build an empty profile GeoPackage with all tables and codelists",
		ArgsUsage: "[path]",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := gpkgPath(c)

			set, err := seed.Load(time.Now())
			if err != nil {
				return err
			}

			log.WithField("path", path).Info("creating geopackage")
			db, err := gpkgadapter.Create(ctx, path)
			if err != nil {
				return err
			}
			defer func() { _ = gpkgadapter.Close(db) }()

			service := application.NewProfileService(gpkgadapter.NewProfileRepository(db))
			if err := service.SeedCodelists(ctx, set.Codelists); err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"path":      path,
				"codelists": len(set.Codelists),
			}).Info("geopackage created")
			fmt.Printf("created %s\n", path)
			return nil
		},
	}
}

func populateCommand() *cli.Command {
	return &cli.Command{
		Name:      "populate",
		Usage:     "Load the sample dataset and rebuild the unified reporting table",
		ArgsUsage: "[path]",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := gpkgPath(c)

			db, err := gpkgadapter.OpenExisting(path)
			if err != nil {
				return fmt.Errorf("%w (run the create command first)", err)
			}
			defer func() { _ = gpkgadapter.Close(db) }()

			set, err := seed.Load(time.Now())
			if err != nil {
				return err
			}

			service := application.NewProfileService(gpkgadapter.NewProfileRepository(db))
			log.WithField("path", path).Info("populating sample data")
			result, err := service.PopulateSampleData(ctx, set)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"organisations": result.Organisations,
				"network_links": result.NetworkLinks,
				"unified_rows":  result.UnifiedRows,
			}).Info("population complete")

			report, err := service.Summary(ctx, path)
			if err != nil {
				return err
			}
			printPopulation(result)
			fmt.Println()
			printSummary(report)
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Print the summary report for a populated GeoPackage",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := gpkgPath(c)

			db, err := gpkgadapter.OpenExisting(path)
			if err != nil {
				return err
			}
			defer func() { _ = gpkgadapter.Close(db) }()

			service := application.NewProfileService(gpkgadapter.NewProfileRepository(db))
			report, err := service.Summary(ctx, path)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(report)
			}
			printSummary(report)
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve a populated GeoPackage as a read-only JSON API",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "HTTP listen address"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("addr"), gpkgPath(c))
		},
	}
}

func runServer(ctx context.Context, addr, path string) error {
	db, err := gpkgadapter.OpenExisting(path)
	if err != nil {
		return err
	}
	defer func() { _ = gpkgadapter.Close(db) }()

	service := application.NewProfileService(gpkgadapter.NewProfileRepository(db))
	router := httpadapter.NewRouter(service, path)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "path": path}).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

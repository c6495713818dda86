package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
)

type migrateCommand struct {
	ShowPending bool
	DatabaseURL string
}

var migrateCommandName = "migrate"

func newMigrateCommand() *cli.Command {
	command := &migrateCommand{}
	return &cli.Command{
		Name:   migrateCommandName,
		Usage:  "Perform database migrations",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "show-pending", Usage: "Shows pending migrations and exits",
				EnvVars: envVars("SHOW_PENDING"), Value: false, Destination: &command.ShowPending},
			newDbURLFlag(&command.DatabaseURL),
		},
	}
}

func (cmd *migrateCommand) before(c *cli.Context) error {
	return LogMetadata(c)
}

func (cmd *migrateCommand) execute(c *cli.Context) error {
	log := AppLogger(c.Context).WithName(migrateCommandName)

	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Open(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	if cmd.ShowPending {
		log.V(1).Info("Showing pending DB migrations")
		pm, err := db.Pending(rdb)
		if err != nil {
			return fmt.Errorf("error showing pending migrations: %w", err)
		}

		for _, p := range pm {
			fmt.Println(p.Name)
		}
		return nil
	}

	log.V(1).Info("Start DB migrations")
	if err := db.Migrate(rdb); err != nil {
		return fmt.Errorf("could not migrate database: %w", err)
	}

	return nil
}

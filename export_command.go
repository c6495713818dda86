package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

type exportCommand struct {
	DatabaseURL string
	OutputFile  string
	form        queryFormFlags
}

var exportCommandName = "export"

func newExportCommand() *cli.Command {
	command := &exportCommand{}
	return &cli.Command{
		Name:   exportCommandName,
		Usage:  "Export charging transactions matching the given filters as CSV",
		Before: command.before,
		Action: command.execute,
		Flags: append([]cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.StringFlag{Name: "out", Usage: "File to write the CSV export to. Writes to stdout if not set",
				EnvVars: envVars("OUT"), Destination: &command.OutputFile},
		}, command.form.flags()...),
	}
}

func (cmd *exportCommand) before(c *cli.Context) error {
	return LogMetadata(c)
}

func (cmd *exportCommand) execute(c *cli.Context) error {
	ctx := c.Context
	log := AppLogger(ctx).WithName(exportCommandName)

	form, err := cmd.form.form(c)
	if err != nil {
		return err
	}

	out := os.Stdout
	if cmd.OutputFile != "" {
		f, err := os.Create(cmd.OutputFile)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	log.V(1).Info("Opening database connection", "url", cmd.DatabaseURL)
	rdb, err := db.Openx(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("could not open database connection: %w", err)
	}
	defer rdb.Close()

	log.V(1).Info("Begin transaction")
	tx, err := rdb.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := transaction.WriteCSV(ctx, tx, form, out); err != nil {
		return err
	}

	return tx.Commit()
}

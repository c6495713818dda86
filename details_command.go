package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

type detailsCommand struct {
	DatabaseURL   string
	TransactionID int
}

var detailsCommandName = "details"

func newDetailsCommand() *cli.Command {
	command := &detailsCommand{}
	return &cli.Command{
		Name:   detailsCommandName,
		Usage:  "Show a transaction together with its reconciled meter value readings",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.IntFlag{Name: "transaction-id", Usage: "Id of the transaction to show",
				EnvVars: envVars("TRANSACTION_ID"), Destination: &command.TransactionID, Required: true, DefaultText: defaultTextForRequiredFlags},
		},
	}
}

func (cmd *detailsCommand) before(c *cli.Context) error {
	return LogMetadata(c)
}

func (cmd *detailsCommand) execute(c *cli.Context) error {
	ctx := c.Context
	log := AppLogger(ctx).WithName(detailsCommandName)

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

	details, err := transaction.GetDetails(ctx, tx, cmd.TransactionID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(details); err != nil {
		return err
	}

	return tx.Commit()
}

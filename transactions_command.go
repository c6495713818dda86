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

type transactionsCommand struct {
	DatabaseURL string
	form        queryFormFlags
}

var transactionsCommandName = "transactions"

func newTransactionsCommand() *cli.Command {
	command := &transactionsCommand{}
	return &cli.Command{
		Name:   transactionsCommandName,
		Usage:  "List charging transactions matching the given filters",
		Before: command.before,
		Action: command.execute,
		Flags: append([]cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
		}, command.form.flags()...),
	}
}

func (cmd *transactionsCommand) before(c *cli.Context) error {
	return LogMetadata(c)
}

func (cmd *transactionsCommand) execute(c *cli.Context) error {
	ctx := c.Context
	log := AppLogger(ctx).WithName(transactionsCommandName)

	form, err := cmd.form.form(c)
	if err != nil {
		return err
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

	transactions, err := transaction.List(ctx, tx, form)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(transactions); err != nil {
		return err
	}

	return tx.Commit()
}

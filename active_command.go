package main

import (
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

type activeCommand struct {
	DatabaseURL string
	ChargeBoxID string
}

var activeCommandName = "active"

func newActiveCommand() *cli.Command {
	command := &activeCommand{}
	return &cli.Command{
		Name:   activeCommandName,
		Usage:  "List the ids of all active transactions on a charge box",
		Before: command.before,
		Action: command.execute,
		Flags: []cli.Flag{
			newDbURLFlag(&command.DatabaseURL),
			&cli.StringFlag{Name: "charge-box-id", Usage: "Charge box to list the active transactions of",
				EnvVars: envVars("CHARGE_BOX_ID"), Destination: &command.ChargeBoxID, Required: true, DefaultText: defaultTextForRequiredFlags},
		},
	}
}

func (cmd *activeCommand) before(c *cli.Context) error {
	return LogMetadata(c)
}

func (cmd *activeCommand) execute(c *cli.Context) error {
	ctx := c.Context
	log := AppLogger(ctx).WithName(activeCommandName)

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

	ids, err := transaction.ActiveTransactionIDs(ctx, tx, cmd.ChargeBoxID)
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}

	return tx.Commit()
}

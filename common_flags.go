package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

const defaultTextForRequiredFlags = "<required>"

func newDbURLFlag(destination *string) *cli.StringFlag {
	return &cli.StringFlag{Name: "db-url", Usage: "Database connection URL in the form of postgres://user@host:port/db-name?option=value",
		EnvVars: envVars("DB_URL"), Destination: destination, Required: true, DefaultText: defaultTextForRequiredFlags}
}

// queryFormFlags are the flags shared by the transactions and export commands.
// They mirror the fields of transaction.QueryForm.
type queryFormFlags struct {
	TransactionID int
	ChargeBoxID   string
	OcppIDTag     string
	ActiveOnly    bool
	Period        string
}

func (f *queryFormFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "transaction-id", Usage: "Restrict the search to a single transaction id",
			EnvVars: envVars("TRANSACTION_ID"), Destination: &f.TransactionID},
		&cli.StringFlag{Name: "charge-box-id", Usage: "Restrict the search to transactions of the given charge box",
			EnvVars: envVars("CHARGE_BOX_ID"), Destination: &f.ChargeBoxID},
		&cli.StringFlag{Name: "id-tag", Usage: "Restrict the search to transactions authorized with the given OCPP tag",
			EnvVars: envVars("ID_TAG"), Destination: &f.OcppIDTag},
		&cli.BoolFlag{Name: "active", Usage: "Only return transactions that have not been stopped yet",
			EnvVars: envVars("ACTIVE"), Destination: &f.ActiveOnly},
		&cli.StringFlag{Name: "period", Usage: "Time period to search in. One of: all, today, last10, last30, last90, fromto",
			EnvVars: envVars("PERIOD"), Destination: &f.Period, Value: "all"},
		&cli.TimestampFlag{Name: "from", Usage: "Lower bound of the search period. Only used with --period=fromto",
			EnvVars: envVars("FROM"), Layout: time.RFC3339},
		&cli.TimestampFlag{Name: "to", Usage: "Upper bound of the search period. Only used with --period=fromto",
			EnvVars: envVars("TO"), Layout: time.RFC3339},
	}
}

// form translates the parsed flags into a query form.
func (f *queryFormFlags) form(c *cli.Context) (transaction.QueryForm, error) {
	form := transaction.QueryForm{
		ChargeBoxID: f.ChargeBoxID,
		OcppIDTag:   f.OcppIDTag,
	}
	if c.IsSet("transaction-id") {
		id := f.TransactionID
		form.TransactionID = &id
	}
	if f.ActiveOnly {
		form.Type = transaction.QueryTypeActive
	}

	period, err := transaction.ParseQueryPeriod(f.Period)
	if err != nil {
		return form, err
	}
	form.Period = period
	if from := c.Timestamp("from"); from != nil {
		form.From = *from
	}
	if to := c.Timestamp("to"); to != nil {
		form.To = *to
	}
	return form, nil
}

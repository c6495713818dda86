// Package transaction reports on charging transactions and their meter
// values. It builds filtered transaction queries and reconciles the meter
// value readings belonging to a single transaction.
package transaction

import (
	"database/sql"
	"fmt"
	"time"
)

// Transaction is one charging session as presented to a caller.
type Transaction struct {
	ID          int    `db:"transaction_pk" json:"id"`
	ChargeBoxID string `db:"charge_box_id" json:"chargeBoxId"`
	ConnectorID int    `db:"connector_id" json:"connectorId"`
	OcppIDTag   string `db:"id_tag" json:"ocppIdTag"`

	StartTimestamp time.Time      `db:"start_timestamp" json:"startTimestamp"`
	StartValue     sql.NullString `db:"start_value" json:"startValue"`
	StopTimestamp  sql.NullTime   `db:"stop_timestamp" json:"stopTimestamp"`
	StopValue      sql.NullString `db:"stop_value" json:"stopValue"`

	ChargeBoxPK int `db:"charge_box_pk" json:"chargeBoxPk"`
	OcppTagPK   int `db:"ocpp_tag_pk" json:"ocppTagPk"`

	// Display strings of the start/stop instants. The raw instants above stay
	// around for computation.
	StartTimestampHuman string `db:"-" json:"startTimestampHuman"`
	StopTimestampHuman  string `db:"-" json:"stopTimestampHuman"`
}

// Active reports whether the transaction has not been stopped yet.
func (t Transaction) Active() bool {
	return !t.StopTimestamp.Valid
}

// MeterValue is one deduplicated meter reading of a transaction.
// ValueTimestamp is the earliest timestamp the reading was reported with.
type MeterValue struct {
	ValueTimestamp sql.NullTime   `db:"value_timestamp" json:"valueTimestamp"`
	Value          sql.NullString `db:"value" json:"value"`
	ReadingContext sql.NullString `db:"reading_context" json:"readingContext"`
	Format         sql.NullString `db:"format" json:"format"`
	Measurand      sql.NullString `db:"measurand" json:"measurand"`
	Location       sql.NullString `db:"location" json:"location"`
	Unit           sql.NullString `db:"unit" json:"unit"`
}

// TransactionDetails is a transaction together with its ordered,
// deduplicated meter value readings.
type TransactionDetails struct {
	Transaction Transaction  `json:"transaction"`
	MeterValues []MeterValue `json:"meterValues"`
}

// NotFoundError is returned when no transaction exists for a requested id.
type NotFoundError struct {
	TransactionID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("there is no transaction with id '%d'", e.TransactionID)
}

// humanize renders an instant for display.
func humanize(t time.Time) string {
	return t.In(time.UTC).Format("02.01.2006 15:04")
}

func (t *Transaction) setDisplayTimestamps() {
	t.StartTimestampHuman = humanize(t.StartTimestamp)
	if t.StopTimestamp.Valid {
		t.StopTimestampHuman = humanize(t.StopTimestamp.Time)
	}
}

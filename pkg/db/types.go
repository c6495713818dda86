package db

import (
	"database/sql"
	"time"
)

// ChargeBox is a charging station known to the system.
type ChargeBox struct {
	ChargeBoxPK int    `db:"charge_box_pk"`
	ChargeBoxID string `db:"charge_box_id"`

	Description sql.NullString `db:"description"`
}

// Connector is a single plug of a charge box.
// The (ChargeBoxID, ConnectorID) pair is unique.
type Connector struct {
	ConnectorPK int    `db:"connector_pk"`
	ChargeBoxID string `db:"charge_box_id"`
	ConnectorID int    `db:"connector_id"`
}

// OcppTag is an authorization token presented by a driver to start a transaction.
type OcppTag struct {
	OcppTagPK int    `db:"ocpp_tag_pk"`
	IDTag     string `db:"id_tag"`

	Note sql.NullString `db:"note"`
}

// Transaction is one charging session on a connector.
//
// StopTimestamp and StopValue are both null while the session is running and
// are set together when the station reports the session as stopped.
type Transaction struct {
	TransactionPK int    `db:"transaction_pk"`
	ConnectorPK   int    `db:"connector_pk"`
	IDTag         string `db:"id_tag"`

	StartTimestamp time.Time      `db:"start_timestamp"`
	StartValue     sql.NullString `db:"start_value"`
	StopTimestamp  sql.NullTime   `db:"stop_timestamp"`
	StopValue      sql.NullString `db:"stop_value"`
}

// ConnectorMeterValue is one sampled meter reading reported by a station.
//
// TransactionPK is only set when the station tagged the reading with the
// transaction it belongs to. Untagged readings can still be correlated with a
// transaction through their connector and timestamp.
type ConnectorMeterValue struct {
	ConnectorPK   int           `db:"connector_pk"`
	TransactionPK sql.NullInt64 `db:"transaction_pk"`

	ValueTimestamp sql.NullTime   `db:"value_timestamp"`
	Value          sql.NullString `db:"value"`
	ReadingContext sql.NullString `db:"reading_context"`
	Format         sql.NullString `db:"format"`
	Measurand      sql.NullString `db:"measurand"`
	Location       sql.NullString `db:"location"`
	Unit           sql.NullString `db:"unit"`
}

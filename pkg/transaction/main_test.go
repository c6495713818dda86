package transaction_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
	"github.com/marcos-rr/steve-plugsurfing/pkg/db/dbtest"
)

// Suite is the shared database suite of this package. Every test begins its
// own transaction on a migrated clone of the test database and rolls it back.
type Suite struct {
	dbtest.Suite
}

func (ts *Suite) SetupSuite() {
	ts.Suite.SetupSuite()
	require.NoError(ts.T(), db.Migrate(ts.DB().DB))
}

func createChargeBox(t *testing.T, tx *sqlx.Tx, chargeBoxID string) db.ChargeBox {
	t.Helper()
	var cb db.ChargeBox
	require.NoError(t, db.GetNamed(tx, &cb,
		"INSERT INTO charge_boxes (charge_box_id) VALUES (:charge_box_id) RETURNING *",
		db.ChargeBox{ChargeBoxID: chargeBoxID}))
	return cb
}

func createConnector(t *testing.T, tx *sqlx.Tx, chargeBoxID string, connectorID int) db.Connector {
	t.Helper()
	var c db.Connector
	require.NoError(t, db.GetNamed(tx, &c,
		"INSERT INTO connectors (charge_box_id, connector_id) VALUES (:charge_box_id, :connector_id) RETURNING *",
		db.Connector{ChargeBoxID: chargeBoxID, ConnectorID: connectorID}))
	return c
}

func createOcppTag(t *testing.T, tx *sqlx.Tx, idTag string) db.OcppTag {
	t.Helper()
	var tag db.OcppTag
	require.NoError(t, db.GetNamed(tx, &tag,
		"INSERT INTO ocpp_tags (id_tag) VALUES (:id_tag) RETURNING *",
		db.OcppTag{IDTag: idTag}))
	return tag
}

func createTransaction(t *testing.T, tx *sqlx.Tx, src db.Transaction) db.Transaction {
	t.Helper()
	var tr db.Transaction
	require.NoError(t, db.GetNamed(tx, &tr,
		`INSERT INTO transactions (connector_pk, id_tag, start_timestamp, start_value, stop_timestamp, stop_value)
			VALUES (:connector_pk, :id_tag, :start_timestamp, :start_value, :stop_timestamp, :stop_value)
			RETURNING *`,
		src))
	return tr
}

func insertMeterValue(t *testing.T, tx *sqlx.Tx, src db.ConnectorMeterValue) {
	t.Helper()
	_, err := tx.NamedExec(
		`INSERT INTO connector_meter_values (connector_pk, transaction_pk, value_timestamp, value, reading_context, format, measurand, location, unit)
			VALUES (:connector_pk, :transaction_pk, :value_timestamp, :value, :reading_context, :format, :measurand, :location, :unit)`,
		src)
	require.NoError(t, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: true}
}

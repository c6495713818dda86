package transaction

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// listQuery selects the transaction-level fields of all transactions,
// including the internal keys of the charge box and the OCPP tag.
const listQuery = `SELECT transactions.transaction_pk,
       connectors.charge_box_id,
       connectors.connector_id,
       transactions.id_tag,
       transactions.start_timestamp,
       transactions.start_value,
       transactions.stop_timestamp,
       transactions.stop_value,
       charge_boxes.charge_box_pk,
       ocpp_tags.ocpp_tag_pk
  FROM transactions
       INNER JOIN connectors ON (transactions.connector_pk = connectors.connector_pk)
       INNER JOIN charge_boxes ON (charge_boxes.charge_box_id = connectors.charge_box_id)
       INNER JOIN ocpp_tags ON (ocpp_tags.id_tag = transactions.id_tag)`

// exportQuery selects the caller-facing fields only, without internal keys.
const exportQuery = `SELECT transactions.transaction_pk,
       connectors.charge_box_id,
       connectors.connector_id,
       transactions.id_tag,
       transactions.start_timestamp,
       transactions.start_value,
       transactions.stop_timestamp,
       transactions.stop_value
  FROM transactions
       INNER JOIN connectors ON (transactions.connector_pk = connectors.connector_pk)`

// List returns all transactions matching the form, most recent first.
// An empty result is not an error.
func List(ctx context.Context, q sqlx.QueryerContext, form QueryForm) ([]Transaction, error) {
	query, args, err := appendFilter(listQuery, form, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	if err := sqlx.SelectContext(ctx, q, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	for i := range transactions {
		transactions[i].setDisplayTimestamps()
	}
	return transactions, nil
}

var csvHeader = []string{
	"transaction_pk", "charge_box_id", "connector_id", "id_tag",
	"start_timestamp", "start_value", "stop_timestamp", "stop_value",
}

// WriteCSV writes all transactions matching the form to w as CSV rows.
// Rows are written as they arrive from the database, the result is never
// materialized in memory.
func WriteCSV(ctx context.Context, q sqlx.QueryerContext, form QueryForm, w io.Writer) error {
	query, args, err := appendFilter(exportQuery, form, time.Now().UTC())
	if err != nil {
		return err
	}

	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load transactions for export: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for rows.Next() {
		var r exportRow
		if err := rows.StructScan(&r); err != nil {
			return fmt.Errorf("failed to scan transaction row: %w", err)
		}
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

type exportRow struct {
	TransactionPK  int            `db:"transaction_pk"`
	ChargeBoxID    string         `db:"charge_box_id"`
	ConnectorID    int            `db:"connector_id"`
	IDTag          string         `db:"id_tag"`
	StartTimestamp time.Time      `db:"start_timestamp"`
	StartValue     sql.NullString `db:"start_value"`
	StopTimestamp  sql.NullTime   `db:"stop_timestamp"`
	StopValue      sql.NullString `db:"stop_value"`
}

func (r exportRow) record() []string {
	stop := ""
	if r.StopTimestamp.Valid {
		stop = r.StopTimestamp.Time.Format(time.RFC3339)
	}
	return []string{
		strconv.Itoa(r.TransactionPK),
		r.ChargeBoxID,
		strconv.Itoa(r.ConnectorID),
		r.IDTag,
		r.StartTimestamp.Format(time.RFC3339),
		r.StartValue.String,
		stop,
		r.StopValue.String,
	}
}

// ActiveTransactionIDs returns the ids of all transactions on the given
// charge box that have not been stopped yet.
func ActiveTransactionIDs(ctx context.Context, q sqlx.QueryerContext, chargeBoxID string) ([]int, error) {
	var ids []int
	err := sqlx.SelectContext(ctx, q, &ids,
		`SELECT transactions.transaction_pk
		   FROM transactions
		        INNER JOIN connectors ON (transactions.connector_pk = connectors.connector_pk)
		  WHERE connectors.charge_box_id = $1
		    AND transactions.stop_timestamp IS NULL`,
		chargeBoxID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active transactions of %q: %w", chargeBoxID, err)
	}
	return ids, nil
}

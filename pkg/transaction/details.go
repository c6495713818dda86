package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// meterValuesQuery retrieves the meter values of one transaction in a single
// round trip.
//
// The first branch of the UNION finds every reading the station explicitly
// tagged with the transaction id. Stations do not always set the tag, so the
// second branch falls back to all readings of the transaction's connector
// within the transaction's time window. The UNION removes rows found by both
// branches.
//
// Stations may also report at fixed intervals even when the meter did not
// move (vehicle fully charged, cable still plugged). The outer GROUP BY
// collapses such repeats to the earliest occurrence per distinct reading.
const meterValuesQuery = `SELECT MIN(t1.value_timestamp) AS value_timestamp,
       t1.value,
       t1.reading_context,
       t1.format,
       t1.measurand,
       t1.location,
       t1.unit
  FROM (
       SELECT value_timestamp, value, reading_context, format, measurand, location, unit
         FROM connector_meter_values
        WHERE transaction_pk = $1
       UNION
       SELECT value_timestamp, value, reading_context, format, measurand, location, unit
         FROM connector_meter_values
        WHERE connector_pk = (SELECT connector_pk
                                FROM connectors
                               WHERE charge_box_id = $2
                                 AND connector_id = $3)
          AND {{window}}
  ) AS t1
 GROUP BY t1.value, t1.reading_context, t1.format, t1.measurand, t1.location, t1.unit
 ORDER BY value_timestamp`

// GetDetails returns the transaction with the given id together with its
// ordered, deduplicated meter values. It returns a NotFoundError if the
// transaction does not exist; an existing transaction without readings
// yields an empty sequence.
func GetDetails(ctx context.Context, q sqlx.QueryerContext, transactionPK int) (TransactionDetails, error) {
	// Step 1: collect general data about the transaction, through the same
	// filtered query path as List. The id makes the row unique.
	form := QueryForm{TransactionID: &transactionPK, Type: QueryTypeAll, Period: PeriodAll}
	query, args, err := appendFilter(listQuery, form, time.Now().UTC())
	if err != nil {
		return TransactionDetails{}, err
	}

	var tr Transaction
	if err := sqlx.GetContext(ctx, q, &tr, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionDetails{}, NotFoundError{TransactionID: transactionPK}
		}
		return TransactionDetails{}, fmt.Errorf("failed to load transaction %d: %w", transactionPK, err)
	}
	tr.setDisplayTimestamps()

	// Step 2: the candidate window is open-ended while the transaction is
	// still running, and [start, stop] once it is finished.
	window := "value_timestamp >= $4"
	meterArgs := []interface{}{transactionPK, tr.ChargeBoxID, tr.ConnectorID, tr.StartTimestamp}
	if !tr.Active() {
		window = "value_timestamp BETWEEN $4 AND $5"
		meterArgs = append(meterArgs, tr.StopTimestamp.Time)
	}

	var values []MeterValue
	err = sqlx.SelectContext(ctx, q, &values,
		strings.ReplaceAll(meterValuesQuery, "{{window}}", window), meterArgs...)
	if err != nil {
		return TransactionDetails{}, fmt.Errorf("failed to load meter values of transaction %d: %w", transactionPK, err)
	}

	return TransactionDetails{Transaction: tr, MeterValues: values}, nil
}

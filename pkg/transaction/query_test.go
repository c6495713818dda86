package transaction_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/marcos-rr/steve-plugsurfing/pkg/db"
	"github.com/marcos-rr/steve-plugsurfing/pkg/transaction"
)

type QuerySuite struct {
	Suite
}

func TestQuery(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

// fixture creates two charge boxes with one connector each, two tags and
// four transactions:
//
//	CB01/1 TAG-A: finished, started 40 days ago
//	CB01/1 TAG-B: finished, started 5 days ago
//	CB01/1 TAG-A: active, started 1 hour ago
//	CB02/1 TAG-B: active, started 2 hours ago
type queryFixture struct {
	boxOne db.ChargeBox
	boxTwo db.ChargeBox

	oldFinished    db.Transaction
	recentFinished db.Transaction
	activeOne      db.Transaction
	activeTwo      db.Transaction
}

func (ts *QuerySuite) setupFixture(tx *sqlx.Tx) queryFixture {
	t := ts.T()
	now := time.Now().UTC()

	f := queryFixture{}
	f.boxOne = createChargeBox(t, tx, "CB01")
	f.boxTwo = createChargeBox(t, tx, "CB02")
	connOne := createConnector(t, tx, "CB01", 1)
	connTwo := createConnector(t, tx, "CB02", 1)
	createOcppTag(t, tx, "TAG-A")
	createOcppTag(t, tx, "TAG-B")

	f.oldFinished = createTransaction(t, tx, db.Transaction{
		ConnectorPK:    connOne.ConnectorPK,
		IDTag:          "TAG-A",
		StartTimestamp: now.AddDate(0, 0, -40),
		StartValue:     nullString("0"),
		StopTimestamp:  nullTime(now.AddDate(0, 0, -40).Add(time.Hour)),
		StopValue:      nullString("3100"),
	})
	f.recentFinished = createTransaction(t, tx, db.Transaction{
		ConnectorPK:    connOne.ConnectorPK,
		IDTag:          "TAG-B",
		StartTimestamp: now.AddDate(0, 0, -5),
		StartValue:     nullString("3100"),
		StopTimestamp:  nullTime(now.AddDate(0, 0, -5).Add(2 * time.Hour)),
		StopValue:      nullString("9800"),
	})
	f.activeOne = createTransaction(t, tx, db.Transaction{
		ConnectorPK:    connOne.ConnectorPK,
		IDTag:          "TAG-A",
		StartTimestamp: now.Add(-time.Hour),
		StartValue:     nullString("9800"),
	})
	f.activeTwo = createTransaction(t, tx, db.Transaction{
		ConnectorPK:    connTwo.ConnectorPK,
		IDTag:          "TAG-B",
		StartTimestamp: now.Add(-2 * time.Hour),
		StartValue:     nullString("500"),
	})
	return f
}

func (ts *QuerySuite) TestListOrdersMostRecentFirst() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	ts.setupFixture(tx)

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{})
	require.NoError(t, err)
	require.Len(t, transactions, 4)
	for i := 1; i < len(transactions); i++ {
		assert.Greater(t, transactions[i-1].ID, transactions[i].ID)
	}
}

func (ts *QuerySuite) TestListMapsAllFields() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	id := f.recentFinished.TransactionPK
	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{TransactionID: &id})
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	got := transactions[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "CB01", got.ChargeBoxID)
	assert.Equal(t, 1, got.ConnectorID)
	assert.Equal(t, "TAG-B", got.OcppIDTag)
	assert.Equal(t, "3100", got.StartValue.String)
	assert.Equal(t, "9800", got.StopValue.String)
	assert.Equal(t, f.boxOne.ChargeBoxPK, got.ChargeBoxPK)
	assert.NotZero(t, got.OcppTagPK)
	assert.NotEmpty(t, got.StartTimestampHuman)
	assert.NotEmpty(t, got.StopTimestampHuman)
	assert.False(t, got.Active())
}

func (ts *QuerySuite) TestListFiltersByChargeBoxAndTag() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{ChargeBoxID: "CB02"})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, f.activeTwo.TransactionPK, transactions[0].ID)

	transactions, err = transaction.List(context.Background(), tx, transaction.QueryForm{OcppIDTag: "TAG-A"})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
}

func (ts *QuerySuite) TestListActiveOnly() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	ts.setupFixture(tx)

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{Type: transaction.QueryTypeActive})
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	for _, tr := range transactions {
		assert.True(t, tr.Active())
	}
}

func (ts *QuerySuite) TestListPeriodToday() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	// a transaction started more than a day ago never has today's calendar date
	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{Period: transaction.PeriodToday})
	require.NoError(t, err)
	for _, tr := range transactions {
		assert.NotEqual(t, f.recentFinished.TransactionPK, tr.ID)
		assert.NotEqual(t, f.oldFinished.TransactionPK, tr.ID)
	}
}

func (ts *QuerySuite) TestListPeriodLast30() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{Period: transaction.PeriodLast30})
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	for _, tr := range transactions {
		assert.NotEqual(t, f.oldFinished.TransactionPK, tr.ID)
	}
}

func (ts *QuerySuite) TestListPeriodFromToIsInclusive() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{
		Period: transaction.PeriodFromTo,
		From:   f.recentFinished.StartTimestamp,
		To:     f.recentFinished.StartTimestamp,
	})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, f.recentFinished.TransactionPK, transactions[0].ID)
}

func (ts *QuerySuite) TestListEmptyResultIsNotAnError() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()

	transactions, err := transaction.List(context.Background(), tx, transaction.QueryForm{ChargeBoxID: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func (ts *QuerySuite) TestWriteCSV() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	buf := &bytes.Buffer{}
	err := transaction.WriteCSV(context.Background(), tx, transaction.QueryForm{ChargeBoxID: "CB01"}, buf)
	require.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + three CB01 transactions

	assert.Equal(t, []string{
		"transaction_pk", "charge_box_id", "connector_id", "id_tag",
		"start_timestamp", "start_value", "stop_timestamp", "stop_value",
	}, records[0])

	// most recent first, internal keys never exported
	last := records[len(records)-1]
	assert.Equal(t, "CB01", last[1])
	assert.Equal(t, "TAG-A", last[3])
	assert.Equal(t, "3100", last[7])
	assert.Equal(t, f.oldFinished.StartTimestamp.Format(time.RFC3339), last[4])
}

func (ts *QuerySuite) TestActiveTransactionIDs() {
	t := ts.T()
	tx := ts.Begin()
	defer tx.Rollback()
	f := ts.setupFixture(tx)

	ids, err := transaction.ActiveTransactionIDs(context.Background(), tx, "CB01")
	require.NoError(t, err)
	assert.Equal(t, []int{f.activeOne.TransactionPK}, ids)

	ids, err = transaction.ActiveTransactionIDs(context.Background(), tx, "CB02")
	require.NoError(t, err)
	assert.Equal(t, []int{f.activeTwo.TransactionPK}, ids)

	ids, err = transaction.ActiveTransactionIDs(context.Background(), tx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

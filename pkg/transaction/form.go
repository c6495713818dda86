package transaction

import (
	"fmt"
	"time"
)

// QueryType restricts a search to all or only still-running transactions.
type QueryType int

const (
	QueryTypeAll QueryType = iota
	QueryTypeActive
)

// QueryPeriod restricts a search to the period a transaction started in.
type QueryPeriod int

const (
	PeriodAll QueryPeriod = iota
	PeriodToday
	PeriodLast10
	PeriodLast30
	PeriodLast90
	PeriodFromTo
)

// Days returns the length of a last-N-days period in days.
// It returns 0 for every other period.
func (p QueryPeriod) Days() int {
	switch p {
	case PeriodLast10:
		return 10
	case PeriodLast30:
		return 30
	case PeriodLast90:
		return 90
	}
	return 0
}

func (p QueryPeriod) String() string {
	switch p {
	case PeriodAll:
		return "all"
	case PeriodToday:
		return "today"
	case PeriodLast10:
		return "last10"
	case PeriodLast30:
		return "last30"
	case PeriodLast90:
		return "last90"
	case PeriodFromTo:
		return "fromto"
	}
	return fmt.Sprintf("QueryPeriod(%d)", int(p))
}

// ParseQueryPeriod parses the string form of a query period as used on the
// command line.
func ParseQueryPeriod(s string) (QueryPeriod, error) {
	for _, p := range []QueryPeriod{PeriodAll, PeriodToday, PeriodLast10, PeriodLast30, PeriodLast90, PeriodFromTo} {
		if s == p.String() {
			return p, nil
		}
	}
	return PeriodAll, fmt.Errorf("unknown query period %q", s)
}

// QueryForm describes a transaction search. The zero value matches all
// transactions.
type QueryForm struct {
	// TransactionID restricts the search to a single transaction if set.
	TransactionID *int
	// ChargeBoxID restricts the search to transactions of one charge box if non-empty.
	ChargeBoxID string
	// OcppIDTag restricts the search to transactions authorized with one OCPP tag if non-empty.
	OcppIDTag string

	Type   QueryType
	Period QueryPeriod

	// From and To bound the start timestamp. Only used with PeriodFromTo.
	From time.Time
	To   time.Time
}

package transaction

import (
	"fmt"
	"strings"
	"time"
)

// conditions translates the form into a conjunction of SQL predicates over
// the transactions ↔ connectors join, together with their positional
// arguments. now is the reference instant for the relative periods.
func (form QueryForm) conditions(now time.Time) (conds []string, args []interface{}, err error) {
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if form.TransactionID != nil {
		conds = append(conds, "transactions.transaction_pk = "+arg(*form.TransactionID))
	}
	if form.ChargeBoxID != "" {
		conds = append(conds, "connectors.charge_box_id = "+arg(form.ChargeBoxID))
	}
	if form.OcppIDTag != "" {
		conds = append(conds, "transactions.id_tag = "+arg(form.OcppIDTag))
	}
	if form.Type == QueryTypeActive {
		conds = append(conds, "transactions.stop_timestamp IS NULL")
	}

	switch form.Period {
	case PeriodAll:
		// no time constraint

	case PeriodToday:
		conds = append(conds, "transactions.start_timestamp::date = (now() at time zone 'utc')::date")

	case PeriodLast10, PeriodLast30, PeriodLast90:
		// calendar-date comparison, time of day is ignored
		from := arg(now.AddDate(0, 0, -form.Period.Days()))
		to := arg(now)
		conds = append(conds, fmt.Sprintf("transactions.start_timestamp::date BETWEEN %s::date AND %s::date", from, to))

	case PeriodFromTo:
		conds = append(conds, fmt.Sprintf("transactions.start_timestamp BETWEEN %s AND %s", arg(form.From), arg(form.To)))

	default:
		return nil, nil, fmt.Errorf("unknown query period %q", form.Period)
	}

	return conds, args, nil
}

// appendFilter appends the form's predicates and the default ordering to the
// given base query.
func appendFilter(query string, form QueryForm, now time.Time) (string, []interface{}, error) {
	conds, args, err := form.conditions(now)
	if err != nil {
		return "", nil, err
	}
	if len(conds) > 0 {
		query += "\n WHERE " + strings.Join(conds, "\n   AND ")
	}
	// most recent transactions first
	query += "\n ORDER BY transactions.transaction_pk DESC"
	return query, args, nil
}

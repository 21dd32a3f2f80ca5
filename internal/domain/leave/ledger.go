package leave

// Balance is the (total, used, remaining) triple of one leave type.
// Remaining always equals Total - Used.
type Balance struct {
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

func NewBalance(total, used float64) Balance {
	return Balance{Total: total, Used: used, Remaining: total - used}
}

// Balances holds one employee's balance per leave type.
type Balances map[Type]Balance

// ApplyApproval charges days against the balance of leaveType and returns the
// new balance. The input map is not modified. An unknown key is rejected with
// *UnknownLeaveTypeError and nothing changes.
//
// Callers must apply an approval exactly once per request; see
// LeaveRequest.BalanceApplied.
func ApplyApproval(balances Balances, leaveType string, days float64) (Balance, error) {
	current, ok := balances[Type(leaveType)]
	if !ok {
		return Balance{}, &UnknownLeaveTypeError{Key: leaveType}
	}
	if days < 0 {
		return Balance{}, ErrInvalidDays
	}
	return NewBalance(current.Total, current.Used+days), nil
}

// SetTotal changes the allotment and keeps the invariant.
func (b Balance) SetTotal(total float64) Balance {
	return NewBalance(total, b.Used)
}

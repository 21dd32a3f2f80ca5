package leave

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateLeaveRequestRequest
		wantField string
	}{
		{"valid", CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2025-08-04", EndDate: "2025-08-05", Reason: "flu"}, ""},
		{"single day", CreateLeaveRequestRequest{LeaveType: "annual", StartDate: "2025-08-04", EndDate: "2025-08-04", Reason: "trip"}, ""},
		{"unknown type", CreateLeaveRequestRequest{LeaveType: "paternity", StartDate: "2025-08-04", EndDate: "2025-08-05", Reason: "x"}, "leave_type"},
		{"end before start", CreateLeaveRequestRequest{LeaveType: "casual", StartDate: "2025-08-05", EndDate: "2025-08-04", Reason: "x"}, "end_date"},
		{"bad date", CreateLeaveRequestRequest{LeaveType: "casual", StartDate: "08/04/2025", EndDate: "2025-08-04", Reason: "x"}, "start_date"},
		{"missing reason", CreateLeaveRequestRequest{LeaveType: "casual", StartDate: "2025-08-04", EndDate: "2025-08-04"}, "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				start, end := tt.req.Dates()
				assert.False(t, end.Before(start))
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.wantField)
		})
	}
}

func TestSetBalanceRequest_Validate(t *testing.T) {
	ok := SetBalanceRequest{EmployeeID: "0b8c6a3e-7c2e-4a8e-9d55-0a1f1d0f5a11", LeaveType: "annual", Total: 20}
	assert.NoError(t, ok.Validate())

	bad := SetBalanceRequest{EmployeeID: "nope", LeaveType: "annual", Total: -1}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

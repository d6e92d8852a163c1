package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySubmitErr(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ResultCode
	}{
		{"underfunded lamports", "Transaction simulation failed: Attempt to debit an account but found no record of a prior credit. insufficient lamports", ResultUnderfunded},
		{"underfunded token", "custom program error: 0x1", ResultUnderfunded},
		{"missing account", "Transaction simulation failed: could not find account", ResultNoAccount},
		{"uninitialized token account", "Program failed: UninitializedAccount", ResultNotActivated},
		{"stale blockhash", "Blockhash not found", ResultBlockhashStale},
		{"anything else", "rpc node on fire", ResultUnrecognized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifySubmitErr(tc.raw)
			assert.Equal(t, []ResultCode{tc.want}, err.OpCodes)
			assert.Equal(t, tc.raw, err.Raw)
		})
	}
}

func TestSubmitErrorRawCodes(t *testing.T) {
	err := &SubmitError{
		TxCode:  ResultUnrecognized,
		OpCodes: []ResultCode{ResultUnderfunded, ResultOK},
		Raw:     "boom",
	}
	assert.Equal(t, []string{"unrecognized", "underfunded", "ok"}, err.RawCodes())
}

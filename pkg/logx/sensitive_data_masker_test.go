package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"p2p_market/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Release secret",
			input:  []byte(`{"tradeCode":"AB12C","secret":"p2p_secure_release_key"}`),
			output: []byte(`{"tradeCode":"AB12C","secret":"[MASKED]"}`),
		},
		{
			name:   "Secret capital letter",
			input:  []byte(`{"tradeCode":"AB12C","Secret":"p2p_secure_release_key"}`),
			output: []byte(`{"tradeCode":"AB12C","Secret":"[MASKED]"}`),
		},
		{
			name:   "Listing contact",
			input:  []byte(`{"paymentMethod":"CBE transfer","contact":"@seller_handle"}`),
			output: []byte(`{"paymentMethod":"CBE transfer","contact":"[MASKED]"}`),
		},
		{
			name:   "Escrow wallet in response",
			input:  []byte(`{"tradeCode":"AB12C","escrowWallet":"TXyzabc123","status":"pending"}`),
			output: []byte(`{"tradeCode":"AB12C","escrowWallet":"[MASKED]","status":"pending"}`),
		},
		{
			name:   "Nothing sensitive",
			input:  []byte(`{"tradeCode":"AB12C","status":"paid"}`),
			output: []byte(`{"tradeCode":"AB12C","status":"paid"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}

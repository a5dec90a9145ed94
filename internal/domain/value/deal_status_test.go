package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"p2p_market/internal/domain/value"
)

func TestParseDealStatus(t *testing.T) {
	rq := require.New(t)

	for _, want := range []value.DealStatus{
		value.DealStatusPending,
		value.DealStatusPaid,
		value.DealStatusReleased,
		value.DealStatusCancelled,
	} {
		got, err := value.ParseDealStatus(want.String())
		rq.NoError(err)
		rq.Equal(want, got)
	}

	_, err := value.ParseDealStatus("unknown")
	rq.Error(err)

	_, err = value.ParseDealStatus("")
	rq.Error(err)
}

package cost

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateMonotonicInRequestBytes(t *testing.T) {
	a := Calculate(1000, 1000, DefaultLiveSubnetSize)
	b := Calculate(1001, 1000, DefaultLiveSubnetSize)
	require.LessOrEqual(t, a.Cycles, b.Cycles)
}

func TestCalculateMonotonicInResponseBytes(t *testing.T) {
	a := Calculate(1000, 1000, DefaultLiveSubnetSize)
	b := Calculate(1000, 1001, DefaultLiveSubnetSize)
	require.LessOrEqual(t, a.Cycles, b.Cycles)
}

func TestCalculateIncrementalRequestByteCost(t *testing.T) {
	base := Calculate(1000, 1000, DefaultLiveSubnetSize)
	plusTen := Calculate(1010, 1000, DefaultLiveSubnetSize)

	perByte := uint64(HttpRequestPerByte) + uint64(IngressByteReceptionFee)/uint64(DefaultSubnetSize)
	want := 10 * perByte * uint64(DefaultLiveSubnetSize)

	require.Equal(t, want, plusTen.Cycles-base.Cycles)
}

func TestCalculateCollateralIsCyclesPlusPerNode(t *testing.T) {
	e := Calculate(1000, 1000, DefaultLiveSubnetSize)
	require.Equal(t, e.Cycles+uint64(CollateralPerNode)*uint64(DefaultLiveSubnetSize), e.CyclesWithCollateral)
}

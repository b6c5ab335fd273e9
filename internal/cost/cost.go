// Package cost implements the pure cycles-cost calculator: a deterministic
// function of request size, reserved response size, and subnet size,
// reproducible on the caller side so a client can precompute what a call
// will charge before making it.
package cost

// Constants are fixed at build time and mirror the platform's own cost
// schedule; a client-side recomputation must match the host exactly or
// demo-mode calls will under/over-reserve cycles.
const (
	IngressOverheadBytes         = 100
	IngressReceptionFee          = 1_200_000
	IngressByteReceptionFee      = 2_000
	HttpRequestLinearBaseline    = 3_000_000
	HttpRequestQuadraticBaseline = 60_000
	HttpRequestPerByte           = 400
	HttpResponsePerByte          = 800
	CanisterOverhead             = 1_000_000
	CollateralPerNode            = 10_000_000
	UrlMinCostBytes              = 256
	DefaultSubnetSize            = 13
	DefaultLiveSubnetSize        = 34
)

// Estimate is the result of Calculate: the exact cycles an outcall will
// charge, and the slightly larger amount a caller must have attached
// (cycles + per-node collateral) before the outcall is allowed to proceed.
type Estimate struct {
	Cycles            uint64
	CyclesWithCollateral uint64
}

// Calculate is pure and monotonic in both requestBytes and
// maxResponseBytes: increasing either argument can only increase the
// result.
func Calculate(requestBytes, maxResponseBytes uint64, subnetSize uint64) Estimate {
	perNode := IngressReceptionFee/DefaultSubnetSize +
		IngressByteReceptionFee/DefaultSubnetSize*(requestBytes+UrlMinCostBytes+IngressOverheadBytes) +
		HttpRequestLinearBaseline +
		HttpRequestQuadraticBaseline*subnetSize +
		HttpRequestPerByte*requestBytes +
		HttpResponsePerByte*maxResponseBytes

	cycles := perNode * subnetSize
	collateral := cycles + CollateralPerNode*subnetSize

	return Estimate{Cycles: cycles, CyclesWithCollateral: collateral}
}

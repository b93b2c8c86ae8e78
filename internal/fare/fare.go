// Package fare implements the regional taxi tariff and the derived
// reduced-mobility-vehicle fare. Pure integer arithmetic, no I/O.
package fare

const (
	baseFare     int64 = 95
	baseMeters   int64 = 1250
	blockMeters  int64 = 250
	farePerBlock int64 = 5
	reducedDiv   int64 = 3
)

// TaxiFareFromMeters returns the metered taxi fare for a trip distance.
// Distances up to the base 1250 m (including zero) cost the base fare;
// beyond that, every started 250 m block adds 5.
func TaxiFareFromMeters(meters int64) int64 {
	if meters <= baseMeters {
		return baseFare
	}
	extra := meters - baseMeters
	blocks := (extra + blockMeters - 1) / blockMeters
	return baseFare + blocks*farePerBlock
}

// ReducedFareFromTaxiFare derives the accessible-transport fare:
// one third of the taxi fare, rounded up.
func ReducedFareFromTaxiFare(taxiFare int64) int64 {
	if taxiFare <= 0 {
		return 0
	}
	return (taxiFare + reducedDiv - 1) / reducedDiv
}

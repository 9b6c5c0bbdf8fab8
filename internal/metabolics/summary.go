package metabolics

import (
	"osimkit/internal/osim"
	"osimkit/internal/report"
	"osimkit/internal/sto"
)

// Summary keys of the results dictionary.
const (
	KeyMeanPower   = "mean_power_W"
	KeyTotalEnergy = "total_energy_J"
	KeyDuration    = "duration_s"
)

// CalculateCost reduces a probe results table to summary statistics over
// the whole_body_metabolics column. A file without that column yields an
// empty dictionary and a warning, not an error; every other failure is
// hard.
//
// Total energy is mean power times duration, a rectangular approximation.
// It under- or over-estimates the true integral for non-uniform sampling,
// but downstream consumers expect exactly this quantity, so it stays.
func CalculateCost(metabolicsFile string) (map[string]float64, error) {
	table, err := sto.ReadTable(metabolicsFile)
	if err != nil {
		return nil, err
	}

	meanPower, ok := table.Mean(osim.WholeBodyProbe)
	if !ok {
		report.Warnf("%s column not found in %s", osim.WholeBodyProbe, metabolicsFile)
		return map[string]float64{}, nil
	}

	duration := table.Duration()
	totalEnergy := meanPower * duration

	results := map[string]float64{
		KeyMeanPower:   meanPower,
		KeyTotalEnergy: totalEnergy,
		KeyDuration:    duration,
	}

	report.Successf("mean metabolic power: %.2f W", meanPower)
	report.Successf("total metabolic energy: %.2f J", totalEnergy)

	return results, nil
}

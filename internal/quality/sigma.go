package quality

import "math"

// SigmaSummary is the classic Six Sigma capability summary for a process
// over a reporting window.
type SigmaSummary struct {
	Units         int
	Opportunities int
	Defects       int
	DPU           float64
	DPMO          float64
	FPY           float64
	SigmaShort    float64
	SigmaLong     float64
}

// BuildSigmaSummary computes DPU, DPMO, first-pass yield (Poisson
// approximation FPY ≈ e^(−DPU)), and short/long-term sigma levels.
// The long-term level applies the conventional 1.5 sigma shift.
func BuildSigmaSummary(units, opportunitiesPerUnit, defects int) SigmaSummary {
	if opportunitiesPerUnit < 1 {
		opportunitiesPerUnit = 1
	}
	opportunities := units * opportunitiesPerUnit

	summary := SigmaSummary{
		Units:         units,
		Opportunities: opportunities,
		Defects:       defects,
	}

	if units > 0 {
		summary.DPU = float64(defects) / float64(units)
	}
	if opportunities > 0 {
		summary.DPMO = float64(defects) / float64(opportunities) * 1_000_000
	}

	fpy := math.Exp(-summary.DPU)
	fpy = math.Min(math.Max(fpy, 1e-12), 1-1e-12)
	summary.FPY = fpy
	summary.SigmaShort = invNormCDF(fpy)
	summary.SigmaLong = summary.SigmaShort + 1.5

	return summary
}

// invNormCDF is Acklam's rational approximation of the inverse CDF of the
// standard normal distribution, accurate to ~1.15e-9 over (0, 1).
func invNormCDF(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}

	a := [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02,
		-2.759285104469687e+02, 1.383577518672690e+02,
		-3.066479806614716e+01, 2.506628277459239e+00,
	}
	b := [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02,
		-1.556989798598866e+02, 6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	c := [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01,
		-2.400758277161838e+00, -2.549732539343734e+00,
		4.374664141464968e+00, 2.938163982698783e+00,
	}
	d := [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}

	const plow = 0.02425
	const phigh = 1 - plow

	switch {
	case p < plow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > phigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return q * (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}

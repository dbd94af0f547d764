package evm

// ComputeMetrics derives all earned value metrics from one input tuple.
func ComputeMetrics(bac, pv, ev, ac float64) Metrics {
	var m Metrics

	m.SV = ev - pv
	m.CV = ev - ac

	m.SPI = safeDiv(ev, pv)
	m.CPI = safeDiv(ev, ac)

	// A CPI of 0 means no forecast is possible, EAC stays 0.
	m.EACTypical = safeDiv(bac, m.CPI)
	m.EACAtypical = ac + (bac - ev)

	m.ETCTypical = m.EACTypical - ac
	m.ETCAtypical = m.EACAtypical - ac

	m.VAC = bac - m.EACTypical

	m.TCPIBAC = safeDiv(bac-ev, bac-ac)
	m.TCPIEAC = safeDiv(bac-ev, m.EACTypical-ac)

	return m
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

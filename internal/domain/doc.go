// Package domain holds the deterministic weather-risk model: four independent
// simulators (heat, wind, precipitation, air quality) and the aggregator that
// turns their outputs into one composite assessment.
//
// # Determinism
//
// Every output is a pure function of a [CalendarDate]. Nothing reads wall time,
// shared state or external data, so the same date yields bit-identical
// predictions across calls, processes and platforms.
//
// Randomness comes from [Stream], a PCG32 (XSH-RR) generator:
//
//	base seed   = year*10000 + month*100 + day
//	salted seed = base*K + C                (one (K, C) per simulator purpose)
//	stream      = pcg32_srandom(uint64(salted seed), 0xda3e39cb94b95bdb)
//	Float64     = ((a>>5)<<26 | b>>6) / 2^53   (a, b consecutive outputs)
//	Intn(n)     = rejection sampled r mod n
//
// The salts and the order in which each simulator draws from its streams are
// part of the contract:
//
//	heat           variation (1,0); anomaly roll+magnitude (31,7); confidence (43,5)
//	wind           variation (53,19); gust factor, shoulder roll, shoulder add (37,11);
//	               confidence (59,29)
//	precipitation  probability, intensity, confidence (17,23)
//	air quality    AQI, confidence (61,13)
//	health advice  temperature, humidity, AQI, change (97,11) respiratory / (97,19) cardiac
//
// # Seasonal model
//
// Heat and wind follow mean + amplitude*cos(2π(dayOfYear-peak)/daysInYear):
//
//	Heat: mean 15 °C, amplitude 15 °C, peak day 196 (mid July)
//	Wind: mean 16 km/h, amplitude 8 km/h, peak day 25 (late January)
//
// Daily variation, anomalies (summer heatwaves, winter cold snaps, shoulder
// season gust spikes) and clamping to physical ranges are layered on top.
//
// # Classification
//
//	Heat (°C):      <0 Frigid | <10 Chilly | <20 Mild | <27 Warm | <32 Hot | <38 Very Hot | else Extreme Heat
//	                severe ≥38, elevated ≥32 or ≤0
//	Wind (km/h):    <5 Calm | <15 Light breeze | <30 Moderate breeze / Breezy with gusts (gust >45)
//	                | <50 Strong | <70 Very strong | else Damaging
//	                severe avg ≥50 or gust ≥70, elevated avg ≥30
//	Precipitation:  elevated when probability ≥0.7 or intensity is moderate
//	AQI:            ≤50 Good | ≤100 Moderate | ≤150 Unhealthy for Sensitive Groups | ≤200 Unhealthy
//	                | ≤300 Very Unhealthy | else Hazardous
//
// # Composite risk
//
// The aggregator scores hazards: extreme heat 3 (else very hot 2), cold 2, high
// winds 2, wet 1, poor air 2. A score of 6 or more is high risk, 3 or more is
// mixed, anything lower is favorable.
package domain

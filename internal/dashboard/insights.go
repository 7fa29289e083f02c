// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

// Insight is one operational recommendation shown under the panels.
type Insight struct {
	Topic string
	Text  string
}

// Insights returns the static recommendation list.
func Insights() []Insight {
	return []Insight{
		{
			Topic: "Peak Management",
			Text:  "Use hourly peaks to align train frequency and bus headways, especially where Chicago traffic shows lower average speeds in 2023 vs 2019.",
		},
		{
			Topic: "Station Ops",
			Text:  "Top CTA stations with consistent growth should be prioritized for platform staffing and crowd control during peak windows.",
		},
		{
			Topic: "Rideshare Zones",
			Text:  "NYC PULocationID hotspots suggest dedicated curb zones and pickup signage to reduce conflicts.",
		},
		{
			Topic: "Congestion Relief",
			Text:  "Where traffic speed dips coincide with high CTA ridership, consider bus-only lanes and transit signal priority.",
		},
		{
			Topic: "Subsidy Tuning",
			Text:  "Compare 2023/2019 recovery by month and target incentives to off-peak or under-recovered corridors.",
		},
	}
}

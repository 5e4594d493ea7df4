package engine

import "fmt"

// RotationPairing maps one batch to one station for a given week offset.
type RotationPairing struct {
	Batch   string `json:"batch"`
	Station string `json:"station"`
}

// RotationPlan is the round-robin circular schedule for one lab
// requirement: batch i works station (i + weekOffset) mod k, so over a
// full cycle every batch visits every station exactly once and no two
// batches ever share a (station, weekOffset) pair. The plan is a pure
// function of its inputs and holds no mutable state.
type RotationPlan struct {
	batches  int
	stations int
}

// PlanRotation builds the plan for a lab with the given batch and
// station counts. A zero station count defaults to one station per
// batch.
func PlanRotation(section, subject string, batches, stations int) (*RotationPlan, error) {
	if batches < 1 {
		batches = 1
	}
	if stations == 0 {
		stations = batches
	}
	if stations < batches {
		return nil, &InsufficientStationsError{Section: section, Subject: subject, Batches: batches, Stations: stations}
	}
	return &RotationPlan{batches: batches, stations: stations}, nil
}

// Batches returns the number of rotating sub-batches.
func (p *RotationPlan) Batches() int {
	return p.batches
}

// Stations returns the configured station count.
func (p *RotationPlan) Stations() int {
	return p.stations
}

// Station returns the station index batch works at the given week offset.
func (p *RotationPlan) Station(batch, weekOffset int) int {
	return (batch + weekOffset) % p.batches
}

// CycleLabel names one step of the rotation cycle, stamped onto lab
// entries so dashboards can show which rotation week a cell belongs to.
func (p *RotationPlan) CycleLabel(weekOffset int) string {
	if p.batches <= 1 {
		return "ALL"
	}
	return fmt.Sprintf("R%d", weekOffset%p.batches+1)
}

// Assignments expands the batch-to-station pairing for one week offset.
func (p *RotationPlan) Assignments(weekOffset int) []RotationPairing {
	pairs := make([]RotationPairing, 0, p.batches)
	for i := 0; i < p.batches; i++ {
		pairs = append(pairs, RotationPairing{
			Batch:   fmt.Sprintf("B%d", i+1),
			Station: fmt.Sprintf("S%d", p.Station(i, weekOffset)+1),
		})
	}
	return pairs
}

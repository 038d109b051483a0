// Package metrics tracks parsing degradations. Every place the
// pipeline gives up structure for text records an event here, so a run
// can always answer "what was lost, and where".
package metrics

import "time"

// Stage names the pipeline stage an event belongs to.
type Stage string

const (
	StageAssemble  Stage = "assemble"
	StageSplit     Stage = "split"
	StageStructure Stage = "structure"
	StagePhrase    Stage = "phrase"
)

// Event is one recorded degradation. Events are append-only.
type Event struct {
	Stage Stage  `json:"stage"`
	Kind  string `json:"kind"`
	// Act is the citation-form title of the act the event occurred in,
	// empty for issue-level events.
	Act       string    `json:"act,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Common event kinds.
const (
	KindFurnitureDropped = "furniture_dropped"
	KindUnclassified     = "unclassified_line"
	KindFrontMatter      = "front_matter"
	KindFooterDropped    = "footer_dropped"
	KindMalformedAct     = "malformed_act"
	KindStructural       = "structural_warning"
	KindPhraseDemoted    = "phrase_demoted"
)

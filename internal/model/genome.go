package model

import "time"

// RunStatus represents the current state of a classification run.
type RunStatus string

const (
	RunStatusQueued      RunStatus = "queued"
	RunStatusRenaming    RunStatus = "renaming"
	RunStatusSearching   RunStatus = "searching"
	RunStatusAggregating RunStatus = "aggregating"
	RunStatusClassifying RunStatus = "classifying"
	RunStatusAttributing RunStatus = "attributing"
	RunStatusAssembling  RunStatus = "assembling"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Genome is one input unit: a protein complement read from a single FASTA
// file. OriginalID is the file base name as supplied by the caller;
// InternalID is the run-scoped safe identifier assigned by the identity map.
type Genome struct {
	OriginalID string `json:"original_id"`
	InternalID string `json:"internal_id"`
	Proteins   int    `json:"proteins"`
}

// HitRecord is one observed alignment between a protein and a marker model,
// as reported by the homology search. Genome and Protein carry internal ids.
type HitRecord struct {
	Genome  string  `json:"genome"`
	Protein string  `json:"protein"`
	Model   string  `json:"model"`
	EValue  float64 `json:"evalue"`
	Score   float64 `json:"score"`
}

// Prediction is the classifier output for one genome (internal id).
type Prediction struct {
	Genome string  `json:"genome"`
	Score  float64 `json:"score"`
}

// AttributionRecord is one material per-feature contribution to a genome's
// score, joined back to annotation and the contributing protein. Identifiers
// are original ids; Protein is "absent" when the feature fired on no protein.
type AttributionRecord struct {
	Genome       string  `json:"genome_id"`
	Feature      string  `json:"feature"`
	Contribution float64 `json:"contribution"`
	Bitscore     float64 `json:"bitscore"`
	Annotation   string  `json:"functional_annotation"`
	Protein      string  `json:"protein_id"`
}

// Completeness is the fraction of the universal single-copy marker set
// detected in one genome (internal id), expressed as a percentage.
type Completeness struct {
	Genome  string  `json:"genome"`
	Percent float64 `json:"percent"`
}

// ThresholdCounts are the per-genome summary features derived from the
// marker feature matrix.
type ThresholdCounts struct {
	Genome string `json:"genome"`
	GT0    int    `json:"features_gt0"`
	GE20   int    `json:"features_ge20"`
	GE100  int    `json:"features_ge100"`
}

// ResultRow is one final per-genome record, all identifiers reversed to
// original form and numeric values rounded for presentation.
type ResultRow struct {
	Genome       string  `json:"genome_id"`
	Completeness float64 `json:"completeness_percent"`
	GT0          int     `json:"features_gt0"`
	GE20         int     `json:"features_ge20"`
	GE100        int     `json:"features_ge100"`
	Score        float64 `json:"symcla_score"`
}

// Run represents a single classification run over one input directory.
type Run struct {
	ID        string     `json:"id"`
	InputDir  string     `json:"input_dir"`
	OutDir    string     `json:"out_dir"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a run.
type RunResult struct {
	Genomes       int           `json:"genomes"`
	FreeLiving    int           `json:"free_living"`
	HostAssoc     int           `json:"host_associated"`
	Intracellular int           `json:"intracellular"`
	MeanScore     float64       `json:"mean_score"`
	MeanComplete  float64       `json:"mean_completeness"`
	Phases        []PhaseResult `json:"phases"`
	Report        string        `json:"report"`
	Error         string        `json:"error,omitempty"`
}

// RunPhase represents a phase within a run.
type RunPhase struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    PhaseStatus  `json:"status"`
	Result    *PhaseResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// PhaseStatus represents the current state of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusRunning  PhaseStatus = "running"
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string         `json:"name"`
	Status   PhaseStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ClassifyResult is the final output of the pipeline for one run.
type ClassifyResult struct {
	RunID         string              `json:"run_id"`
	Rows          []ResultRow         `json:"rows"`
	Contributions []AttributionRecord `json:"contributions"`
	Report        string              `json:"report"`
	Phases        []PhaseResult       `json:"phases"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned when the persona or job-to-be-done is blank.
	ErrEmptyQuery = errors.New("persona and job_to_be_done cannot be empty")

	// ErrNoSections is returned when no document yielded a single heading,
	// so there is nothing to rank.
	ErrNoSections = errors.New("no sections extracted from any document")
)

// Query describes who is reading and what they are trying to get done.
type Query struct {
	Persona     string `json:"persona" yaml:"persona"`
	JobToBeDone string `json:"job_to_be_done" yaml:"job_to_be_done"`
}

// Validate checks that both fields carry non-blank text.
func (q Query) Validate() error {
	var missing []string
	if strings.TrimSpace(q.Persona) == "" {
		missing = append(missing, "persona")
	}
	if strings.TrimSpace(q.JobToBeDone) == "" {
		missing = append(missing, "job_to_be_done")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrEmptyQuery, strings.Join(missing, ", "))
	}
	return nil
}

// Sentence renders the query as the single sentence used for semantic
// scoring.
func (q Query) Sentence() string {
	return fmt.Sprintf("As a %s, my goal is to %s.", q.Persona, q.JobToBeDone)
}

// ScoredSection is a ranking candidate after scoring.
type ScoredSection struct {
	Document       string  `json:"document" yaml:"document"`
	Page           int     `json:"page_number" yaml:"page_number"`
	SectionTitle   string  `json:"section_title" yaml:"section_title"`
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// RefinedText is empty when the section was not refined.
	RefinedText string `json:"refined_text,omitempty" yaml:"refined_text,omitempty"`

	// Body is the resolved section text handed to the summariser.
	Body string `json:"-" yaml:"-"`
}

// ExtractedSection is one ranked entry of the result artifact.
type ExtractedSection struct {
	Document       string `json:"document" yaml:"document"`
	Page           int    `json:"page_number" yaml:"page_number"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
}

// SubsectionAnalysis is the refined text of one top-ranked section.
type SubsectionAnalysis struct {
	Document    string `json:"document" yaml:"document"`
	Page        int    `json:"page_number" yaml:"page_number"`
	RefinedText string `json:"refined_text" yaml:"refined_text"`
}

// RankedOutput is what the ranking orchestrator produces.
type RankedOutput struct {
	ExtractedSections  []ExtractedSection   `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis" yaml:"subsection_analysis"`

	// Scored carries every candidate in rank order with its score.
	Scored []ScoredSection `json:"-" yaml:"-"`
}

// Metadata describes the inputs of an analysis run.
type Metadata struct {
	InputDocuments      []string `json:"input_documents" yaml:"input_documents"`
	Persona             string   `json:"persona" yaml:"persona"`
	JobToBeDone         string   `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp" yaml:"processing_timestamp"`
	Scorer              string   `json:"scorer,omitempty" yaml:"scorer,omitempty"`
	RunID               string   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// Result is the JSON artifact of an analysis run. Field names are part of
// the external contract.
type Result struct {
	Metadata           Metadata             `json:"metadata" yaml:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis" yaml:"subsection_analysis"`
}

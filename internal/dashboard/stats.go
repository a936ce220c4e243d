package dashboard

import (
	"fmt"
	"math"

	"slate/internal/takes"
)

// Issues tallies takes flagged per issue category.
type Issues struct {
	Focus      int `json:"focus"`
	Audio      int `json:"audio"`
	Continuity int `json:"continuity"`
	Narrative  int `json:"narrative"`
}

// Stats is the aggregate view over all takes. Field names match what the
// dashboard frontend consumes.
type Stats struct {
	TotalFootage       string  `json:"totalFootage"`
	ProcessingProgress float64 `json:"processingProgress"`
	AIConfidenceHealth float64 `json:"aiConfidenceHealth"`
	Issues             Issues  `json:"issues"`
	ApprovedCount      int     `json:"approvedCount"`
	PendingReviewCount int     `json:"pendingReviewCount"`
	TotalTakes         int     `json:"totalTakes"`
}

// Aggregate computes dashboard statistics from the take list. With no takes
// every numeric field is zero and footage reads "0h 0m".
func Aggregate(list []*takes.Take) Stats {
	stats := Stats{TotalFootage: "0h 0m"}
	if len(list) == 0 {
		return stats
	}
	stats.TotalTakes = len(list)

	totalSeconds := 0.0
	processed := 0
	confidenceSum := 0.0
	confidenceCount := 0
	for _, take := range list {
		totalSeconds += take.Duration()
		if take.Processed() {
			processed++
		}
		if c := take.Confidence(); c > 0 {
			confidenceSum += c
			confidenceCount++
		}

		if flagged(take.Metadata(takes.NamespaceCV)["focus_issues"]) {
			stats.Issues.Focus++
		}
		if flagged(take.Metadata(takes.NamespaceAudio)["issues"]) {
			stats.Issues.Audio++
		}
		nlp := take.Metadata(takes.NamespaceNLP)
		if flagged(nlp["continuity_breaks"]) {
			stats.Issues.Continuity++
		}
		if flagged(nlp["narrative_gaps"]) {
			stats.Issues.Narrative++
		}

		switch take.AcceptStatus {
		case takes.AcceptAccepted:
			stats.ApprovedCount++
		case takes.AcceptPending:
			stats.PendingReviewCount++
		}
	}

	stats.TotalFootage = formatDuration(totalSeconds)
	stats.ProcessingProgress = round1(float64(processed) / float64(len(list)) * 100)
	if confidenceCount > 0 {
		stats.AIConfidenceHealth = round1(confidenceSum / float64(confidenceCount))
	}
	return stats
}

// flagged treats a metadata value as an issue marker when it is truthy: a
// non-empty list, a true bool, or a non-zero number.
func flagged(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case []any:
		return len(v) > 0
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

func formatDuration(seconds float64) string {
	if seconds == 0 {
		return "0h 0m"
	}
	total := int(seconds)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

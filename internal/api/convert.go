package api

import (
	"time"

	"slate/internal/takes"
)

// FromTake converts a stored take into its transport shape.
func FromTake(take *takes.Take) Take {
	if take == nil {
		return Take{}
	}
	return Take{
		ID:              take.ID,
		ProjectID:       take.ProjectID,
		FileName:        take.FileName,
		FilePath:        take.FilePath,
		DurationSeconds: take.DurationSeconds,
		ConfidenceScore: take.ConfidenceScore,
		AcceptStatus:    string(take.AcceptStatus),
		AIMetadata:      take.AIMetadata,
		AIReasoning:     take.AIReasoning,
		CreatedAt:       formatTime(take.CreatedAt),
		UpdatedAt:       formatTime(take.UpdatedAt),
	}
}

// FromTakes converts a take list.
func FromTakes(list []*takes.Take) []Take {
	if len(list) == 0 {
		return nil
	}
	out := make([]Take, 0, len(list))
	for _, take := range list {
		out = append(out, FromTake(take))
	}
	return out
}

// FromProject converts a stored project into its transport shape.
func FromProject(project *takes.Project) Project {
	if project == nil {
		return Project{}
	}
	return Project{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Settings:    project.Settings,
		CreatedAt:   formatTime(project.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// Package services carries cross-cutting helpers shared by pipeline stages
// and their collaborators: sentinel error markers with consistent wrapping,
// and context annotations (take ID, stage, request ID) that feed structured
// logging.
package services

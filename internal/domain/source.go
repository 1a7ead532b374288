package domain

// Source records which path produced a stage result.
type Source string

const (
	// SourceRemote means the generative service answered and its reply was used.
	SourceRemote Source = "remote"
	// SourceFallback means the deterministic template was used.
	SourceFallback Source = "fallback"
)

package turn

import (
	"regexp"
	"strings"
)

// Sentinel is the marker the conversation model appends once enough
// information has been collected. It must never reach the user.
const Sentinel = "[READY]"

// retryPattern matches replies where the assistant agrees to re-run the
// search for a refinement ("let me search again", and the original Korean
// phrasings the conversation model may still produce).
var retryPattern = regexp.MustCompile(`(?i)(search again|look again|re-search|find .* again|다시.*찾아볼게요|다시.*추천|재검색)`)

// ReadinessDetector decides whether a conversation reply signals that
// information collection is complete, and returns the user-visible text.
// Kept behind an interface so the detection strategy can change without
// touching the orchestrator.
type ReadinessDetector interface {
	Detect(reply string) (ready bool, cleaned string)
}

// SentinelDetector is the production detector: readiness is the sentinel
// marker or a retry phrase, and the sentinel is stripped before delivery.
type SentinelDetector struct{}

func (SentinelDetector) Detect(reply string) (bool, string) {
	ready := strings.Contains(reply, Sentinel) || retryPattern.MatchString(reply)
	cleaned := strings.TrimSpace(strings.ReplaceAll(reply, Sentinel, ""))
	return ready, cleaned
}

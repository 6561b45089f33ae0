package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	// NoMatchReply is appended when retrieval stays empty after every
	// relaxation tier. Reported as a normal outcome, never as an error.
	NoMatchReply = "Sorry, I couldn't find any treats matching all of those conditions. Shall we relax one of them and try again?"

	// RankingFallbackReply is used when the model produced an unusable
	// ranking over a non-empty candidate set.
	RankingFallbackReply = "Sorry, something went wrong while picking the best matches. Please try asking again."
)

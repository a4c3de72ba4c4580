package models

const (
	// VectorSize matches the embedding model's output dimensionality.
	VectorSize = 768

	DefaultChunkSize      = 2000
	DefaultMatchThreshold = 0.0
	DefaultMatchCount     = 10

	// TopSections caps how many ranked candidates make it into the prompt
	// context. Intentionally smaller than DefaultMatchCount: the match count
	// widens the candidate pool, this narrows it for prompt-size control.
	TopSections = 5

	ContextSeparator = "\n\n==================================================\n\n"
)

var (
	// AnswerPromptTemplate embeds the assembled context and the question.
	// Policy text, overridable via rag.prompt_template in the config.
	AnswerPromptTemplate = `You are an AI assistant helping to answer questions based on email content. Use the provided context to answer the question as accurately as possible.

Context from emails:
%s

Question: %s

Instructions:
- When matching names, be flexible with email addresses that contain the person's name
- Extract the core name from email addresses (before the @ symbol and before any dots or numbers)
- Connect names from email metadata (sender, recipient, subject) with preferences and facts mentioned in the email content
- If someone sends an email stating a preference, associate that preference with the sender
- If an email from person A mentions that person B prefers C, connect person B with C
- If you can find relevant information by matching names with email addresses, give a direct answer
- Only say you don't know if there is truly no relevant information after checking both metadata and content with flexible name matching

Answer:`
)

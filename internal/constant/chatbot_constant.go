package constant

// SystemPrompt is the base persona for the chat assistant. Live context
// blocks (weather, news) are appended per-request by the prompt builder.
const SystemPrompt = `You are a helpful, concise AI assistant. Answer the user's questions directly and accurately. When you are unsure, say so instead of guessing. Keep answers short unless the user asks for detail.`

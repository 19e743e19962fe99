package suggest

// Prompt instructs the agent to return raw candidate tags. The tagger
// validates and writes them itself, so the agent must not edit any file.
const Prompt = `Analyze the markdown document provided on stdin and suggest 2-5 relevant one-word tags that describe the topic, technology, or type of content.

Requirements:
- Tags must be single words only (no spaces)
- Tags must be lowercase
- Tags should be relevant and descriptive
- Use the same language as the document content (if the document is in Norwegian, use Norwegian tags; if in English, use English tags; etc.)
- Examples:
  - English: python, debugging, react, tutorial, planning
  - Norwegian: programmering, feilsøking, veiledning, planlegging
  - German: programmierung, fehlersuche, anleitung, planung

Respond with only the tags, one per line. Do not edit any files and do not output anything else.`

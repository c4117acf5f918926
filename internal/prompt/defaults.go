package prompt

// DefaultMapPrompt is applied to every chunk by the map-reduce strategy.
const DefaultMapPrompt = `Write a summary of this chunk of text that includes the main points and any important details.
{text}
`

// DefaultCombinePrompt merges the per-chunk summaries into bullet points.
const DefaultCombinePrompt = "Write a concise summary of the following text delimited by triple backquotes.\n" +
	"Return your response in bullet points which covers the key points of the text.\n" +
	"```{text}```\n" +
	"BULLET POINT SUMMARY:\n"

// DefaultQuestionPrompt summarizes the first chunk of a refine run.
const DefaultQuestionPrompt = `Please provide a summary of the following text.
TEXT: {text}
SUMMARY:
`

// DefaultRefinePrompt folds one more chunk into the running summary.
const DefaultRefinePrompt = `Your job is to produce a final summary.
We have provided an existing summary up to a certain point: {existing_answer}
We have the opportunity to refine the existing summary (only if needed) with some more context below.
------------
{text}
------------
Given the new context, refine the original summary. If the context isn't useful, return the original summary.
`

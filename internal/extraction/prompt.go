package extraction

import (
	"bytes"
	"encoding/json"
	"text/template"
)

// systemPrompt instructs the model to mine a notebook page for unfinished
// questions or tasks that call for web research, and to answer with a
// fenced JSON array. Omitting the code block entirely is the expected way
// for the model to say "no tasks here".
const systemPrompt = `You are a research assistant helping me identify web research tasks from my personal notebook.

You will be given a markdown page from my notebook, which can contain notes, tasks and questions.

## Instructions:
### Preparation
- Read the metadata/context for context of the page (it can hint at the purpose of the page)
- Analyze the content for questions or tasks which I gave myself, which are unfinished
    - ` + "`- [x]`" + ` means it is already completed and you can ignore it
    - The page may also state in prose that a task is already completed
- For each remaining question/task, ask: how can this be answered?
    - Some require me to think and answer personally
    - Some require me to physically do things away from the computer
    - Some are factual questions that require going online
        - If so, what is/are the web search query/queries?

### Your main task
Select the questions/tasks which require web search queries as your final answer.
- Extract the original quote that suggests web research is needed into ` + "`title`" + `
- Rephrase that quote into a web research question I can delegate, in ` + "`description`" + `
- Include the web search queries you would make in ` + "`web_search_queries`" + `

### Tips
- The ` + "`- [ ]`" + ` form is a potential indicator of a task
- Tasks can also appear in natural language without that form, so pay attention to context
- The notebook can contain ordinary notes with no questions or tasks at all

## Response format:

Return web research tasks as a JSON array enclosed in a code block. All of
` + "`title`, `description` and `web_search_queries`" + ` are required:

` + "```json" + `
[
    {
        "title": "Original quote from the page suggesting web research is needed",
        "description": "The web research question to be answered, phrased so it can be delegated",
        "web_search_queries": "The web search queries to make, as a string"
    }
]
` + "```" + `

Remember that JSON does not use trailing commas.
If there are no relevant web research questions/tasks, omit the JSON code block.`

// humanPromptText is the per-unit message carrying the page itself.
const humanPromptText = `## Context/Metadata:
{{.Context}}

## Content to analyze:
{{.Content}}`

var humanPrompt = template.Must(template.New("human").Parse(humanPromptText))

type promptData struct {
	Context string
	Content string
}

// buildUserPrompt renders the human message for one source unit. Metadata
// is serialized to JSON so arbitrary frontmatter shapes survive the trip.
func buildUserPrompt(content string, meta map[string]any) (string, error) {
	contextStr := "(none)"
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err == nil {
			contextStr = string(b)
		}
	}

	var buf bytes.Buffer
	if err := humanPrompt.Execute(&buf, promptData{Context: contextStr, Content: content}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

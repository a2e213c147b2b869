package pipeline

// templatePlaceholder marks where generated content lands in a proposal
// template.
const templatePlaceholder = "{{content}}"

const defaultProposalTemplate = "{{content}}"

// builtinTemplates are the proposal layouts shipped with the server.
// Deployments can extend the set through configuration.
var builtinTemplates = map[string]string{
	"default": defaultProposalTemplate,
	"formal": "## Background\n\n" +
		"This proposal was prepared from the project's design documents.\n\n" +
		"## Proposal\n\n{{content}}\n\n" +
		"## Next Steps\n\n" +
		"Review the proposal with the project stakeholders.",
}

// resolveTemplate returns the template body for id and whether it was
// found. Unknown ids fall back to the default layout; the executor
// records a warning instead of failing the run.
func resolveTemplate(templates map[string]string, id string) (string, bool) {
	if id == "" {
		return defaultProposalTemplate, true
	}
	if tmpl, ok := templates[id]; ok {
		return tmpl, true
	}
	if tmpl, ok := builtinTemplates[id]; ok {
		return tmpl, true
	}
	return defaultProposalTemplate, false
}

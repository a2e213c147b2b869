package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkanno/craftline/internal/domain/artifact"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain text", "plain text"},
		{"bare fence", "```\ncode here\n```", "code here"},
		{"language tag", "```go\npackage main\n```", "package main"},
		{"fence on one line kept", "```{\"a\": 1}```", "{\"a\": 1}"},
		{"surrounding whitespace", "  \n```js\nconsole.log(1)\n```\n ", "console.log(1)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, stripCodeFences(tc.in))
		})
	}
}

func TestExtractJSON(t *testing.T) {
	blob, err := extractJSON("Here you go:\n```json\n{\"score\": 85}\n```\nHope that helps!")
	require.NoError(t, err)
	require.JSONEq(t, `{"score": 85}`, string(blob))

	_, err = extractJSON("no structured data at all")
	require.Error(t, err)
}

func TestInterpretConsistencyOutput(t *testing.T) {
	in := stageInputs{
		project:  testProject(),
		document: &artifact.Artifact{Title: "requirements", Kind: artifact.KindDocument},
	}
	raw := `{"score": 62, "issues": [{"type": "requirements", "description": "missing auth flow", "severity": "high"}], "suggestions": "add it"}`

	content, err := interpretOutput(StageConsistencyCheck, in, raw, nil)
	require.NoError(t, err)

	check, ok := content.(artifact.QualityCheck)
	require.True(t, ok)
	require.Equal(t, float64(62), check.Score)
	require.Len(t, check.Issues, 1)
	require.Equal(t, artifact.SeverityHigh, check.Issues[0].Severity)
}

func TestInterpretMalformedJSONFails(t *testing.T) {
	in := stageInputs{project: testProject()}
	_, err := interpretOutput(StageWorkEstimation, in, `{"total_hours": "forty"}`, nil)
	require.Error(t, err)
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	in := stageInputs{
		project: testProject(),
		params:  Params{DocumentType: "requirements"},
	}
	first := buildPrompt(StageDocumentGeneration, in)
	second := buildPrompt(StageDocumentGeneration, in)
	require.Equal(t, first, second)
	require.Contains(t, first.System, "requirements")
	require.Contains(t, first.User, "Inventory System")
}

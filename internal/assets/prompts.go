// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at
// compile time.
package assets

import (
	"bytes"
	_ "embed"
	"text/template"
)

// LiveSystemPrompt is the system instruction for the realtime creative
// director session.
//
//go:embed prompts/live-system.txt
var LiveSystemPrompt string

//go:embed prompts/blueprint-engine.txt
var blueprintEngineTemplate string

var blueprintTmpl = template.Must(template.New("blueprint-engine").Parse(blueprintEngineTemplate))

// BlueprintPrompt renders the storyboard engine instruction for the given
// user text.
func BlueprintPrompt(userText string) (string, error) {
	var buf bytes.Buffer
	err := blueprintTmpl.Execute(&buf, struct{ UserText string }{UserText: userText})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

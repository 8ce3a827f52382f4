package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullInput() *Input {
	return &Input{
		Profile: TenantProfile{
			Name:           "Acme Robotics",
			About:          "Industrial automation for mid-size factories",
			WebsiteSummary: "Acme builds robotic arms and conveyor systems.",
			ToneGuidelines: "Confident, concrete, no buzzwords",
		},
		Template: TemplateInfo{
			Name:          "Business Plan",
			ToneReference: "Formal investor-facing language",
		},
		SectionName: "Executive Summary",
		PriorSections: []PriorSection{
			{Name: "Company Overview", Content: "Acme was founded in 2019."},
		},
		CustomInstruction: "Mention the Series A round",
	}
}

func TestComposeDeterministic(t *testing.T) {
	in := fullInput()

	a := Compose(in)
	b := Compose(in)

	assert.Equal(t, a.System, b.System)
	assert.Equal(t, a.User, b.User)
}

func TestComposeSystemPrompt(t *testing.T) {
	p := Compose(fullInput())

	assert.Contains(t, p.System, `"Executive Summary" section of a Business Plan document`)
	assert.Contains(t, p.System, "- Company: Acme Robotics")
	assert.Contains(t, p.System, "- About: Industrial automation for mid-size factories")
	assert.Contains(t, p.System, "- Website Summary: Acme builds robotic arms and conveyor systems.")
	assert.Contains(t, p.System, "- Tone Guidelines: Confident, concrete, no buzzwords")
	assert.Contains(t, p.System, "- Template Style Reference: Formal investor-facing language")
	// 有前文时出现第 6 条指令
	assert.Contains(t, p.System, "6. Ensure flow and consistency with previous sections")
}

func TestComposeUserPrompt(t *testing.T) {
	p := Compose(fullInput())

	assert.True(t, strings.HasPrefix(p.User, `Generate the "Executive Summary" section for this Business Plan.`))
	assert.Contains(t, p.User, "Previous sections for context:")
	assert.Contains(t, p.User, "**Company Overview:**")
	assert.Contains(t, p.User, "Acme was founded in 2019.")
	assert.Contains(t, p.User, "Additional requirements: Mention the Series A round")
}

func TestComposeOmitsEmptyOptionalLines(t *testing.T) {
	in := fullInput()
	in.Profile.WebsiteSummary = ""
	in.Profile.ToneGuidelines = ""
	in.Template.ToneReference = ""
	in.PriorSections = nil
	in.CustomInstruction = ""

	p := Compose(in)

	assert.NotContains(t, p.System, "Website Summary")
	assert.NotContains(t, p.System, "Tone Guidelines")
	assert.NotContains(t, p.System, "Template Style Reference")
	assert.NotContains(t, p.System, "6. Ensure flow")
	assert.NotContains(t, p.User, "Previous sections for context")
	assert.NotContains(t, p.User, "Additional requirements")
}

func TestComposeTruncatesWebsiteSummary(t *testing.T) {
	in := fullInput()
	in.Profile.WebsiteSummary = strings.Repeat("a", 600)

	p := Compose(in)

	assert.Contains(t, p.System, strings.Repeat("a", 500)+"...")
	assert.NotContains(t, p.System, strings.Repeat("a", 501))
}

func TestComposeTruncatesPriorSections(t *testing.T) {
	in := fullInput()
	in.PriorSections = []PriorSection{
		{Name: "Long", Content: strings.Repeat("b", 300)},
	}

	p := Compose(in)

	assert.Contains(t, p.User, strings.Repeat("b", 200)+"...")
	assert.NotContains(t, p.User, strings.Repeat("b", 201))
}

func TestTruncateMultibyteSafe(t *testing.T) {
	s := strings.Repeat("中", 10)

	out := truncate(s, 4)

	require.Equal(t, strings.Repeat("中", 4)+"...", out)
	// 不超限时原样返回
	assert.Equal(t, s, truncate(s, 10))
}

func TestDescriptor(t *testing.T) {
	in := fullInput()
	assert.Equal(t, "Section: Executive Summary | Custom: Mention the Series A round", in.Descriptor())

	in.CustomInstruction = ""
	assert.Equal(t, "Section: Executive Summary", in.Descriptor())
}

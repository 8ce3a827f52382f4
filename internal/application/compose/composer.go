// Package compose 提供提示词组装能力
//
// Compose 是纯函数：相同输入产生字节一致的输出，不访问网络与存储，
// 截断规则（档案摘要 500 字符、前文章节 200 字符）用于约束提示词体积
package compose

import (
	"fmt"
	"strings"
)

const (
	// websiteExcerptLimit 网站摘要截断长度
	websiteExcerptLimit = 500
	// priorSectionExcerptLimit 前文章节内容截断长度
	priorSectionExcerptLimit = 200
	// truncationMarker 截断标记
	truncationMarker = "..."
)

// TenantProfile 组装所需的租户档案
type TenantProfile struct {
	Name           string
	About          string
	WebsiteSummary string
	ToneGuidelines string
}

// TemplateInfo 组装所需的模板信息
type TemplateInfo struct {
	Name          string
	ToneReference string
}

// PriorSection 排在目标章节之前的已有章节
type PriorSection struct {
	Name    string
	Content string
}

// Input Compose 的完整输入
type Input struct {
	Profile           TenantProfile
	Template          TemplateInfo
	SectionName       string
	PriorSections     []PriorSection
	CustomInstruction string
}

// PromptPayload 结构化提示词载荷
type PromptPayload struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Descriptor 返回用于审计记录的提示词摘要
func (in *Input) Descriptor() string {
	if in.CustomInstruction != "" {
		return fmt.Sprintf("Section: %s | Custom: %s", in.SectionName, in.CustomInstruction)
	}
	return fmt.Sprintf("Section: %s", in.SectionName)
}

// Compose 组装生成请求
// 必填字段始终出现；可选字段为空时整行省略而非留空
func Compose(in *Input) *PromptPayload {
	var system strings.Builder

	fmt.Fprintf(&system, "You are an expert business document writer. Generate professional, well-structured content for the %q section of a %s document.\n\n",
		in.SectionName, in.Template.Name)
	fmt.Fprintf(&system, "Company Context:\n- Company: %s\n- About: %s", in.Profile.Name, in.Profile.About)

	if in.Profile.WebsiteSummary != "" {
		fmt.Fprintf(&system, "\n- Website Summary: %s", truncate(in.Profile.WebsiteSummary, websiteExcerptLimit))
	}
	if in.Profile.ToneGuidelines != "" {
		fmt.Fprintf(&system, "\n- Tone Guidelines: %s", in.Profile.ToneGuidelines)
	}
	if in.Template.ToneReference != "" {
		fmt.Fprintf(&system, "\n- Template Style Reference: %s", in.Template.ToneReference)
	}

	fmt.Fprintf(&system, "\n\nInstructions:\n")
	fmt.Fprintf(&system, "1. Write content specifically for the %q section\n", in.SectionName)
	fmt.Fprintf(&system, "2. Maintain consistency with the company's tone and style\n")
	fmt.Fprintf(&system, "3. Keep content professional and relevant to %s\n", in.Template.Name)
	fmt.Fprintf(&system, "4. Make it actionable and specific to %s\n", in.Profile.Name)
	fmt.Fprintf(&system, "5. Length should be appropriate for the section (typically 2-4 paragraphs)")
	if len(in.PriorSections) > 0 {
		fmt.Fprintf(&system, "\n6. Ensure flow and consistency with previous sections")
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Generate the %q section for this %s.", in.SectionName, in.Template.Name)

	if len(in.PriorSections) > 0 {
		fmt.Fprintf(&user, "\n\nPrevious sections for context:\n")
		for _, s := range in.PriorSections {
			fmt.Fprintf(&user, "\n**%s:**\n%s\n", s.Name, truncate(s.Content, priorSectionExcerptLimit))
		}
	}

	if in.CustomInstruction != "" {
		fmt.Fprintf(&user, "\n\nAdditional requirements: %s", in.CustomInstruction)
	}

	return &PromptPayload{
		System: system.String(),
		User:   user.String(),
	}
}

// truncate 按字符数截断并追加标记，多字节安全
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationMarker
}

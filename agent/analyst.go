// Package agent wraps the Gemini API into a small financial analyst that
// turns rendered reports into plain-language summaries the family can read.
package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Analyst is a chat with a financial analyst persona. It keeps the chat
// session so follow-up reports share context within one run.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAnalyst creates the analyst. The session starts lazily on first use.
func NewAnalyst() *Analyst {
	return &Analyst{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a careful financial analyst helping a family with their
			monthly investment routine. You receive their reports in markdown:
			buy plans, profit and loss reviews, projections.

			Summarize what the report says in plain language, a short paragraph
			and a few bullet points at most. Point out anything that deserves
			attention: concentration, an asset far from its target, a price that
			could not be fetched. Never invent figures that are not in the
			report, and never present your summary as investment advice.
		`}}},
		},
	}
}

// Start creates the underlying chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends parts to the analyst and returns the text of its answer.
func (a *Analyst) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the analyst")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// Summarize sends a rendered report and returns the analyst's summary.
func (a *Analyst) Summarize(ctx context.Context, client *genai.Client, report string) (string, error) {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return "", err
		}
	}
	return a.Ask(ctx, &genai.Part{Text: "Summarize this report:\n\n" + report})
}

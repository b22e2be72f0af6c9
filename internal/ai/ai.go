// Package ai talks to the language model that scores entries and suggests prompts.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"journal-go/internal/journal"
	"journal-go/internal/model"
)

const (
	analysisMaxTokens = 300
	promptMaxTokens   = 150
)

const analysisSystemPrompt = `You are an assistant that analyzes journal entries for emotional content. Provide accurate sentiment analysis, concise summaries, and relevant life-area tags.`

const reflectionSystemPrompt = `You are a supportive and thoughtful journaling companion. Based on the user's journal entry, provide a gentle, open-ended reflection prompt that encourages deeper thinking. The prompt should be:
- 1-2 sentences maximum
- Warm and supportive in tone
- Open-ended (not yes/no questions)
- Related to the themes or emotions mentioned in their entry
- Something they could ponder throughout the day

Examples:
- "What would it look like to bring more of that sense of accomplishment into your daily routine?"
- "How might you approach tomorrow with the same patience you showed today?"
- "What small step could you take this week to build on this positive momentum?"`

const writingSystemPrompt = `You are a supportive writing coach who helps people reflect on their day through journaling. Provide gentle, encouraging prompts that help people explore their thoughts and emotions.`

// completer sends one system+user exchange to the model and returns its text.
type completer interface {
	complete(ctx context.Context, system, user string, maxTokens int64) (string, error)
}

// Assistant is everything the journal needs from a model.
type Assistant interface {
	journal.Analyzer
	journal.Prompter
}

// AnthropicClient implements Assistant on the Anthropic Messages API.
type AnthropicClient struct {
	c completer
}

// NewAnthropicClient creates a client for the given model.
func NewAnthropicClient(apiKey, modelName string, maxTokens int64) *AnthropicClient {
	return &AnthropicClient{c: &messagesCompleter{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     modelName,
		maxTokens: maxTokens,
	}}
}

func newClientWithCompleter(c completer) *AnthropicClient {
	return &AnthropicClient{c: c}
}

// Analyze scores an entry. The result is already clamped.
func (a *AnthropicClient) Analyze(ctx context.Context, content string) (model.Analysis, error) {
	text, err := a.c.complete(ctx, analysisSystemPrompt, analysisUserPrompt(content), analysisMaxTokens)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("requesting analysis: %w", err)
	}
	analysis, err := ParseAnalysis(text)
	if err != nil {
		return model.Analysis{}, err
	}
	return analysis, nil
}

func (a *AnthropicClient) ReflectionPrompt(ctx context.Context, content string) (string, error) {
	user := "Generate a reflection prompt based on this journal entry: " + content
	text, err := a.c.complete(ctx, reflectionSystemPrompt, user, promptMaxTokens)
	if err != nil {
		return "", fmt.Errorf("requesting reflection prompt: %w", err)
	}
	return cleanPrompt(text)
}

func (a *AnthropicClient) WritingStarter(ctx context.Context, current string) (string, error) {
	text, err := a.c.complete(ctx, writingSystemPrompt, writingUserPrompt(current), promptMaxTokens)
	if err != nil {
		return "", fmt.Errorf("requesting writing starter: %w", err)
	}
	return cleanPrompt(text)
}

func analysisUserPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following journal entry and provide:
1. A sentiment score from -5 (very negative) to +5 (very positive)
2. A brief summary (1-2 sentences)
3. 1-3 tags naming the areas of life the entry is about, chosen only from: %s
4. A memory weight from 1-10 indicating how memorable/significant this entry is

Memory weight guidelines:
- 1-3: Routine daily activities, minor annoyances, normal work days
- 4-6: Notable events, moderate emotions, personal insights
- 7-8: Significant life events, strong emotions, important decisions
- 9-10: Major life changes, intense emotions, breakthrough moments, major achievements/failures

Consider emotional intensity, life significance, personal breakthroughs, relationship milestones, and writing style.

Journal entry: %q

Respond with only this JSON object:
{
  "sentiment_score": number,
  "summary": "string",
  "tags": ["string"],
  "memory_weight": number
}`, strings.Join(model.LifeAreas, ", "), content)
}

func writingUserPrompt(current string) string {
	var b strings.Builder
	b.WriteString("I'm helping someone write a journal entry. ")
	if strings.TrimSpace(current) != "" {
		fmt.Fprintf(&b, "They've already written: %q", current)
	} else {
		b.WriteString("They haven't started writing yet.")
	}
	b.WriteString(`

Please provide a warm, supportive writing prompt or starter that encourages self-reflection and emotional awareness. The response should be:
- Gentle and encouraging
- Open-ended (not too specific)
- Focused on emotional exploration
- 1-2 sentences maximum
- Something they can immediately start writing with

Examples of good starters:
- "Today I noticed..."
- "I'm feeling grateful for..."
- "Something that challenged me today was..."
- "A moment that brought me joy was..."

Please provide just the writing starter, nothing else.`)
	return b.String()
}

func cleanPrompt(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

type messagesCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func (m *messagesCompleter) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	if m.maxTokens > 0 && m.maxTokens < maxTokens {
		maxTokens = m.maxTokens
	}
	response, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system, Type: "text"}},
		Messages: []anthropic.MessageParam{{
			Role:    anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{OfText: &anthropic.TextBlockParam{Text: user, Type: "text"}}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no response content from anthropic")
	}
	for _, content := range response.Content {
		if content.Type == "text" && content.Text != "" {
			return content.Text, nil
		}
	}
	return "", fmt.Errorf("unexpected response format from anthropic")
}

var _ Assistant = (*AnthropicClient)(nil)

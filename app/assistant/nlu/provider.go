package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	mdl "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/session"
)

const (
	extractToolName = "submit_entities"

	callTimeout = 7 * time.Second
)

// Provider wraps the ark chat model behind the two calls the pipeline makes:
// shape-validated entity extraction and free-form reply generation.
type Provider struct {
	chatModel *ark.ChatModel
}

func NewProvider(chatModel *ark.ChatModel) *Provider {
	return &Provider{chatModel: chatModel}
}

// ExtractEntities forces a single tool call so the model output arrives as
// arguments matching the entity schema instead of prose.
func (p *Provider) ExtractEntities(ctx context.Context, req intent.ProviderRequest) (*intent.Entities, error) {
	if p == nil || p.chatModel == nil {
		return nil, fmt.Errorf("chat model unavailable")
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	msg, err := p.chatModel.Generate(
		ctx,
		extractMessages(req),
		mdl.WithTools([]*schema.ToolInfo{extractTool()}),
		mdl.WithToolChoice(schema.ToolChoiceForced),
	)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("empty model message")
	}

	for _, tc := range msg.ToolCalls {
		if !strings.EqualFold(tc.Function.Name, extractToolName) {
			continue
		}
		var entities intent.Entities
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &entities); err != nil {
			return nil, fmt.Errorf("unmarshal entities: %w", err)
		}
		return &entities, nil
	}
	return nil, fmt.Errorf("entity tool payload missing")
}

// GenerateText runs a plain generation for reply composition.
func (p *Provider) GenerateText(ctx context.Context, system string, history []session.Message, user string) (string, error) {
	if p == nil || p.chatModel == nil {
		return "", fmt.Errorf("chat model unavailable")
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(system))
	for _, m := range history {
		switch m.Role {
		case session.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		case session.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		}
	}
	msgs = append(msgs, schema.UserMessage(user))

	msg, err := p.chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("empty model reply")
	}
	return strings.TrimSpace(msg.Content), nil
}

func extractMessages(req intent.ProviderRequest) []*schema.Message {
	var sys strings.Builder
	sys.WriteString("You are the intent analyzer of a shopping assistant for an electronics store.\n")
	sys.WriteString("Read the user message and submit the extracted entities by calling the submit_entities tool exactly once. Do not output any other text.\n")
	sys.WriteString("Messages may be in English or Ukrainian; answer field values in the message's language where they are free text.\n")
	if len(req.Categories) > 0 {
		sys.WriteString("Known categories: ")
		sys.WriteString(strings.Join(req.Categories, ", "))
		sys.WriteString("\n")
	}

	var user strings.Builder
	if len(req.Summary) > 0 {
		user.WriteString("Recent dialogue:\n")
		for _, m := range req.Summary {
			user.WriteString(string(m.Role))
			user.WriteString(": ")
			user.WriteString(m.Content)
			user.WriteString("\n")
		}
		user.WriteString("\n")
	}
	user.WriteString("Current message: ")
	user.WriteString(strings.TrimSpace(req.Message))

	return []*schema.Message{
		schema.SystemMessage(sys.String()),
		schema.UserMessage(user.String()),
	}
}

func extractTool() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: extractToolName,
		Desc: "Submit the entities extracted from the shopper's message",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"intent": {
				Type: schema.String,
				Desc: "What the shopper wants",
				Enum: []string{
					intent.IntentSearch, intent.IntentCompare, intent.IntentRecommend,
					intent.IntentQuestion, intent.IntentRefine, intent.IntentBudget,
					intent.IntentScenario,
				},
				Required: true,
			},
			"category": {
				Type: schema.String,
				Desc: "Leaf category name when mentioned",
			},
			"mainCategory": {
				Type: schema.String,
				Desc: "Top-level category name when mentioned",
			},
			"brand": {
				Type: schema.String,
				Desc: "Brand name when mentioned",
			},
			"productType": {
				Type: schema.String,
				Desc: "Product type keyword, e.g. phone or laptop",
			},
			"budget": {
				Type: schema.Number,
				Desc: "Total budget amount, 0 when unknown",
			},
			"minPrice": {
				Type: schema.Number,
				Desc: "Lower price bound, 0 when unknown",
			},
			"maxPrice": {
				Type: schema.Number,
				Desc: "Upper price bound, 0 when unknown",
			},
			"rating": {
				Type: schema.Number,
				Desc: "Minimal acceptable rating, 0 when unknown",
			},
			"searchTerm": {
				Type: schema.String,
				Desc: "Free-text catalog search phrase",
			},
			"productIds": {
				Type:     schema.Array,
				Desc:     "Numeric product ids mentioned explicitly",
				ElemInfo: &schema.ParameterInfo{Type: schema.Integer},
			},
			"useCase": {
				Type: schema.String,
				Desc: "Usage scenario, e.g. gaming or travel",
			},
			"needsClarification": {
				Type: schema.Boolean,
				Desc: "True only when the message is too vague to act on",
			},
			"clarificationQuestion": {
				Type: schema.String,
				Desc: "The follow-up question to ask, required when needsClarification is true",
			},
		}),
	}
}

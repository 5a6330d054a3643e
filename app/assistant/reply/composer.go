package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"ShopMate/app/assistant/intent"
	"ShopMate/app/assistant/session"
	"ShopMate/app/dal/behavior"
	"ShopMate/app/dal/catalog"
)

const (
	historyWindow   = 6
	promptProducts  = 10
	maxQuickReplies = 4
)

// Generator is the natural-language backend for reply phrasing.
type Generator interface {
	GenerateText(ctx context.Context, system string, history []session.Message, user string) (string, error)
}

// Composer turns the resolved state of a turn into reply text and quick
// replies. Generation failures degrade to a deterministic localized string;
// the upstream error never reaches the client.
type Composer struct {
	generator Generator
}

func NewComposer(generator Generator) *Composer {
	return &Composer{generator: generator}
}

// Input is everything the composer may mention in the reply.
type Input struct {
	Message    string
	Entities   *intent.Entities
	Context    session.Context
	Products   []*catalog.Product
	Behavior   *behavior.Aggregate
	Categories []string
}

// Compose returns the reply text and the quick replies for the turn.
func (c *Composer) Compose(ctx context.Context, in Input) (string, []string) {
	text := c.generated(ctx, in)
	if text == "" {
		text = fallbackText(in.Entities, in.Products)
	}
	return text, quickReplies(in.Entities, in.Products)
}

func (c *Composer) generated(ctx context.Context, in Input) string {
	if c.generator == nil {
		return ""
	}

	history := in.Context.Messages
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	text, err := c.generator.GenerateText(ctx, systemPrompt(in), history, userPrompt(in))
	if err != nil {
		logx.WithContext(ctx).Errorf("reply generation failed, using fallback: %v", err)
		return ""
	}
	return text
}

func systemPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("You are a helpful shopping assistant for an electronics e-commerce platform. ")
	b.WriteString("Your role is to help users find products, compare options, get recommendations, and make informed purchasing decisions.\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Be concise, helpful, and professional\n")
	b.WriteString("- Use the user's preferred language (Ukrainian or English)\n")
	b.WriteString("- Provide product recommendations with brief justifications\n")
	b.WriteString("- When comparing products, highlight key differences\n")
	b.WriteString("- Consider user preferences and budget constraints\n\n")

	if len(in.Categories) > 0 {
		fmt.Fprintf(&b, "Available categories: %s\n\n", strings.Join(in.Categories, ", "))
	}
	if in.Context.Preferences.Budget > 0 {
		fmt.Fprintf(&b, "User's mentioned budget: %.0f\n\n", in.Context.Preferences.Budget)
	}
	if in.Context.Preferences.Category != "" {
		fmt.Fprintf(&b, "User's interested category: %s\n\n", in.Context.Preferences.Category)
	}
	return b.String()
}

func userPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User message: %q\n\n", in.Message)

	if len(in.Products) > 0 {
		b.WriteString("Available products:\n")
		top := in.Products
		if len(top) > promptProducts {
			top = top[:promptProducts]
		}
		for _, p := range top {
			fmt.Fprintf(&b, "- #%d %s, %.2f, rating %.1f, %s\n", p.Id, p.Name, p.Price, p.Rating, p.Category)
		}
		b.WriteString("\n")
	}

	if in.Behavior != nil && len(in.Behavior.FavoriteCategories) > 0 {
		fmt.Fprintf(&b, "User's favorite categories: %s\n\n", strings.Join(in.Behavior.FavoriteCategories, ", "))
	}

	lang := session.LangEN
	if in.Entities != nil && in.Entities.Language != "" {
		lang = in.Entities.Language
	}
	fmt.Fprintf(&b, "Generate a helpful, concise response in %s. ", lang)
	b.WriteString("If products are provided, recommend them with brief justifications. ")
	b.WriteString("Use a friendly, professional tone. Keep the response under 300 words.")
	return b.String()
}

// fallbackText is the degraded reply. It depends only on the turn's intent,
// language, and result count, never on the provider error.
func fallbackText(entities *intent.Entities, products []*catalog.Product) string {
	lang := session.LangEN
	in := intent.IntentSearch
	if entities != nil {
		if entities.Language != "" {
			lang = entities.Language
		}
		if entities.Intent != "" {
			in = entities.Intent
		}
	}

	uk := lang == session.LangUK
	switch {
	case in == intent.IntentCompare && len(products) >= 2:
		if uk {
			return "Ось порівняння обраних товарів."
		}
		return "Here is a comparison of the selected products."
	case len(products) > 0:
		if uk {
			return fmt.Sprintf("Знайдено товарів: %d. Ось найкращі варіанти.", len(products))
		}
		return fmt.Sprintf("I found %d matching products. Here are the best options.", len(products))
	default:
		if uk {
			return "На жаль, нічого не знайдено. Спробуйте уточнити запит."
		}
		return "Unfortunately I could not find matching products. Try refining your request."
	}
}

func quickReplies(entities *intent.Entities, products []*catalog.Product) []string {
	lang := session.LangEN
	in := ""
	if entities != nil {
		if entities.Language != "" {
			lang = entities.Language
		}
		in = entities.Intent
	}
	uk := lang == session.LangUK

	replies := make([]string, 0, maxQuickReplies)
	add := func(en, ukText string) {
		if uk {
			replies = append(replies, ukText)
			return
		}
		replies = append(replies, en)
	}

	if in == intent.IntentCompare && len(products) >= 2 {
		add("Compare these products", "Порівняти ці товари")
	}
	if in == intent.IntentSearch && len(products) > 0 {
		add("Show cheaper options", "Показати дешевші варіанти")
		add("Show higher rated", "Показати з вищим рейтингом")
	}
	if in == intent.IntentRecommend {
		add("Show more recommendations", "Більше рекомендацій")
	}
	if len(products) > 0 {
		add("Show similar products", "Показати схожі товари")
	}

	if len(replies) > maxQuickReplies {
		replies = replies[:maxQuickReplies]
	}
	return replies
}

// ShortfallText is the reply for a compare turn that resolved fewer than two
// products.
func ShortfallText(lang session.Lang, resolved int) string {
	if lang == session.LangUK {
		return fmt.Sprintf("Для порівняння потрібно щонайменше два товари, знайдено %d. Вкажіть інші ідентифікатори.", resolved)
	}
	return fmt.Sprintf("I need at least two products to compare, but only found %d. Please specify other product ids.", resolved)
}

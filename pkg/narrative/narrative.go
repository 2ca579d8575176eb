// Package narrative turns a collected intelligence aggregate into a short
// prose briefing via the Anthropic API. It is a collaborator of the
// orchestrator, not part of collection itself; callers treat failures as
// "no narrative available".
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// Generator produces a prose briefing from collected data.
type Generator interface {
	Generate(ctx context.Context, intel *model.CustomerIntelligence) (string, error)
}

const systemPrompt = `You are a B2B sales analyst. Given raw multi-source
research data about a prospect company, write a concise briefing for an
account executive: what the company does, buying signals, key people, and
how the vendor's offering maps to the prospect's situation. Be factual;
flag gaps in the data rather than inventing details.`

// sdkGenerator implements Generator using the official anthropic-sdk-go.
type sdkGenerator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator backed by the Anthropic API.
func NewGenerator(apiKey, model string, maxTokens int) Generator {
	return &sdkGenerator{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (g *sdkGenerator) Generate(ctx context.Context, intel *model.CustomerIntelligence) (string, error) {
	prompt, err := buildPrompt(intel)
	if err != nil {
		return "", err
	}

	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "narrative: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", eris.New("narrative: empty response")
	}
	return sb.String(), nil
}

// buildPrompt flattens the aggregate into a single user message. Payloads go
// in verbatim as JSON; the model handles per-source structure better than
// any extraction we could hand-roll here.
func buildPrompt(intel *model.CustomerIntelligence) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Prospect: %s\n", intel.Customer)
	if intel.Vendor != nil {
		vendorJSON, err := json.Marshal(intel.Vendor)
		if err != nil {
			return "", eris.Wrap(err, "narrative: marshal vendor context")
		}
		fmt.Fprintf(&sb, "Vendor profile: %s\n", vendorJSON)
	}
	fmt.Fprintf(&sb, "Data quality score: %.0f/100\n\n", intel.QualityScore)

	if intel.Data != nil {
		for source, payload := range intel.Data.Sources {
			fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", source, payload)
		}
	}

	return sb.String(), nil
}

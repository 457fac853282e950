package narrative

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/pkg/anthropic"
)

const systemPrompt = "You are a cost engineer writing for a construction " +
	"executive. Given earned-value KPIs and a Monte Carlo forecast, write a " +
	"variance narrative of at most three sentences. Be specific about the " +
	"numbers and do not invent data."

// Generator produces variance narratives, optionally composing the summary
// text with an LLM. A nil client keeps the stage fully rule-based.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator. client may be nil.
func NewGenerator(client anthropic.Client, llmModel string, maxTokens int64) *Generator {
	return &Generator{client: client, model: llmModel, maxTokens: maxTokens}
}

// Generate builds the narrative for a project and the matching cost log
// entry. An LLM failure falls back to the rule-based summary rather than
// failing the stage.
func (g *Generator) Generate(ctx context.Context, projectID string, evm []model.EVMRow, summaries []model.Summary) (*Narrative, CostEntry, error) {
	n, err := Build(projectID, evm, summaries)
	if err != nil {
		return nil, CostEntry{}, err
	}

	entry := CostEntry{Source: "stub", Model: "none"}
	if g.client == nil {
		return n, entry, nil
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    systemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: g.prompt(projectID, n)}},
	})
	if err != nil {
		zap.L().Warn("narrative: LLM call failed, using rule-based summary",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return n, entry, nil
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		n.Summary = text
	}
	resp.Usage.LogCost(g.model, "narrative")
	entry = CostEntry{
		Source:       "anthropic",
		Model:        g.model,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		CostUSD:      resp.Usage.EstimateCost(g.model),
	}
	return n, entry, nil
}

func (g *Generator) prompt(projectID string, n *Narrative) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project %s latest KPIs:\n", projectID)
	for _, k := range []string{"CPI", "SPI", "EAC", "VAC", "P80_EAC"} {
		fmt.Fprintf(&b, "  %s: %g\n", k, float64(n.KPIs[k]))
	}
	fmt.Fprintf(&b, "Rule-based summary: %s\n", n.Summary)
	return b.String()
}

package narrative

import (
	"bufio"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/pkg/anthropic"
)

func testEVM() []model.EVMRow {
	return []model.EVMRow{
		{ProjectID: "P1", WorkElementID: "W1", Period: "2025-01", CPI: 0.95, SPI: 1.02, EAC: 1_050_000, VAC: -50_000},
		{ProjectID: "P1", WorkElementID: "W1", Period: "2025-02", CPI: 0.88, SPI: 0.97, EAC: 1_130_000, VAC: -130_000},
	}
}

func testSummaries() []model.Summary {
	return []model.Summary{
		{ProjectID: "P1", EACP50: 1_100_000, EACP80: 1_250_000, FinishP50: 10, FinishP80: 22},
	}
}

func TestBuildUsesLatestPeriod(t *testing.T) {
	t.Parallel()

	n, err := Build("P1", testEVM(), testSummaries())
	require.NoError(t, err)

	assert.Equal(t, "project", n.Level)
	assert.Equal(t, "P1", n.ID)
	assert.InDelta(t, 0.88, float64(n.KPIs["CPI"]), 1e-9)
	assert.InDelta(t, 1_250_000, float64(n.KPIs["P80_EAC"]), 1e-9)
	assert.Contains(t, n.Summary, "CPI 0.88")
	assert.Contains(t, n.Summary, "P80 $1,250,000")

	require.Len(t, n.Contributors, 1)
	assert.InDelta(t, 150_000, float64(n.Contributors[0].ImpactDollars), 1e-9)
	assert.InDelta(t, 12, float64(n.Contributors[0].ImpactDays), 1e-9)
}

func TestBuildNaNKPIsFallBack(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	evm := []model.EVMRow{
		{ProjectID: "P1", WorkElementID: "W1", Period: "2025-01", CPI: nan, SPI: nan, EAC: nan, VAC: nan},
	}
	n, err := Build("P1", evm, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(n.KPIs["CPI"]), 1e-9)
	assert.InDelta(t, 0.0, float64(n.KPIs["EAC"]), 1e-9)
}

func TestBuildUnknownProject(t *testing.T) {
	t.Parallel()

	_, err := Build("NOPE", testEVM(), testSummaries())
	assert.Error(t, err)
}

// fakeClient returns a canned response or error.
type fakeClient struct {
	resp *anthropic.MessageResponse
	err  error
	req  anthropic.MessageRequest
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestGenerateWithLLM(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{resp: &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: "Costs are trending over budget."}},
		Usage:   anthropic.TokenUsage{InputTokens: 200, OutputTokens: 50},
	}}
	g := NewGenerator(fake, "claude-sonnet-4-5-20250929", 1024)

	n, entry, err := g.Generate(context.Background(), "P1", testEVM(), testSummaries())
	require.NoError(t, err)

	assert.Equal(t, "Costs are trending over budget.", n.Summary)
	assert.Equal(t, "anthropic", entry.Source)
	assert.Equal(t, int64(200), entry.InputTokens)
	assert.Greater(t, entry.CostUSD, 0.0)
	assert.Contains(t, fake.req.Messages[0].Content, "Project P1")
}

func TestGenerateLLMFailureFallsBack(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{err: eris.New("api down")}
	g := NewGenerator(fake, "claude-sonnet-4-5-20250929", 1024)

	n, entry, err := g.Generate(context.Background(), "P1", testEVM(), testSummaries())
	require.NoError(t, err)
	assert.Contains(t, n.Summary, "CPI 0.88")
	assert.Equal(t, "stub", entry.Source)
}

func TestGenerateNilClient(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil, "", 0)
	n, entry, err := g.Generate(context.Background(), "P1", testEVM(), testSummaries())
	require.NoError(t, err)
	assert.NotEmpty(t, n.Summary)
	assert.Equal(t, "stub", entry.Source)
	assert.Equal(t, "none", entry.Model)
}

func TestAppendJSONL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), NarrativesFile)
	n1, err := Build("P1", testEVM(), testSummaries())
	require.NoError(t, err)
	require.NoError(t, AppendJSONL(path, n1))
	require.NoError(t, AppendJSONL(path, n1))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var back Narrative
		require.NoError(t, json.Unmarshal(sc.Bytes(), &back))
		assert.Equal(t, "P1", back.ID)
		// Undefined finish date serializes as null and reads back as NaN.
		assert.True(t, math.IsNaN(float64(back.KPIs["P80_FinishDate"])))
		lines++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 2, lines)
}

func TestAppendCostLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), CostLogFile)
	require.NoError(t, AppendCostLog(path, CostEntry{Source: "stub", Model: "none"}))
	require.NoError(t, AppendCostLog(path, CostEntry{
		Source: "anthropic", Model: "claude-sonnet-4-5-20250929",
		InputTokens: 200, OutputTokens: 50, CostUSD: 0.00135,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], ",stub,none,0,0,0")
	assert.Contains(t, lines[1], ",anthropic,claude-sonnet-4-5-20250929,200,50,")
}

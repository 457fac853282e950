package narrative

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

const (
	// NarrativesFile is the JSONL log under the processed directory.
	NarrativesFile = "variance_narratives.jsonl"
	// CostLogFile records one row per generation attempt.
	CostLogFile = "llm_cost_log.csv"
)

// CostEntry is one row of the LLM cost log.
type CostEntry struct {
	Source       string
	Model        string
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

// AppendJSONL appends one narrative to the JSONL log at path.
func AppendJSONL(path string, n *Narrative) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return eris.Wrap(err, "narrative: marshal")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "narrative: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.Write(append(payload, '\n')); err != nil {
		return eris.Wrapf(err, "narrative: append %s", path)
	}
	return nil
}

// AppendCostLog appends one cost row, stamped with the current time.
func AppendCostLog(path string, e CostEntry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "narrative: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	ts := time.Now().UTC().Format("2006-01-02 15:04:05")
	row := fmt.Sprintf("%s,%s,%s,%d,%d,%g\n",
		ts, e.Source, e.Model, e.InputTokens, e.OutputTokens, e.CostUSD)
	if _, err := f.WriteString(row); err != nil {
		return eris.Wrapf(err, "narrative: append %s", path)
	}
	return nil
}

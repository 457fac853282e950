package alerts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// OutboxFile is the alert outbox under the processed directory.
const OutboxFile = "alerts_outbox.json"

// AppendOutbox appends alerts to the JSON outbox at path. An absent or
// corrupt existing outbox is treated as empty rather than an error.
func AppendOutbox(path string, alerts []Alert) error {
	var existing []Alert
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			zap.L().Warn("alerts: outbox unreadable, starting fresh",
				zap.String("path", path),
				zap.Error(err),
			)
			existing = nil
		}
	}

	existing = append(existing, alerts...)

	payload, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return eris.Wrap(err, "alerts: marshal outbox")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "alerts: create outbox dir")
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return eris.Wrapf(err, "alerts: write outbox %s", path)
	}
	return nil
}

package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger returns logger with run_id and mode attached to every record.
// A nil logger stays nil.
func EnrichLogger(logger *slog.Logger, runID, mode string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("mode", mode),
	)
}

// LogRunStart logs the start of a plan run.
func LogRunStart(logger *slog.Logger, descr string, inputs int) {
	if logger == nil {
		return
	}
	logger.Info("plan run starting",
		slog.String("plan", descr),
		slog.Int("inputs", inputs),
	)
}

// LogRunComplete logs a successful run with the number of executed nodes
// and relaxation passes.
func LogRunComplete(logger *slog.Logger, elapsed time.Duration, executed, passes int) {
	if logger == nil {
		return
	}
	logger.Info("plan run completed",
		slog.Float64("duration_ms", milliseconds(elapsed)),
		slog.Int("nodes_executed", executed),
		slog.Int("passes", passes),
	)
}

// LogRunError logs a failed run. lastNode is the node that was executing.
func LogRunError(logger *slog.Logger, err error, elapsed time.Duration, lastNode string) {
	if logger == nil {
		return
	}
	logger.Error("plan run failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", milliseconds(elapsed)),
		slog.String("last_node", lastNode),
	)
}

// Node events are logged at debug level; failures at error level.

func LogNodeStart(logger *slog.Logger, nodeID, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("node starting",
		slog.String("node_id", nodeID),
		slog.String("kind", kind),
	)
}

func LogNodeComplete(logger *slog.Logger, nodeID string, elapsed time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("node completed",
		slog.String("node_id", nodeID),
		slog.Float64("duration_ms", milliseconds(elapsed)),
	)
}

func LogNodeError(logger *slog.Logger, nodeID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("node failed",
		slog.String("node_id", nodeID),
		slog.String("error", err.Error()),
	)
}

// LogUnresolved logs the nodes left without a result after relaxation.
// Nothing is logged for an empty list.
func LogUnresolved(logger *slog.Logger, nodeIDs []string) {
	if logger == nil || len(nodeIDs) == 0 {
		return
	}
	logger.Debug("nodes unresolved after relaxation",
		slog.Int("count", len(nodeIDs)),
		slog.Any("node_ids", nodeIDs),
	)
}

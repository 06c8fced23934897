package skinhealth

import (
	"io"
	"log/slog"
	"time"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func day(offset int) string {
	return testStart.AddDate(0, 0, offset).Format("2006-01-02")
}

func snapshotAt(offsetDays int, scores Scores) AnalysisSnapshot {
	return AnalysisSnapshot{
		TimestampMs: testStart.AddDate(0, 0, offsetDays).UnixMilli(),
		Scores:      scores,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

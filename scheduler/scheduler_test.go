package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterreport/services"
)

type fakeSummarizer struct {
	sum services.ReportSummary
	err error
}

func (f fakeSummarizer) Summary(context.Context) (services.ReportSummary, error) {
	return f.sum, f.err
}

func TestSummaryJobLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	SummaryJob(context.Background(), fakeSummarizer{sum: services.ReportSummary{Total: 3}}, logger)
	assert.Contains(t, buf.String(), "report summary")
	assert.Contains(t, buf.String(), "total=3")

	buf.Reset()
	SummaryJob(context.Background(), fakeSummarizer{err: errors.New("corrupt")}, logger)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "corrupt")
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	_, err := StartScheduler("every tuesday", fakeSummarizer{}, slog.Default())
	assert.Error(t, err)
}

func TestStartScheduler(t *testing.T) {
	c, err := StartScheduler("0 */5 * * * *", fakeSummarizer{}, slog.Default())
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}

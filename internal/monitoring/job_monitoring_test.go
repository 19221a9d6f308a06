package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/swappy/internal/utils/webhook"
)

func newTestJobStatusManager(t *testing.T) (*JobStatusManager, *prometheus.Registry) {
	t.Helper()
	metrics := NewBackgroundJobMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	jsm := NewJobStatusManager(setupTestLogger(), metrics)
	t.Cleanup(jsm.Stop)
	return jsm, registry
}

func TestJobStatusManager_RegisterJob(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)

	jsm.RegisterJob("swap_execution_indexing")
	first, exists := jsm.GetJobStatus("swap_execution_indexing")
	require.True(t, exists)
	assert.Equal(t, JobStatusPending, first.Status)
	assert.NotNil(t, first.Metadata)

	jsm.RegisterJob("swap_execution_indexing")
	second, _ := jsm.GetJobStatus("swap_execution_indexing")
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "registering twice keeps the original entry")
}

func TestJobStatusManager_StartJob(t *testing.T) {
	jsm, registry := newTestJobStatusManager(t)

	jsm.StartJob("swap_execution_indexing")

	status, exists := jsm.GetJobStatus("swap_execution_indexing")
	require.True(t, exists)
	assert.Equal(t, JobStatusRunning, status.Status)
	assert.WithinDuration(t, time.Now(), status.LastRunTime, time.Second)
	assert.Equal(t, float64(1), gaugeValue(t, registry, "swappy_background_jobs_active"))
}

func TestJobStatusManager_CompleteJobSuccess(t *testing.T) {
	jsm, registry := newTestJobStatusManager(t)
	jobName := "swap_execution_indexing"

	jsm.StartJob(jobName)
	time.Sleep(5 * time.Millisecond)
	jsm.CompleteJob(jobName, nil, map[string]interface{}{"indexed": 3})

	status, _ := jsm.GetJobStatus(jobName)
	assert.Equal(t, JobStatusSuccess, status.Status)
	assert.Equal(t, int64(1), status.SuccessCount)
	assert.Empty(t, status.LastError)
	assert.Equal(t, status.LastDuration, status.AverageExecution)
	assert.Equal(t, status.LastDuration, status.MinExecutionTime)
	assert.Equal(t, status.LastDuration, status.MaxExecutionTime)
	assert.False(t, status.LastSuccessTime.IsZero())
	assert.Equal(t, 3, status.Metadata["indexed"])

	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_background_job_runs_total",
		map[string]string{"job_name": jobName, "status": "success"}))
	assert.Equal(t, float64(0), gaugeValue(t, registry, "swappy_background_jobs_active"))
}

func TestJobStatusManager_CompleteJobFailure(t *testing.T) {
	jsm, registry := newTestJobStatusManager(t)
	jobName := "swap_execution_indexing"

	for i := 0; i < 2; i++ {
		jsm.StartJob(jobName)
		jsm.CompleteJob(jobName, errors.New("database is locked"), nil)
	}

	status, _ := jsm.GetJobStatus(jobName)
	assert.Equal(t, JobStatusFailed, status.Status)
	assert.Equal(t, int64(2), status.FailureCount)
	assert.Equal(t, int64(2), status.ConsecutiveFailures)
	assert.Equal(t, "database", status.Metadata["error_type"])
	assert.Equal(t, float64(2), counterValue(t, registry, "swappy_background_job_runs_total",
		map[string]string{"job_name": jobName, "status": "error"}))

	jsm.StartJob(jobName)
	jsm.CompleteJob(jobName, nil, nil)

	status, _ = jsm.GetJobStatus(jobName)
	assert.Equal(t, int64(0), status.ConsecutiveFailures)
	assert.NotContains(t, status.Metadata, "error_type")
}

func TestJobStatusManager_StalledJobDetection(t *testing.T) {
	jsm, registry := newTestJobStatusManager(t)
	jsm.stalledThreshold = 20 * time.Millisecond

	jsm.StartJob("stuck_job")
	time.Sleep(40 * time.Millisecond)

	all := jsm.GetAllJobStatuses()
	assert.Equal(t, JobStatusStalled, all["stuck_job"].Status)

	jsm.detectStalledJobs()
	status, _ := jsm.GetJobStatus("stuck_job")
	assert.Equal(t, JobStatusStalled, status.Status)
	assert.Equal(t, float64(1), gaugeValue(t, registry, "swappy_background_jobs_stalled"))
	assert.Equal(t, 1, jsm.GetJobsSummary().StalledJobs)
}

func TestJobStatusManager_CleanupOldStatuses(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)
	jsm.retentionPeriod = time.Millisecond

	jsm.RegisterJob("old_job")
	jsm.StartJob("running_job")
	time.Sleep(5 * time.Millisecond)
	jsm.cleanupOldStatuses()

	_, exists := jsm.GetJobStatus("old_job")
	assert.False(t, exists)
	_, exists = jsm.GetJobStatus("running_job")
	assert.True(t, exists)
}

func TestJobStatusManager_GetJobsSummary(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)

	jsm.StartJob("ok")
	jsm.CompleteJob("ok", nil, nil)
	jsm.StartJob("broken")
	jsm.CompleteJob("broken", errors.New("boom"), nil)
	jsm.StartJob("busy")

	summary := jsm.GetJobsSummary()
	assert.Equal(t, 3, summary.TotalJobs)
	assert.Equal(t, 1, summary.HealthyJobs)
	assert.Equal(t, 1, summary.UnhealthyJobs)
	assert.Equal(t, 1, summary.RunningJobs)
}

func TestJobStatusManager_ConcurrentAccess(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("job_%d", i)
			jsm.StartJob(name)
			_ = jsm.GetAllJobStatuses()
			var err error
			if i%2 == 0 {
				err = errors.New("failed")
			}
			jsm.CompleteJob(name, err, nil)
		}(i)
	}
	wg.Wait()

	for _, status := range jsm.GetAllJobStatuses() {
		assert.Equal(t, int64(1), status.SuccessCount+status.FailureCount)
	}
}

func TestInstrumentedJob_Execute(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)

	executed := false
	job := NewInstrumentedJob("ok_job", func(ctx context.Context) error {
		executed = true
		return nil
	}, jsm, setupTestLogger(), time.Second)

	assert.NoError(t, job.Execute())
	assert.True(t, executed)

	status, _ := jsm.GetJobStatus("ok_job")
	assert.Equal(t, JobStatusSuccess, status.Status)
}

func TestInstrumentedJob_Failure(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)
	want := errors.New("rpc unavailable")

	job := NewInstrumentedJob("failing_job", func(ctx context.Context) error {
		return want
	}, jsm, setupTestLogger(), time.Second)

	assert.Equal(t, want, job.Execute())
	status, _ := jsm.GetJobStatus("failing_job")
	assert.Equal(t, JobStatusFailed, status.Status)
	assert.Equal(t, "external_api", status.Metadata["error_type"])
}

func TestInstrumentedJob_Timeout(t *testing.T) {
	jsm, registry := newTestJobStatusManager(t)

	cancelled := make(chan struct{})
	job := NewInstrumentedJob("slow_job", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}, jsm, setupTestLogger(), 30*time.Millisecond)

	err := job.Execute()
	assert.ErrorContains(t, err, "timeout")

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled")
	}

	status, _ := jsm.GetJobStatus("slow_job")
	assert.Equal(t, "timeout", status.Metadata["error_type"])
	assert.Equal(t, "30ms", status.Metadata["timeout"])
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_job_timeouts_total",
		map[string]string{"job_name": "slow_job"}))
}

func TestInstrumentedJob_PanicRecovery(t *testing.T) {
	jsm, _ := newTestJobStatusManager(t)

	job := NewInstrumentedJob("panic_job", func(ctx context.Context) error {
		panic("unexpected")
	}, jsm, setupTestLogger(), time.Second)

	var err error
	assert.NotPanics(t, func() { err = job.Execute() })
	assert.ErrorContains(t, err, "panicked")

	status, _ := jsm.GetJobStatus("panic_job")
	assert.Contains(t, status.Metadata, "stack_trace")
	assert.Equal(t, "panic", status.Metadata["error_type"])
}

func TestInstrumentedJob_WebhookOnSuccessOnly(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	jsm, _ := newTestJobStatusManager(t)
	client := webhook.New(setupTestLogger())

	fail := true
	job := NewInstrumentedJobWithWebhook("heartbeat_job", func(ctx context.Context) error {
		if fail {
			return errors.New("failed")
		}
		return nil
	}, jsm, setupTestLogger(), time.Second, client, srv.URL)

	_ = job.Execute()
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	fail = false
	assert.NoError(t, job.Execute())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClassifyJobError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("operation timeout after 30s"), "timeout"},
		{errors.New("context deadline exceeded"), "timeout"},
		{errors.New("network connection failed"), "network"},
		{errors.New("sql: no rows"), "database"},
		{errors.New("circuit breaker is open"), "external_api"},
		{errors.New("job panicked: runtime error"), "panic"},
		{errors.New("something else"), "unknown"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyJobError(tt.err), "%v", tt.err)
	}
}

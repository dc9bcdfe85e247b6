package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vantahq/jobscout/domain/task"
)

func TestNewTask_DedupKeyIsStable(t *testing.T) {
	payload := map[string]any{
		"user_id":         "u-1",
		"trigger_pref_id": "p-1",
	}

	first := task.NewTask(task.OperationSearchRun, int(task.PriorityNormal), payload)
	second := task.NewTask(task.OperationSearchRun, int(task.PriorityNormal), payload)

	// Sorted key order makes the key independent of map iteration.
	assert.Equal(t, "jobscout.search.run:p-1:u-1", first.DedupKey())
	assert.Equal(t, first.DedupKey(), second.DedupKey())
}

func TestNewTask_DistinctPayloadsGetDistinctKeys(t *testing.T) {
	a := task.NewTask(task.OperationSearchRun, int(task.PriorityNormal), map[string]any{
		"user_id":         "u-1",
		"trigger_pref_id": "p-1",
	})
	b := task.NewTask(task.OperationSearchRun, int(task.PriorityNormal), map[string]any{
		"user_id":         "u-1",
		"trigger_pref_id": "p-2",
	})

	assert.NotEqual(t, a.DedupKey(), b.DedupKey())
}

func TestNewTask_EmptyPayload(t *testing.T) {
	tk := task.NewTask(task.OperationResumeParse, int(task.PriorityUserInitiated), nil)

	assert.Equal(t, "jobscout.resume.parse", tk.DedupKey())
	assert.NotNil(t, tk.Payload())
	assert.Empty(t, tk.Payload())
}

func TestTask_PayloadIsCopied(t *testing.T) {
	payload := map[string]any{"resume_id": "r-1"}
	tk := task.NewTask(task.OperationResumeParse, int(task.PriorityNormal), payload)

	payload["resume_id"] = "mutated"
	assert.Equal(t, "r-1", tk.Payload()["resume_id"])

	out := tk.Payload()
	out["resume_id"] = "mutated again"
	assert.Equal(t, "r-1", tk.Payload()["resume_id"])
}

func TestOperation_Classification(t *testing.T) {
	assert.True(t, task.OperationSearchRun.IsSearchOperation())
	assert.False(t, task.OperationSearchRun.IsResumeOperation())
	assert.True(t, task.OperationResumeParse.IsResumeOperation())
}

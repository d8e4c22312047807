package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/notewire/notewire/internal/board"
	"github.com/notewire/notewire/internal/domain"
)

// Execute runs one execute pass: list every confirmed task, run each
// through the executor, append the outcome to the task description,
// and move successful tasks to done.
//
// The pass only fails outright when the confirmed list cannot be
// fetched. A task whose execution fails keeps its confirmed place with
// a failure note appended, ready for the next run. A task some earlier
// run already moved to done counts as completed, not as an error.
func (o *Orchestrator) Execute(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := o.logger.With("run_id", runID)

	tasks, err := o.board.ListTasks(ctx, domain.BucketConfirmed)
	if err != nil {
		return Summary{Pass: "execute", RunID: runID}, fmt.Errorf("failed to list confirmed tasks: %w", err)
	}

	log.Info("starting execute pass",
		"tasks", len(tasks),
		"workers", o.workers)

	results := newCollector("execute")
	work := make(chan domain.TaskRecord)

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range work {
				results.add(o.executeTask(ctx, log, task))
			}
		}()
	}

	for _, task := range tasks {
		work <- task
	}
	close(work)
	wg.Wait()

	summary := results.summary()
	summary.RunID = runID
	log.Info("execute pass complete",
		"tasks", summary.Tasks,
		"completed", summary.Completed,
		"failed", summary.Failed)
	return summary, nil
}

// executeTask runs one confirmed task end to end and returns its
// contribution to the pass summary.
func (o *Orchestrator) executeTask(ctx context.Context, runLog *slog.Logger, task domain.TaskRecord) Summary {
	log := runLog.With("task_id", task.ID, "title", task.Title)
	delta := Summary{Tasks: 1}

	// The description carries the delegatable instruction; the title is
	// the raw note quote. Only a record with an empty description falls
	// back to its title.
	instruction := task.Description
	if instruction == "" {
		instruction = task.Title
	}

	result, err := o.executor.Execute(ctx, instruction)
	if err != nil {
		log.Error("execution failed", "error", err)
		o.annotate(ctx, log, task, domain.AnnotateFailure(task.Description, err.Error()))
		delta.Failed++
		return delta
	}

	annotated := domain.AnnotateResult(task.Description, result.Summary)
	if !o.annotate(ctx, log, task, annotated) {
		delta.Failed++
		return delta
	}

	if err := o.board.MoveTask(ctx, task.ID, domain.BucketDone); err != nil {
		if board.IsAlreadyMoved(err) {
			log.Info("task already moved to done")
			delta.Completed++
			return delta
		}
		log.Error("failed to move task to done", "error", err)
		delta.Failed++
		return delta
	}

	log.Info("task completed")
	delta.Completed++
	return delta
}

// annotate writes an updated description back to the board, reporting
// whether the write landed.
func (o *Orchestrator) annotate(ctx context.Context, log *slog.Logger, task domain.TaskRecord, description string) bool {
	err := o.board.UpdateTask(ctx, task.ID, board.UpdateFields{Description: &description})
	if err != nil {
		log.Error("failed to update task description", "error", err)
		return false
	}
	return true
}

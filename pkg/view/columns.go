package view

import (
	"time"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/glyph"
	"tableflip.dev/granular/pkg/timeutil"
)

// taskState returns the task's single-character state symbol. A closed
// task that was cloned forward renders as moved rather than closed.
func taskState(task *entity.Task, all []*entity.Task) string {
	if task.Closed() {
		for _, other := range all {
			if other.ClonedFromID == task.ID {
				return glyph.TaskCloned
			}
		}
	}
	switch {
	case task.Completed != nil:
		return glyph.TaskCompleted
	case task.Cancelled != nil:
		return glyph.TaskCancelled
	case task.NotCompleted != nil:
		return glyph.TaskNotCompleted
	}
	return glyph.TaskOpen
}

// hasNotes returns the presence marker when any live note references the
// entity.
func hasNotes(realID string, refType entity.Type, notes []*entity.Note) string {
	for _, n := range notes {
		if n.ReferenceID == realID && n.ReferenceType == string(refType) && !n.IsDeleted() {
			return "N"
		}
	}
	return ""
}

// hasLogs returns the presence marker when any live log references the
// entity.
func hasLogs(realID string, refType entity.Type, logs []*entity.Log) string {
	for _, l := range logs {
		if l.ReferenceID == realID && l.ReferenceType == string(refType) && !l.IsDeleted() {
			return "L"
		}
	}
	return ""
}

// ageCell renders how long ago an entity was created.
func ageCell(created entity.Timestamp, now time.Time) string {
	if created.Time.IsZero() {
		return ""
	}
	return timeutil.Age(created.Time, now)
}

// totalAudited sums the closed time audits linked to a task.
func totalAudited(taskID string, audits []*entity.TimeAudit) time.Duration {
	var total time.Duration
	for _, a := range audits {
		if a.TaskID == taskID && !a.IsDeleted() {
			total += a.Elapsed()
		}
	}
	return total
}

// formatClock renders a duration for a table cell, empty when zero.
func formatClock(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return timeutil.FormatClock(d)
}

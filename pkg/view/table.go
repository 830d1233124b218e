package view

import (
	"context"
	"strconv"

	"tableflip.dev/granular/pkg/entity"
	"tableflip.dev/granular/pkg/printers"
	"tableflip.dev/granular/pkg/query"
)

var (
	defaultTaskColumns      = []string{"id", "state", "age", "has_logs", "has_notes", "priority", "description"}
	defaultTimeAuditColumns = []string{"id", "task", "duration", "description", "start", "end"}
	defaultEventColumns     = []string{"id", "title", "start", "end", "location"}
	defaultTimespanColumns  = []string{"id", "description", "start", "end", "projects"}
	defaultLogColumns       = []string{"id", "timestamp", "text"}
)

func columnsOr(columns, fallback []string) []string {
	if len(columns) == 0 {
		return fallback
	}
	return columns
}

// synthetic assigns (or reuses) the display id for a real id as a render
// side effect. Filtering and sorting never see synthetic ids.
func (c *Composer) synthetic(t entity.Type, realID string) (string, error) {
	id, err := c.IDs.Associate(t, realID)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id), nil
}

// cell resolves a non-derived column from the record itself.
func cell(rec query.Record, column string) (string, error) {
	v, ok := rec[column]
	if !ok {
		return "", &query.UnknownPropertyError{Property: column}
	}
	return v.Display(), nil
}

func (c *Composer) runTaskView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	tasks, err := c.Repo.Tasks(ctx)
	if err != nil {
		return err
	}
	audits, err := c.Repo.TimeAudits(ctx)
	if err != nil {
		return err
	}
	notes, err := c.Repo.Notes(ctx)
	if err != nil {
		return err
	}
	logs, err := c.Repo.Logs(ctx)
	if err != nil {
		return err
	}

	rows, err := query.Run(tasks, c.request(sv, active), c.Now)
	if err != nil {
		return err
	}

	columns := columnsOr(sv.Columns, defaultTaskColumns)
	useColor := c.useColor(sv)
	cells := make([][]string, 0, len(rows))
	for _, task := range rows {
		rec := task.Properties()
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			var value string
			switch column {
			case "id":
				value, err = c.synthetic(entity.TypeTask, task.ID)
				if err != nil {
					return err
				}
			case "state":
				value = taskState(task, rows)
			case "age":
				value = ageCell(task.Created, c.Now)
			case "actual":
				value = formatClock(totalAudited(task.ID, audits))
			case "has_notes":
				value = hasNotes(task.ID, entity.TypeTask, notes)
			case "has_logs":
				value = hasLogs(task.ID, entity.TypeTask, logs)
			default:
				value, err = cell(rec, column)
				if err != nil {
					return err
				}
			}
			if useColor {
				if task.Closed() {
					value = printers.Colorize("grey", value, true)
				} else {
					value = printers.Colorize(task.Color, value, true)
				}
			}
			row = append(row, value)
		}
		cells = append(cells, row)
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Table(columns, cells, sv.NoWrap)
	return nil
}

func (c *Composer) runTimeAuditView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	audits, err := c.Repo.TimeAudits(ctx)
	if err != nil {
		return err
	}
	notes, err := c.Repo.Notes(ctx)
	if err != nil {
		return err
	}
	logs, err := c.Repo.Logs(ctx)
	if err != nil {
		return err
	}

	rows, err := query.Run(audits, c.request(sv, active), c.Now)
	if err != nil {
		return err
	}

	columns := columnsOr(sv.Columns, defaultTimeAuditColumns)
	useColor := c.useColor(sv)
	cells := make([][]string, 0, len(rows))
	for _, audit := range rows {
		rec := audit.Properties()
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			var value string
			switch column {
			case "id":
				value, err = c.synthetic(entity.TypeTimeAudit, audit.ID)
				if err != nil {
					return err
				}
			case "task":
				if audit.TaskID != "" {
					value, err = c.synthetic(entity.TypeTask, audit.TaskID)
					if err != nil {
						return err
					}
				}
			case "duration":
				value = formatClock(audit.Elapsed())
			case "has_notes":
				value = hasNotes(audit.ID, entity.TypeTimeAudit, notes)
			case "has_logs":
				value = hasLogs(audit.ID, entity.TypeTimeAudit, logs)
			default:
				value, err = cell(rec, column)
				if err != nil {
					return err
				}
			}
			if useColor {
				value = printers.Colorize(audit.Color, value, true)
			}
			row = append(row, value)
		}
		cells = append(cells, row)
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Table(columns, cells, sv.NoWrap)
	return nil
}

func (c *Composer) runEventView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	events, err := c.Repo.Events(ctx)
	if err != nil {
		return err
	}
	notes, err := c.Repo.Notes(ctx)
	if err != nil {
		return err
	}
	logs, err := c.Repo.Logs(ctx)
	if err != nil {
		return err
	}

	rows, err := query.Run(events, c.request(sv, active), c.Now)
	if err != nil {
		return err
	}

	columns := columnsOr(sv.Columns, defaultEventColumns)
	useColor := c.useColor(sv)
	cells := make([][]string, 0, len(rows))
	for _, event := range rows {
		rec := event.Properties()
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			var value string
			switch column {
			case "id":
				value, err = c.synthetic(entity.TypeEvent, event.ID)
				if err != nil {
					return err
				}
			case "has_notes":
				value = hasNotes(event.ID, entity.TypeEvent, notes)
			case "has_logs":
				value = hasLogs(event.ID, entity.TypeEvent, logs)
			default:
				value, err = cell(rec, column)
				if err != nil {
					return err
				}
			}
			if useColor {
				value = printers.Colorize(event.Color, value, true)
			}
			row = append(row, value)
		}
		cells = append(cells, row)
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Table(columns, cells, sv.NoWrap)
	return nil
}

func (c *Composer) runTimespanView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	spans, err := c.Repo.Timespans(ctx)
	if err != nil {
		return err
	}

	rows, err := query.Run(spans, c.request(sv, active), c.Now)
	if err != nil {
		return err
	}

	columns := columnsOr(sv.Columns, defaultTimespanColumns)
	useColor := c.useColor(sv)
	cells := make([][]string, 0, len(rows))
	for _, span := range rows {
		rec := span.Properties()
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			var value string
			switch column {
			case "id":
				value, err = c.synthetic(entity.TypeTimespan, span.ID)
				if err != nil {
					return err
				}
			default:
				value, err = cell(rec, column)
				if err != nil {
					return err
				}
			}
			if useColor {
				value = printers.Colorize(span.Color, value, true)
			}
			row = append(row, value)
		}
		cells = append(cells, row)
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Table(columns, cells, sv.NoWrap)
	return nil
}

func (c *Composer) runLogView(ctx context.Context, cv *CompoundView, sv *SubView, active *entity.Context) error {
	logs, err := c.Repo.Logs(ctx)
	if err != nil {
		return err
	}

	rows, err := query.Run(logs, c.request(sv, active), c.Now)
	if err != nil {
		return err
	}

	columns := columnsOr(sv.Columns, defaultLogColumns)
	useColor := c.useColor(sv)
	cells := make([][]string, 0, len(rows))
	for _, l := range rows {
		rec := l.Properties()
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			var value string
			switch column {
			case "id":
				value, err = c.synthetic(entity.TypeLog, l.ID)
				if err != nil {
					return err
				}
			default:
				value, err = cell(rec, column)
				if err != nil {
					return err
				}
			}
			if useColor {
				value = printers.Colorize(l.Color, value, true)
			}
			row = append(row, value)
		}
		cells = append(cells, row)
	}

	pp := c.printer(sv)
	pp.Header(contextName(active), cv.Name)
	pp.Table(columns, cells, sv.NoWrap)
	return nil
}

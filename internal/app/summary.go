package app

import (
	"io"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/engine/lifecycle"
	"github.com/jedib0t/go-pretty/v6/table"
)

// writeSummary renders one row per task and reports whether any task result
// failed. Tasks that did not finish are listed as UNDEFINED.
func writeSummary(w io.Writer, run *lifecycle.Run) bool {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDefault)
	t.AppendHeader(table.Row{"Suite", "Test object", "Status", "Duration"})

	failed := false
	for _, task := range run.Tasks() {
		dto := task.Dto()
		status := domain.StatusUndefined
		var duration time.Duration
		if res := task.Collector().Result(); res != nil {
			status = res.Status()
			if res.Root != nil {
				duration = res.Root.Duration.Round(time.Millisecond)
			}
		}
		if status == domain.StatusFailed || status == domain.StatusInternalError {
			failed = true
		}

		object := ""
		if dto.TestObject != nil {
			object = dto.TestObject.Label
		}
		t.AppendRow(table.Row{dto.Label(), object, status.String(), duration.String()})
	}
	t.Render()
	return failed
}

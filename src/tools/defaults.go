package tools

import (
	"time"

	taskpilot "github.com/davidhaley/taskpilot"
	"github.com/davidhaley/taskpilot/src/mail"
	"github.com/davidhaley/taskpilot/src/models"
)

// Defaults returns the full tool set in its canonical registration order.
// sender may be nil when no mail provider is configured; the email tool
// then reports the missing provider at invocation time. now feeds the
// calendar tools' relative-date resolution and defaults to time.Now.
func Defaults(oracle models.Agent, sender mail.Sender, now func() time.Time) []taskpilot.Tool {
	return []taskpilot.Tool{
		AddTool{},
		SubtractTool{},
		MultiplyTool{},
		DivideTool{},
		WeatherTool{},
		EmailTool{Sender: sender},
		DocumentTool{Oracle: oracle},
		CalendarLookupTool{Now: now},
		MeetingTool{Now: now},
	}
}

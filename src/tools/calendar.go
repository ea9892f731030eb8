package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	taskpilot "github.com/davidhaley/taskpilot"
	"github.com/davidhaley/taskpilot/src/dates"
)

// CalendarAction is the structured descriptor handed to a downstream
// calendar executor. Calendar tools only parse intent; unlike email, they
// never perform the side effect themselves.
type CalendarAction struct {
	ToolName   string             `json:"tool_name"`
	Parameters CalendarParameters `json:"parameters"`
}

// CalendarParameters carries the optional fields of a calendar action.
// StartTime and EndTime are ISO-8601 local timestamps.
type CalendarParameters struct {
	Date           string   `json:"date,omitempty"`
	Title          string   `json:"title,omitempty"`
	StartTime      string   `json:"start_time,omitempty"`
	EndTime        string   `json:"end_time,omitempty"`
	Attendees      []string `json:"attendees,omitempty"`
	CreateMeetLink bool     `json:"create_meet_link,omitempty"`
}

// CalendarLookupTool resolves the requested day and returns a lookup
// descriptor for the downstream executor.
type CalendarLookupTool struct {
	Now func() time.Time
}

func (CalendarLookupTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "get_calendar_events",
		Args:        []taskpilot.ArgSpec{{Name: "date", Type: "string"}},
		Description: "returns the calendar events for the given date; the date may be relative (\"tomorrow\") or ISO (\"2025-04-01\")",
	}
}

func (t CalendarLookupTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	raw, _ := req.Arguments["date"].(string)
	day, err := resolveDay(raw, t.now())
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}

	action := CalendarAction{
		ToolName:   "get_calendar_events",
		Parameters: CalendarParameters{Date: day},
	}
	return taskpilot.ToolResponse{
		Content: fmt.Sprintf("Calendar lookup requested for %s", day),
		Payload: action,
	}, nil
}

func (t CalendarLookupTool) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// MeetingTool turns meeting arguments extracted from free text into a
// schedule_meeting descriptor with ISO-8601 local timestamps.
type MeetingTool struct {
	Now func() time.Time
}

func (MeetingTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name: "schedule_meeting",
		Args: []taskpilot.ArgSpec{
			{Name: "date", Type: "string"},
			{Name: "start_time", Type: "string"},
			{Name: "end_time", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "attendees", Type: "list of email addresses"},
			{Name: "create_meet_link", Type: "boolean"},
		},
		Description: "schedules a meeting; extract the fields from the user's phrasing",
		Examples: []string{
			`"set up a meeting with alice@example.com tomorrow from 3pm to 4pm about the roadmap" -> {"tool": "schedule_meeting", "args": {"date": "tomorrow", "start_time": "3pm", "end_time": "4pm", "title": "the roadmap", "attendees": ["alice@example.com"], "create_meet_link": false}}`,
			`"book a video call titled Standup next Monday 09:00-09:15 with bob@example.com and carol@example.com" -> {"tool": "schedule_meeting", "args": {"date": "next Monday", "start_time": "09:00", "end_time": "09:15", "title": "Standup", "attendees": ["bob@example.com", "carol@example.com"], "create_meet_link": true}}`,
		},
	}
}

func (t MeetingTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	rawDate, _ := req.Arguments["date"].(string)
	day, err := resolveDay(rawDate, t.now())
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}

	start, err := timestampArg(req.Arguments, "start_time", day)
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	end, err := timestampArg(req.Arguments, "end_time", day)
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}

	title, _ := req.Arguments["title"].(string)
	title = strings.TrimSpace(title)
	meet, _ := req.Arguments["create_meet_link"].(bool)

	action := CalendarAction{
		ToolName: "schedule_meeting",
		Parameters: CalendarParameters{
			Date:           day,
			Title:          title,
			StartTime:      start,
			EndTime:        end,
			Attendees:      attendeesArg(req.Arguments["attendees"]),
			CreateMeetLink: meet,
		},
	}
	content := fmt.Sprintf("Meeting %q prepared for %s", title, day)
	if title == "" {
		content = fmt.Sprintf("Meeting prepared for %s", day)
	}
	return taskpilot.ToolResponse{Content: content, Payload: action}, nil
}

func (t MeetingTool) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// resolveDay normalizes a date argument: a relative phrase resolves with a
// prefer-future bias, an ISO date passes through, and an empty argument
// means today.
func resolveDay(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format("2006-01-02"), nil
	}
	if resolved, ok := dates.Resolve(raw, now); ok {
		return resolved.ISO(), nil
	}
	if d, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return d.Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

// timestampArg combines a clock-time argument with the resolved day into an
// ISO-8601 local timestamp.
func timestampArg(args map[string]any, name, day string) (string, error) {
	raw, _ := args[name].(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	clock, err := parseClock(raw)
	if err != nil {
		return "", fmt.Errorf("argument %q: %w", name, err)
	}
	return day + "T" + clock, nil
}

var clockLayouts = []string{"15:04:05", "15:04", "3:04pm", "3:04 pm", "3pm", "3 pm"}

func parseClock(raw string) (string, error) {
	normalized := strings.ToLower(raw)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("unrecognized time %q", raw)
}

func attendeesArg(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

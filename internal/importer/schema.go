package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// State is the top-level JSON document PlanWise reads and writes.
type State struct {
	Profile     *ProfileDoc `json:"profile"`
	Tasks       []TaskDoc   `json:"tasks"`
	RankedTasks []TaskDoc   `json:"rankedTasks"`
	Schedule    []BlockDoc  `json:"schedule"`
	FixedBlocks []BlockDoc  `json:"fixedBlocks"`
	Goals       []GoalDoc   `json:"goals"`
}

// ProfileDoc is the questionnaire answers. The two schedule fields are kept
// raw because older documents stored them as plain strings; MigrateLegacy
// rewrites them into the day -> []CommitmentDoc form.
type ProfileDoc struct {
	UserName             string          `json:"user_name"`
	UserAgeGroup         string          `json:"user_age_group"`
	WeeklySchedule       json.RawMessage `json:"weekly_schedule,omitempty"`
	WeekendSchedule      json.RawMessage `json:"weekend_schedule,omitempty"`
	SleepWeekdays        string          `json:"sleep_weekdays"`
	SleepWeekends        string          `json:"sleep_weekends"`
	BreakTimes           string          `json:"break_times"`
	IsProcrastinator     FlexString      `json:"is_procrastinator"`
	ProcrastinatorType   FlexString      `json:"procrastinator_type"`
	HasTroubleFinishing  FlexString      `json:"has_trouble_finishing"`
	PreferredWorkStyle   FlexString      `json:"preferred_work_style"`
	MostProductiveTime   FlexString      `json:"most_productive_time"`
	PreferredStudyMethod string          `json:"preferred_study_method"`
	WeeklyPersonalTime   FlexNumber      `json:"weekly_personal_time"`
	WeeklyReviewHours    FlexNumber      `json:"weekly_review_hours"`

	// Deprecated questionnaire field, dropped on migration.
	WorksBest *string `json:"works_best,omitempty"`
}

// CommitmentDoc is one entry of a weekly or weekend schedule.
type CommitmentDoc struct {
	Name        string `json:"name"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// ScheduleDoc maps a day key to its commitments.
type ScheduleDoc map[string][]CommitmentDoc

type TaskDoc struct {
	ID                string     `json:"id"`
	TaskName          string     `json:"task_name"`
	TaskPriority      string     `json:"task_priority"`
	TaskCategory      string     `json:"task_category,omitempty"`
	TaskDeadline      string     `json:"task_deadline"`
	TaskDeadlineTime  string     `json:"task_deadline_time,omitempty"`
	TaskDurationHours FlexNumber `json:"task_duration_hours"`
	ComputerRequired  bool       `json:"computer_required"`
	Completed         *bool      `json:"completed,omitempty"`
}

// BlockDoc is a placed task chunk (kind "task") or a merged fixed block
// (kind "fixed"). Start and End are RFC 3339 timestamps.
type BlockDoc struct {
	Kind      string `json:"kind"`
	ID        string `json:"id,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
	TaskName  string `json:"taskName,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Category  string `json:"category,omitempty"`
	Label     string `json:"label,omitempty"`
	Start     string `json:"start"`
	End       string `json:"end"`
	IsWeekend bool   `json:"isWeekend,omitempty"`
}

type GoalDoc struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Color GoalColor `json:"color"`
}

// GoalColor is a CSS color. Older documents stored an object of
// background, border and text colors; the text color is kept.
type GoalColor string

func (c *GoalColor) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var legacy struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return err
		}
		*c = GoalColor(legacy.Text)
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return err
	}
	*c = GoalColor(s)
	return nil
}

// FlexString decodes a JSON string, boolean, number or null into text.
// Booleans become "yes" or "no".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*f = ""
	case bytes.Equal(trimmed, []byte("true")):
		*f = "yes"
	case bytes.Equal(trimmed, []byte("false")):
		*f = "no"
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		*f = FlexString(trimmed)
	}
	return nil
}

// FlexNumber decodes a JSON number, a numeric string or null. Text that is
// not a number decodes as zero.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			n = 0
		}
		*f = FlexNumber(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*f = FlexNumber(n)
	return nil
}

// LoadState reads and parses a state document from disk.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseState(data)
}

func ParseState(data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	return &state, nil
}

// WriteState encodes the document as indented JSON.
func WriteState(w io.Writer, state *State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return nil
}

package importer

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeScheduleDoc(t *testing.T, raw json.RawMessage) ScheduleDoc {
	t.Helper()
	var doc ScheduleDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestMigrateLegacy_WeeklyStringBecomesFixedCommitment(t *testing.T) {
	state := &State{Profile: &ProfileDoc{
		WeeklySchedule: json.RawMessage(`{
			"Mon": "09:00-15:00",
			"Tue": [{"name": "Math", "time": "10:00-11:00", "description": "room 4"}],
			"Wed": "   ",
			"Thu": null
		}`),
	}}

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)
	assert.Contains(t, notes, "profile.weekly_schedule: converted legacy text entries")

	doc := decodeScheduleDoc(t, state.Profile.WeeklySchedule)
	assert.Equal(t, []CommitmentDoc{{Name: "Fixed commitment", Time: "09:00-15:00"}}, doc["Mon"])
	assert.Equal(t, []CommitmentDoc{{Name: "Math", Time: "10:00-11:00", Description: "room 4"}}, doc["Tue"])
	assert.Empty(t, doc["Wed"])
	assert.Empty(t, doc["Thu"])
}

func TestMigrateLegacy_CurrentFormatUntouched(t *testing.T) {
	state := &State{Profile: &ProfileDoc{
		WeeklySchedule:     json.RawMessage(`{"Mon": [{"name": "Work", "time": "09:00-17:00", "description": ""}]}`),
		WeekendSchedule:    json.RawMessage(`{"Saturday": [], "Sunday": []}`),
		ProcrastinatorType: "perfectionist",
	}}

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, FlexString("perfectionist"), state.Profile.ProcrastinatorType)
}

func TestMigrateLegacy_MissingSchedulesBecomeEmptyObjects(t *testing.T) {
	state := &State{Profile: &ProfileDoc{}}

	_, err := MigrateLegacy(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(state.Profile.WeeklySchedule))
	assert.JSONEq(t, `{}`, string(state.Profile.WeekendSchedule))
}

func TestMigrateLegacy_WeekendText(t *testing.T) {
	state := &State{Profile: &ProfileDoc{
		WeekendSchedule: json.RawMessage(`"Saturday 10:00-12:00 soccer\nSun 9:00 - 10:30 brunch; sat 14:00-15:00"`),
	}}

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)
	assert.Contains(t, notes, "profile.weekend_schedule: parsed legacy text")

	doc := decodeScheduleDoc(t, state.Profile.WeekendSchedule)
	assert.Equal(t, []CommitmentDoc{
		{Name: "soccer", Time: "10:00-12:00"},
		{Name: "", Time: "14:00-15:00"},
	}, doc["Saturday"])
	assert.Equal(t, []CommitmentDoc{{Name: "brunch", Time: "9:00-10:30"}}, doc["Sunday"])
}

func TestMigrateLegacy_WeeklyStringScheduleRejected(t *testing.T) {
	state := &State{Profile: &ProfileDoc{WeeklySchedule: json.RawMessage(`"Mon 09:00-10:00"`)}}

	_, err := MigrateLegacy(state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile.weekly_schedule")
}

func TestMigrateLegacy_DropsWorksBest(t *testing.T) {
	old := "mornings"
	state := &State{Profile: &ProfileDoc{WorksBest: &old}}

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)
	assert.Nil(t, state.Profile.WorksBest)
	assert.Contains(t, notes, "profile.works_best: removed")
}

func TestMigrateLegacy_TaskDefaults(t *testing.T) {
	done := true
	state := &State{Tasks: []TaskDoc{
		{TaskName: "No id"},
		{ID: "keep", TaskName: "Has id", Completed: &done},
	}}

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)

	assert.NotEmpty(t, state.Tasks[0].ID)
	require.NotNil(t, state.Tasks[0].Completed)
	assert.False(t, *state.Tasks[0].Completed)
	assert.Equal(t, "keep", state.Tasks[1].ID)
	assert.True(t, *state.Tasks[1].Completed)
	assert.Equal(t, []string{"tasks[0]: generated id", "tasks[0]: completed defaulted to false"}, notes)
}

func TestMigrateLegacy_GoalsWithObjectColor(t *testing.T) {
	state, err := ParseState([]byte(`{"goals":[
		{"name":"Fitness","color":{"bg":"#ede9fe","border":"#7c3aed","text":"#5b21b6"}},
		{"id":"g2","name":"Reading","color":"#0284c7"}
	]}`))
	require.NoError(t, err)

	notes, err := MigrateLegacy(state)
	require.NoError(t, err)

	assert.NotEmpty(t, state.Goals[0].ID)
	assert.Equal(t, GoalColor("#5b21b6"), state.Goals[0].Color)
	assert.Equal(t, "g2", state.Goals[1].ID)
	assert.Equal(t, GoalColor("#0284c7"), state.Goals[1].Color)
	assert.Contains(t, notes, "goals[0]: generated id")
}

func TestMigrateProcrastinatorType(t *testing.T) {
	cases := []struct {
		in   string
		want domain.ProcrastinatorType
	}{
		{"Perfectionist", domain.ProcrastinatorPerfectionist},
		{"Deadline-driven", domain.ProcrastinatorDeadlineDriven},
		{"Works better under pressure", domain.ProcrastinatorDeadlineDriven},
		{"Dreamer", domain.ProcrastinatorLackOfMotivation},
		{"Fear-based", domain.ProcrastinatorOverwhelmed},
		{"Decision-fatigue", domain.ProcrastinatorOverwhelmed},
		{"Distraction", domain.ProcrastinatorDistraction},
		{"Avoidant", domain.ProcrastinatorAvoidant},
		{"overwhelmed", domain.ProcrastinatorOverwhelmed},
		{"Something Else", "something else"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, MigrateProcrastinatorType(tc.in))
		})
	}
}

func TestParseWeekendText(t *testing.T) {
	cases := []struct {
		name         string
		text         string
		wantSaturday []CommitmentDoc
		wantSunday   []CommitmentDoc
	}{
		{
			name:         "empty",
			text:         "",
			wantSaturday: []CommitmentDoc{},
			wantSunday:   []CommitmentDoc{},
		},
		{
			name:         "label before and after the range",
			text:         "Saturday swim 08:00-09:00 laps",
			wantSaturday: []CommitmentDoc{{Name: "swim  laps", Time: "08:00-09:00"}},
			wantSunday:   []CommitmentDoc{},
		},
		{
			name:         "lines without a day are ignored",
			text:         "08:00-09:00 gym\nSunday 10:00-11:00 church",
			wantSaturday: []CommitmentDoc{},
			wantSunday:   []CommitmentDoc{{Name: "church", Time: "10:00-11:00"}},
		},
		{
			name:         "lines without a range are ignored",
			text:         "Saturday all day hiking",
			wantSaturday: []CommitmentDoc{},
			wantSunday:   []CommitmentDoc{},
		},
		{
			name:         "day prefix must be a whole word",
			text:         "Saturn 10:00-11:00 telescope",
			wantSaturday: []CommitmentDoc{},
			wantSunday:   []CommitmentDoc{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseWeekendText(tc.text)
			assert.Equal(t, tc.wantSaturday, got["Saturday"])
			assert.Equal(t, tc.wantSunday, got["Sunday"])
		})
	}
}

package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityUrgentImportant       Priority = "Urgent & Important"
	PriorityUrgentNotImportant    Priority = "Urgent, Not Important"
	PriorityImportantNotUrgent    Priority = "Important, Not Urgent"
	PriorityNotUrgentNotImportant Priority = "Not Urgent & Not Important"
)

// Priorities lists the four quadrants from most to least urgent.
var Priorities = []Priority{
	PriorityUrgentImportant,
	PriorityUrgentNotImportant,
	PriorityImportantNotUrgent,
	PriorityNotUrgentNotImportant,
}

var priorityWeights = map[Priority]int{
	PriorityUrgentImportant:       1,
	PriorityUrgentNotImportant:    2,
	PriorityImportantNotUrgent:    3,
	PriorityNotUrgentNotImportant: 4,
}

var priorityAliases = map[string]Priority{
	"urgent-important":         PriorityUrgentImportant,
	"urgent-not-important":     PriorityUrgentNotImportant,
	"important-not-urgent":     PriorityImportantNotUrgent,
	"not-urgent-not-important": PriorityNotUrgentNotImportant,
	"1":                        PriorityUrgentImportant,
	"2":                        PriorityUrgentNotImportant,
	"3":                        PriorityImportantNotUrgent,
	"4":                        PriorityNotUrgentNotImportant,
}

// Weight is the scoring weight (1 = most urgent). Unknown labels score as 4.
func (p Priority) Weight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return 4
}

// RankWeight is the ordering weight. Unknown labels sort after every known one.
func (p Priority) RankWeight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return 99
}

func (p Priority) Valid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// ParsePriority accepts a quadrant label, its slug, or its weight.
func ParsePriority(s string) (Priority, error) {
	trimmed := strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(trimmed, string(p)) {
			return p, nil
		}
	}
	if p, ok := priorityAliases[strings.ToLower(trimmed)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

type WorkStyle string

const (
	WorkStyleUnset        WorkStyle = ""
	WorkStyleShortBursts  WorkStyle = "short-bursts"
	WorkStyleLongSessions WorkStyle = "long-sessions"
	WorkStyleMixed        WorkStyle = "mixed"
)

var workStyleLabels = map[WorkStyle]string{
	WorkStyleShortBursts:  "Short, focused bursts",
	WorkStyleLongSessions: "Long, deep sessions",
	WorkStyleMixed:        "A mix of both",
}

func (w WorkStyle) Label() string {
	return workStyleLabels[w]
}

// ParseWorkStyle accepts either the slug or the questionnaire label.
func ParseWorkStyle(s string) (WorkStyle, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return WorkStyleUnset, nil
	}
	for style, label := range workStyleLabels {
		if strings.EqualFold(trimmed, string(style)) || strings.EqualFold(trimmed, label) {
			return style, nil
		}
	}
	return WorkStyleUnset, fmt.Errorf("unknown work style %q", s)
}

type ProcrastinatorType string

const (
	ProcrastinatorUnset            ProcrastinatorType = ""
	ProcrastinatorPerfectionist    ProcrastinatorType = "perfectionist"
	ProcrastinatorDeadlineDriven   ProcrastinatorType = "deadline-driven"
	ProcrastinatorLackOfMotivation ProcrastinatorType = "lack-of-motivation"
	ProcrastinatorAvoidant         ProcrastinatorType = "avoidant"
	ProcrastinatorDistraction      ProcrastinatorType = "distraction"
	ProcrastinatorOverwhelmed      ProcrastinatorType = "overwhelmed"
)

// ProcrastinatorTypes is the closed set of accepted types.
var ProcrastinatorTypes = []ProcrastinatorType{
	ProcrastinatorPerfectionist,
	ProcrastinatorDeadlineDriven,
	ProcrastinatorLackOfMotivation,
	ProcrastinatorAvoidant,
	ProcrastinatorDistraction,
	ProcrastinatorOverwhelmed,
}

func ParseProcrastinatorType(s string) (ProcrastinatorType, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ProcrastinatorUnset, nil
	}
	for _, t := range ProcrastinatorTypes {
		if trimmed == string(t) {
			return t, nil
		}
	}
	return ProcrastinatorUnset, fmt.Errorf("unknown procrastinator type %q", s)
}

type TroubleFinishing string

const (
	TroubleFinishingUnset TroubleFinishing = ""
	TroubleFinishingYes   TroubleFinishing = "yes"
	TroubleFinishingNo    TroubleFinishing = "no"
)

// ParseTroubleFinishing accepts yes/no and the questionnaire answers.
func ParseTroubleFinishing(s string) (TroubleFinishing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TroubleFinishingUnset, nil
	case "yes", "yes, sometimes", "true", "y":
		return TroubleFinishingYes, nil
	case "no", "false", "n":
		return TroubleFinishingNo, nil
	default:
		return TroubleFinishingUnset, fmt.Errorf("unknown trouble-finishing answer %q", s)
	}
}

type ProductiveTime string

const (
	ProductiveUnset        ProductiveTime = ""
	ProductiveEarlyMorning ProductiveTime = "Early Morning"
	ProductiveMorning      ProductiveTime = "Morning"
	ProductiveAfternoon    ProductiveTime = "Afternoon"
	ProductiveEvening      ProductiveTime = "Evening"
	ProductiveLateNight    ProductiveTime = "Late Night"
)

var ProductiveTimes = []ProductiveTime{
	ProductiveEarlyMorning,
	ProductiveMorning,
	ProductiveAfternoon,
	ProductiveEvening,
	ProductiveLateNight,
}

var productiveWindows = map[ProductiveTime][2]int{
	ProductiveEarlyMorning: {6, 9},
	ProductiveMorning:      {9, 12},
	ProductiveAfternoon:    {12, 17},
	ProductiveEvening:      {17, 21},
	ProductiveLateNight:    {21, 24},
}

// Window returns the [start, end) hour range, [9, 17) when unset.
func (p ProductiveTime) Window() (startHour, endHour int) {
	if w, ok := productiveWindows[p]; ok {
		return w[0], w[1]
	}
	return 9, 17
}

// ParseProductiveTime accepts "Late Night", "late-night" and similar spellings.
func ParseProductiveTime(s string) (ProductiveTime, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "-", " ")
	if normalized == "" {
		return ProductiveUnset, nil
	}
	for _, p := range ProductiveTimes {
		if strings.EqualFold(normalized, string(p)) {
			return p, nil
		}
	}
	return ProductiveUnset, fmt.Errorf("unknown productive time %q", s)
}

type FixedCategory string

const (
	FixedRoutine FixedCategory = "routine"
	FixedBreak   FixedCategory = "break"
	FixedWeekend FixedCategory = "weekend"
)

type StrategyKind string

const (
	StrategyBalanced          StrategyKind = "balanced"
	StrategyDistributed       StrategyKind = "distributed"
	StrategyIntensive         StrategyKind = "intensive"
	StrategyDeadlineProximate StrategyKind = "deadline-proximate"
)

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/planwise/internal/db"
	"github.com/alexanderramin/planwise/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database. There is
// a single profile row with id 'default'.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

// commitmentRecord is the JSON shape of a commitment inside the schedule
// columns. Parsed ranges are not stored; they are derived on load.
type commitmentRecord struct {
	Name        string `json:"name,omitempty"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

func encodeSchedule(schedule map[string][]domain.Commitment) (string, error) {
	out := make(map[string][]commitmentRecord, len(schedule))
	for day, list := range schedule {
		records := make([]commitmentRecord, len(list))
		for i, c := range list {
			records[i] = commitmentRecord{Name: c.Name, Time: c.Time, Description: c.Description}
		}
		out[day] = records
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeSchedule(raw string) (map[string][]domain.Commitment, error) {
	var in map[string][]commitmentRecord
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	out := make(map[string][]domain.Commitment, len(in))
	for day, records := range in {
		list := make([]domain.Commitment, len(records))
		for i, r := range records {
			list[i] = domain.NewCommitment(r.Name, r.Time, r.Description)
		}
		out[day] = list
	}
	return out, nil
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT name, age_group, weekly_schedule, weekend_schedule, sleep_weekdays, sleep_weekends,
		break_times, is_procrastinator, procrastinator_type, trouble_finishing, work_style,
		productive_time, study_method, weekly_personal_hours, weekly_review_hours, updated_at
		FROM profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	p := domain.NewProfile()
	var weekly, weekend, breaks, updatedAt string
	var procrastinator int
	var procType, trouble, workStyle, productive string
	err := row.Scan(
		&p.Name, &p.AgeGroup, &weekly, &weekend, &p.SleepWeekdays, &p.SleepWeekends,
		&breaks, &procrastinator, &procType, &trouble, &workStyle,
		&productive, &p.StudyMethod, &p.WeeklyPersonalHours, &p.WeeklyReviewHours, &updatedAt,
	)
	if err != nil {
		return nil, notFound("profile", err)
	}

	if p.WeeklySchedule, err = decodeSchedule(weekly); err != nil {
		return nil, fmt.Errorf("decoding weekly_schedule: %w", err)
	}
	if p.WeekendSchedule, err = decodeSchedule(weekend); err != nil {
		return nil, fmt.Errorf("decoding weekend_schedule: %w", err)
	}
	p.SetBreakTimes(breaks)
	p.IsProcrastinator = intToBool(procrastinator)
	p.ProcrastinatorType = domain.ProcrastinatorType(procType)
	p.TroubleFinishing = domain.TroubleFinishing(trouble)
	p.WorkStyle = domain.WorkStyle(workStyle)
	p.ProductiveTime = domain.ProductiveTime(productive)
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	weekly, err := encodeSchedule(p.WeeklySchedule)
	if err != nil {
		return fmt.Errorf("encoding weekly schedule: %w", err)
	}
	weekend, err := encodeSchedule(p.WeekendSchedule)
	if err != nil {
		return fmt.Errorf("encoding weekend schedule: %w", err)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	}

	query := `INSERT OR REPLACE INTO profile (id, name, age_group, weekly_schedule, weekend_schedule,
		sleep_weekdays, sleep_weekends, break_times, is_procrastinator, procrastinator_type,
		trouble_finishing, work_style, productive_time, study_method,
		weekly_personal_hours, weekly_review_hours, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.Name,
		p.AgeGroup,
		weekly,
		weekend,
		p.SleepWeekdays,
		p.SleepWeekends,
		p.BreakTimesText,
		boolToInt(p.IsProcrastinator),
		string(p.ProcrastinatorType),
		string(p.TroubleFinishing),
		string(p.WorkStyle),
		string(p.ProductiveTime),
		p.StudyMethod,
		p.WeeklyPersonalHours,
		p.WeeklyReviewHours,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

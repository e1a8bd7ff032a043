package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

type fakePreferenceRepository struct {
	mu          sync.Mutex
	prefs       map[string]*domain.ReminderPreferences
	err         error
	panicOnMark bool
}

func newFakePreferenceRepository() *fakePreferenceRepository {
	return &fakePreferenceRepository{prefs: make(map[string]*domain.ReminderPreferences)}
}

func (f *fakePreferenceRepository) set(id string, p *domain.ReminderPreferences) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[id] = p
}

func (f *fakePreferenceRepository) Get(_ context.Context, id string) (*domain.ReminderPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.prefs[id]
	if !ok {
		p = domain.DefaultPreferences("UTC")
		f.prefs[id] = p
	}
	cp := *p
	return &cp, nil
}

func (f *fakePreferenceRepository) Update(ctx context.Context, id string, update domain.PreferencesUpdate) (*domain.ReminderPreferences, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update.ApplyTo(p)
	f.set(id, p)
	cp := *p
	return &cp, nil
}

func (f *fakePreferenceRepository) SetLastReminderSentAt(_ context.Context, id string, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOnMark {
		panic("preference store exploded")
	}
	if f.err != nil {
		return f.err
	}
	p, ok := f.prefs[id]
	if !ok {
		p = domain.DefaultPreferences("UTC")
		f.prefs[id] = p
	}
	p.LastReminderSentAt = &sentAt
	return nil
}

// fakeHistory answers every lookup from fixed values.
type fakeHistory struct {
	last       *time.Time
	todayCount int
	weekCount  int
	dates      []domain.Date
	recent     []domain.WorkoutSession
	err        error
}

func (f *fakeHistory) CountSessionsOnDate(context.Context, string, domain.Date, *time.Location) (int, error) {
	return f.todayCount, f.err
}

func (f *fakeHistory) CountSessionsInRange(context.Context, string, domain.Date, domain.Date, *time.Location) (int, error) {
	return f.weekCount, f.err
}

func (f *fakeHistory) LastSessionStartTime(context.Context, string) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.last, nil
}

func (f *fakeHistory) RecentSessions(context.Context, string, int) ([]domain.WorkoutSession, error) {
	return f.recent, f.err
}

func (f *fakeHistory) SessionDatesInRange(context.Context, string, domain.Date, domain.Date, *time.Location) ([]domain.Date, error) {
	return f.dates, f.err
}

func (f *fakeHistory) SaveSession(context.Context, *domain.WorkoutSession) error {
	return f.err
}

// hookedHistory runs onLookup once, on the first recent-sessions lookup.
type hookedHistory struct {
	*fakeHistory
	once     sync.Once
	onLookup func()
}

func (h *hookedHistory) RecentSessions(ctx context.Context, id string, limit int) ([]domain.WorkoutSession, error) {
	h.once.Do(h.onLookup)
	return h.fakeHistory.RecentSessions(ctx, id, limit)
}

type sentMessage struct {
	installationID string
	msg            domain.Message
}

type fakeNotifier struct {
	sent  []sentMessage
	err   error
	panic bool
	// onSend runs inside Send before delivery.
	onSend func()
}

func (f *fakeNotifier) Send(_ context.Context, id string, msg domain.Message) error {
	if f.onSend != nil {
		f.onSend()
	}
	if f.panic {
		panic("notifier exploded")
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{installationID: id, msg: msg})
	return nil
}

// fakeJobHost keeps at most one wake per name, like the real host.
type fakeJobHost struct {
	now       func() time.Time
	wakes     map[string]*domain.ScheduledWake
	schedules int
	cancels   int
	err       error
}

func newFakeJobHost(now func() time.Time) *fakeJobHost {
	return &fakeJobHost{now: now, wakes: make(map[string]*domain.ScheduledWake)}
}

func (f *fakeJobHost) ScheduleOnce(_ context.Context, name, id string, delay time.Duration) (*domain.ScheduledWake, error) {
	f.schedules++
	if f.err != nil {
		return nil, f.err
	}
	wake := &domain.ScheduledWake{
		Name:           name,
		TaskID:         name + "-task",
		InstallationID: id,
		FireAt:         f.now().Add(delay),
		ArmedAt:        f.now(),
	}
	f.wakes[name] = wake
	return wake, nil
}

func (f *fakeJobHost) Cancel(_ context.Context, name string) error {
	f.cancels++
	if f.err != nil {
		return f.err
	}
	delete(f.wakes, name)
	return nil
}

var errFake = errors.New("fake failure")

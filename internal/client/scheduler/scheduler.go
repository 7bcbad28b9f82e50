// Package scheduler holds the booking screen's state machine: the selected
// provider, day and hour, the fetched provider and availability lists, and
// the derived morning/afternoon views.
//
// Availability is refetched whenever the (provider, day) pair changes; each
// fetch replaces the whole list. Fetches are tagged so a slow response for an
// old pair can never overwrite the result of a newer selection.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gobarber-cli/internal/client/api"
	"gobarber-cli/internal/client/models"
	"gobarber-cli/internal/logging"
)

// HourNone is the "no hour selected" sentinel.
const HourNone = 0

var (
	// ErrNoProvider means Submit ran before a provider was selected.
	ErrNoProvider = errors.New("no provider selected")

	// ErrNoHour means Submit ran before an hour was selected.
	ErrNoHour = errors.New("no hour selected")
)

// Slot is one hour of a provider's day as the screen shows it.
type Slot struct {
	Hour      int
	Available bool
	Label     string
}

// Confirmation carries what the confirmation screen needs: the booked
// instant and the provider's display name.
type Confirmation struct {
	Date     time.Time
	Provider string
}

// State is an immutable snapshot handed to observers.
type State struct {
	SelectedProvider string
	SelectedDate     time.Time
	SelectedHour     int
	Providers        []models.Provider
	Availability     []models.AvailabilitySlot
}

// Scheduler is the booking view-model. Exactly one provider and at most one
// hour are selected at a time. Safe for concurrent use; observer callbacks
// run outside the lock.
type Scheduler struct {
	mu     sync.Mutex
	client api.Client
	log    logging.Logger

	providers    []models.Provider
	availability []models.AvailabilitySlot

	selectedProvider string
	selectedDate     time.Time
	selectedHour     int

	// Tag of the availability request allowed to write results back.
	fetchTag uuid.UUID

	subs    map[int]func(State)
	nextSub int
}

// New builds a scheduler starting at providerID (may be "") on today's date
// with no hour selected.
func New(client api.Client, log logging.Logger, providerID string) *Scheduler {
	return &Scheduler{
		client:           client,
		log:              log,
		selectedProvider: providerID,
		selectedDate:     time.Now(),
		selectedHour:     HourNone,
		subs:             make(map[int]func(State)),
	}
}

// Load performs the initial fetches: the provider list once, and the
// availability of the current (provider, day) pair. The two are independent;
// neither orders before the other.
func (s *Scheduler) Load(ctx context.Context) error {
	providers, err := s.client.ListProviders(ctx)
	if err != nil {
		return fmt.Errorf("loading providers: %w", err)
	}

	s.mu.Lock()
	s.providers = providers
	hasProvider := s.selectedProvider != ""
	s.mu.Unlock()
	s.notify()

	if !hasProvider {
		return nil
	}
	return s.refetchAvailability(ctx)
}

// SelectProvider makes id the selected provider, deselecting the previous
// one, and refetches availability exactly once.
func (s *Scheduler) SelectProvider(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.selectedProvider == id {
		s.mu.Unlock()
		return nil
	}
	s.selectedProvider = id
	s.mu.Unlock()
	s.notify()

	return s.refetchAvailability(ctx)
}

// SelectDate sets the selected day and refetches availability. A zero time
// means the date interaction is still open and nothing has changed yet.
func (s *Scheduler) SelectDate(ctx context.Context, day time.Time) error {
	if day.IsZero() {
		return nil
	}

	s.mu.Lock()
	s.selectedDate = day
	s.mu.Unlock()
	s.notify()

	return s.refetchAvailability(ctx)
}

// SelectHour records the chosen hour. Purely local, no fetch. The model does
// not check the slot's availability; the screen keeps unavailable hours from
// being picked.
func (s *Scheduler) SelectHour(hour int) {
	s.mu.Lock()
	s.selectedHour = hour
	s.mu.Unlock()
	s.notify()
}

// Selected returns the current (provider, day, hour) selection.
func (s *Scheduler) Selected() (provider string, day time.Time, hour int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProvider, s.selectedDate, s.selectedHour
}

// Providers returns the fetched provider list.
func (s *Scheduler) Providers() []models.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Morning returns the slots before noon, labeled "HH:00".
func (s *Scheduler) Morning() []Slot {
	return s.slots(func(hour int) bool { return hour < 12 })
}

// Afternoon returns the slots from noon on, labeled "HH:00".
func (s *Scheduler) Afternoon() []Slot {
	return s.slots(func(hour int) bool { return hour >= 12 })
}

func (s *Scheduler) slots(keep func(hour int) bool) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Slot, 0, len(s.availability))
	for _, a := range s.availability {
		if keep(a.Hour) {
			out = append(out, Slot{Hour: a.Hour, Available: a.Available, Label: a.Label()})
		}
	}
	return out
}

// Submit books the current selection: the selected day at the selected hour,
// minute zero. On success the returned confirmation carries the booked
// instant and the provider's name. On failure the scheduler's state is
// unchanged and the booking screen stays where it was.
func (s *Scheduler) Submit(ctx context.Context) (Confirmation, error) {
	s.mu.Lock()
	provider, day, hour := s.selectedProvider, s.selectedDate, s.selectedHour
	name := s.providerName(provider)
	s.mu.Unlock()

	if provider == "" {
		return Confirmation{}, ErrNoProvider
	}
	if hour == HourNone {
		return Confirmation{}, ErrNoHour
	}

	date := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())

	appt, err := s.client.CreateAppointment(ctx, provider, date)
	if err != nil {
		return Confirmation{}, fmt.Errorf("creating appointment: %w", err)
	}

	booked := appt.Date
	if booked.IsZero() {
		booked = date
	}
	s.log.Info(ctx, "appointment created", "provider", provider, "date", booked)
	return Confirmation{Date: booked, Provider: name}, nil
}

// providerName resolves a provider ID to its display name; callers hold mu.
func (s *Scheduler) providerName(id string) string {
	for _, p := range s.providers {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// Subscribe registers fn to run after every state change and returns a
// cancel function that unsubscribes it.
func (s *Scheduler) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// refetchAvailability replaces the availability list with the slots of the
// current (provider, day) pair. The request is tagged before the network
// call; a response whose tag has been superseded is discarded, so rapid
// provider switches cannot apply a stale list.
func (s *Scheduler) refetchAvailability(ctx context.Context) error {
	s.mu.Lock()
	provider, day := s.selectedProvider, s.selectedDate
	tag := uuid.New()
	s.fetchTag = tag
	s.mu.Unlock()

	slots, err := s.client.DayAvailability(ctx, provider, day)
	if err != nil {
		return fmt.Errorf("loading availability: %w", err)
	}

	s.mu.Lock()
	if s.fetchTag != tag {
		s.mu.Unlock()
		s.log.Info(ctx, "discarding stale availability", "provider", provider)
		return nil
	}
	s.availability = slots
	s.mu.Unlock()
	s.notify()
	return nil
}

// notify hands the current snapshot to every subscriber, outside the lock.
func (s *Scheduler) notify() {
	s.mu.Lock()
	state := State{
		SelectedProvider: s.selectedProvider,
		SelectedDate:     s.selectedDate,
		SelectedHour:     s.selectedHour,
		Providers:        append([]models.Provider(nil), s.providers...),
		Availability:     append([]models.AvailabilitySlot(nil), s.availability...),
	}
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

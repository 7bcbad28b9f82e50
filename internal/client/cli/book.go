package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gobarber-cli/internal/client/scheduler"
)

// Providers lists every bookable barber, the dashboard screen's job.
func (a *App) Providers(ctx context.Context) error {
	providers, err := a.api.ListProviders(ctx)
	if err != nil {
		a.log.Error(ctx, "listing providers failed", "err", err)
		fmt.Fprintln(a.out, "Could not load the barbers list.")
		return err
	}
	if len(providers) == 0 {
		fmt.Fprintln(a.out, "No barbers available yet.")
		return nil
	}
	for i, p := range providers {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, p.Name)
	}
	return nil
}

// Book walks the appointment flow: pick a barber, pick a day, pick an hour
// from the morning/afternoon slots, submit, and show the confirmation.
// Any failure leaves the flow where it was.
func (a *App) Book(ctx context.Context) error {
	sched := scheduler.New(a.api, a.log, "")
	if err := sched.Load(ctx); err != nil {
		a.log.Error(ctx, "loading booking screen failed", "err", err)
		fmt.Fprintln(a.out, "Could not load the booking screen.")
		return err
	}

	providers := sched.Providers()
	if len(providers) == 0 {
		fmt.Fprintln(a.out, "No barbers available yet.")
		return nil
	}
	for i, p := range providers {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, p.Name)
	}

	choice, err := getSimpleText(a.reader, "Choose a barber (number)", a.out)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(providers) {
		fmt.Fprintln(a.out, "Invalid choice.")
		return nil
	}

	if err := sched.SelectProvider(ctx, providers[idx-1].ID); err != nil {
		a.log.Error(ctx, "loading availability failed", "err", err)
		fmt.Fprintln(a.out, "Could not load the barber's availability.")
		return err
	}

	dateStr, err := getSimpleText(a.reader, "Date (YYYY-MM-DD, empty = today)", a.out)
	if err != nil {
		return err
	}
	if dateStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid date.")
			return nil
		}
		if err := sched.SelectDate(ctx, day); err != nil {
			a.log.Error(ctx, "loading availability failed", "err", err)
			fmt.Fprintln(a.out, "Could not load the barber's availability.")
			return err
		}
	}

	printSlots := func(title string, slots []scheduler.Slot) {
		fmt.Fprintln(a.out, title)
		for _, s := range slots {
			if s.Available {
				fmt.Fprintf(a.out, "  %s\n", s.Label)
			} else {
				fmt.Fprintf(a.out, "  %s (taken)\n", s.Label)
			}
		}
	}
	printSlots("Morning:", sched.Morning())
	printSlots("Afternoon:", sched.Afternoon())

	hourStr, err := getSimpleText(a.reader, "Choose an hour (e.g. 14)", a.out)
	if err != nil {
		return err
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid hour.")
		return nil
	}

	// The model accepts any hour; the screen refuses unavailable ones.
	if !hourAvailable(sched, hour) {
		fmt.Fprintln(a.out, "That hour is not available.")
		return nil
	}
	sched.SelectHour(hour)

	conf, err := sched.Submit(ctx)
	if err != nil {
		a.log.Error(ctx, "creating appointment failed", "err", err)
		fmt.Fprintln(a.out, "Error creating the appointment. Try again.")
		return err
	}

	fmt.Fprintf(a.out, "Appointment booked!\n%s with %s\n",
		conf.Date.Format("Monday, January 2, 2006 at 15:04"), conf.Provider)
	return nil
}

func hourAvailable(sched *scheduler.Scheduler, hour int) bool {
	for _, s := range append(sched.Morning(), sched.Afternoon()...) {
		if s.Hour == hour {
			return s.Available
		}
	}
	return false
}

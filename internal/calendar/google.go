package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"shutterbook/pkg/model"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	TokenJSON    string
	CalendarID   string
}

// GoogleSource reads busy intervals from a studio Google Calendar. One
// calendar covers the studio, so every resource sees its events. The feed is
// untrusted extra signal: all errors are surfaced to the composite, which
// degrades rather than fails.
type GoogleSource struct {
	service    *gcalendar.Service
	calendarID string
}

func NewGoogleSource(ctx context.Context, cfg GoogleConfig) (*GoogleSource, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(cfg.TokenJSON), &token); err != nil {
		return nil, fmt.Errorf("invalid google token: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{gcalendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	httpClient := oauthConfig.Client(ctx, &token)
	service, err := gcalendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleSource{
		service:    service,
		calendarID: calendarID,
	}, nil
}

func (s *GoogleSource) Name() string {
	return "google-calendar"
}

func (s *GoogleSource) BusyIntervals(ctx context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, error) {
	events, err := s.service.Events.List(s.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(start.UTC().Format(time.RFC3339)).
		TimeMax(end.UTC().Format(time.RFC3339)).
		MaxResults(250).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	var intervals []model.BusyInterval
	for _, item := range events.Items {
		if item.Status == "cancelled" || item.Transparency == "transparent" {
			continue
		}

		eventStart, eventEnd, ok := eventTimes(item)
		if !ok {
			continue
		}

		intervals = append(intervals, model.BusyInterval{
			ResourceID: resourceID,
			Start:      eventStart,
			End:        eventEnd,
			Source:     model.IntervalExternal,
		})
	}
	return intervals, nil
}

func eventTimes(item *gcalendar.Event) (time.Time, time.Time, bool) {
	start, startOK := parseEventTime(item.Start)
	end, endOK := parseEventTime(item.End)
	if !startOK || !endOK || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseEventTime(edt *gcalendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	if edt.Date != "" {
		// All-day events block the entire day.
		t, err := time.Parse("2006-01-02", edt.Date)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

package utils

import (
	"context"
	"log"

	"facilitybot/config"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var calendarService *calendar.Service

// InitCalendarService authenticates the service account and builds the
// Calendar API client all booking reads and writes go through.
func InitCalendarService() {
	svc, err := calendar.NewService(
		context.Background(),
		option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		log.Fatalf("Failed to initialize Google Calendar service: %v", err)
	}
	calendarService = svc
}

// GetCalendarService returns the shared Calendar API client.
func GetCalendarService() *calendar.Service {
	if calendarService == nil {
		InitCalendarService()
	}
	return calendarService
}

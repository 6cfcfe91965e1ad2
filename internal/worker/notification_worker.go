package worker

import (
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/service"
)

// StartSubscribers attaches the event consumers to the dispatcher.
func StartSubscribers(dispatcher events.Dispatcher, notifications *service.NotificationService, directory *service.DirectoryService) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if directory != nil {
		directory.RegisterHandlers(dispatcher)
	}
}

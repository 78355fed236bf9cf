package update_specialist_notifications

import "context"

type Roster interface {
	SetNotifyFlags(ctx context.Context, specialistID int64, notifyOnBooking, notifyBeforeSession bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

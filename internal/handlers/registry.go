package handlers

import (
	"prepvio_backend/internal/services"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Employee     *EmployeeHandler
	Department   *DepartmentHandler
	Course       *CourseHandler
	Ticket       *TicketHandler
	Interview    *InterviewHandler
	Payment      *PaymentHandler
	Analytics    *AnalyticsHandler
	Notification *NotificationHandler
	Calendar     *CalendarHandler
}

func NewAppHandlers(container *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler()
	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth),
		User:         NewUserHandler(base, container.User),
		Employee:     NewEmployeeHandler(base, container.Employee),
		Department:   NewDepartmentHandler(base, container.Department),
		Course:       NewCourseHandler(base, container.Course),
		Ticket:       NewTicketHandler(base, container.Ticket),
		Interview:    NewInterviewHandler(base, container.Interview, container.Report),
		Payment:      NewPaymentHandler(base, container.Payment),
		Analytics:    NewAnalyticsHandler(base, container.Analytics),
		Notification: NewNotificationHandler(base, container.Notification),
		Calendar:     NewCalendarHandler(base, container.Calendar),
	}
}

package services

import (
	"gorm.io/gorm"

	"prepvio_backend/internal/email"
	"prepvio_backend/internal/payment"
	"prepvio_backend/internal/report"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/sandbox"
	"prepvio_backend/internal/storage"
)

// ServiceContainer wires repositories and external providers into the
// full service set. Handlers receive the container and pick what they
// need.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Employee     EmployeeService
	Department   DepartmentService
	Course       CourseService
	Ticket       TicketService
	Interview    InterviewService
	Payment      PaymentService
	Analytics    AnalyticsService
	Notification NotificationService
	Calendar     CalendarService
	Report       ReportService

	Repos *RepositoryContainer
}

// RepositoryContainer keeps the repositories reachable for workers and
// seeding.
type RepositoryContainer struct {
	Users         repositories.UserRepository
	Employees     repositories.EmployeeRepository
	Departments   repositories.DepartmentRepository
	Courses       repositories.CourseRepository
	Tickets       repositories.TicketRepository
	Interviews    repositories.InterviewRepository
	Payments      repositories.PaymentRepository
	Notifications repositories.NotificationRepository
	Calendar      repositories.CalendarRepository
}

func NewRepositoryContainer(db *gorm.DB) *RepositoryContainer {
	return &RepositoryContainer{
		Users:         repositories.NewUserRepository(db),
		Employees:     repositories.NewEmployeeRepository(db),
		Departments:   repositories.NewDepartmentRepository(db),
		Courses:       repositories.NewCourseRepository(db),
		Tickets:       repositories.NewTicketRepository(db),
		Interviews:    repositories.NewInterviewRepository(db),
		Payments:      repositories.NewPaymentRepository(db),
		Notifications: repositories.NewNotificationRepository(db),
		Calendar:      repositories.NewCalendarRepository(db),
	}
}

func NewServiceContainer(
	repos *RepositoryContainer,
	mail email.Provider,
	gateway payment.Gateway,
	files storage.Storage,
	publisher Publisher,
	runner sandbox.Runner,
) *ServiceContainer {
	notification := NewNotificationService(repos.Notifications, publisher)

	return &ServiceContainer{
		Auth:         NewAuthService(repos.Users, repos.Payments, mail, notification),
		User:         NewUserService(repos.Users),
		Employee:     NewEmployeeService(repos.Employees, repos.Departments),
		Department:   NewDepartmentService(repos.Departments, repos.Employees),
		Course:       NewCourseService(repos.Courses),
		Ticket:       NewTicketService(repos.Tickets, repos.Users, mail, notification),
		Interview:    NewInterviewService(repos.Interviews, repos.Payments, notification, runner),
		Payment:      NewPaymentService(repos.Payments, repos.Users, gateway, notification),
		Analytics:    NewAnalyticsService(repos.Payments, repos.Users),
		Notification: notification,
		Calendar:     NewCalendarService(repos.Calendar),
		Report:       NewReportService(repos.Interviews, repos.Users, report.NewRenderer(), files),
		Repos:        repos,
	}
}

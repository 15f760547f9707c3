package http

import (
	"net/http"

	"petclinic-booking/internal/delivery/http/handler"
	"petclinic-booking/internal/delivery/http/middleware"
	"petclinic-booking/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router          *mux.Router
	log             *logrus.Logger
	authHandler     *handler.AuthHandler
	bookingHandler  *handler.BookingHandler
	petHandler      *handler.PetHandler
	panelHandler    *handler.PanelHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	petHandler *handler.PetHandler,
	panelHandler *handler.PanelHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		log:             log,
		authHandler:     authHandler,
		bookingHandler:  bookingHandler,
		petHandler:      petHandler,
		panelHandler:    panelHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Booking flow (any signed-in user)
	booking := api.PathPrefix("/booking").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.HandleFunc("/days", r.bookingHandler.GetAvailableDays).Methods(http.MethodGet)
	booking.HandleFunc("/selection", r.bookingHandler.StageSelection).Methods(http.MethodPost)
	booking.HandleFunc("/times", r.bookingHandler.GetAvailableTimes).Methods(http.MethodGet)
	booking.HandleFunc("/submit", r.bookingHandler.SubmitBooking).Methods(http.MethodPost)

	// Edit flow for the user's own appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/{id:[0-9]+}/edit", r.bookingHandler.GetEditForm).Methods(http.MethodGet)
	appointments.HandleFunc("/{id:[0-9]+}/selection", r.bookingHandler.StageEditSelection).Methods(http.MethodPost)
	appointments.HandleFunc("/{id:[0-9]+}/times", r.bookingHandler.GetEditTimes).Methods(http.MethodGet)
	appointments.HandleFunc("/{id:[0-9]+}", r.bookingHandler.UpdateAppointment).Methods(http.MethodPut)

	// User panel and pets
	me := api.PathPrefix("/me").Subrouter()
	me.Use(r.authMiddleware.Authenticate)
	me.HandleFunc("/panel", r.panelHandler.GetUserPanel).Methods(http.MethodGet)

	pets := api.PathPrefix("/pets").Subrouter()
	pets.Use(r.authMiddleware.Authenticate)
	pets.HandleFunc("", r.petHandler.RegisterPet).Methods(http.MethodPost)
	pets.HandleFunc("", r.petHandler.GetMyPets).Methods(http.MethodGet)

	// Staff routes (protected - staff only)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/appointments", r.panelHandler.GetStaffAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	staff.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.AccessLog(r.log))
	r.router.Use(middleware.Metrics)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

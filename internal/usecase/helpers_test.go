package usecase

import (
	"io"
	"testing"
	"time"

	"petclinic-booking/config"
	"petclinic-booking/internal/domain/entity"
	domainRepo "petclinic-booking/internal/domain/repository"
	"petclinic-booking/internal/repository"
	"petclinic-booking/internal/service"
	"petclinic-booking/pkg/clock"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-10-15 is a Thursday.
var thursday = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func day(s string) entity.Date {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestDB opens a private in-memory SQLite database with the schema and roles.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&entity.Role{}, &entity.User{}, &entity.Pet{}, &entity.Appointment{}, &entity.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDStaff, RoleName: entity.RoleStaff},
		{ID: entity.RoleIDMember, RoleName: entity.RoleMember},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func createUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()

	user := &entity.User{
		RoleID:    entity.RoleIDMember,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: username,
		LastName:  "Test",
		IsActive:  true,
	}
	if err := repository.NewUserRepository().Create(db, user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.ID
}

func seedAppointment(t *testing.T, db *gorm.DB, userID uuid.UUID, d entity.Date, slot entity.TimeSlot, svc entity.Service) *entity.Appointment {
	t.Helper()

	appointment := &entity.Appointment{UserID: &userID, Service: svc, Day: d, Time: slot}
	if err := repository.NewAppointmentRepository().Create(db, appointment); err != nil {
		t.Fatalf("seed appointment %s %s: %v", d, slot, err)
	}
	return appointment
}

// fillDay books the first n slots of d for user.
func fillDay(t *testing.T, db *gorm.DB, userID uuid.UUID, d entity.Date, n int) {
	t.Helper()
	for _, slot := range entity.TimeSlots()[:n] {
		seedAppointment(t, db, userID, d, slot, entity.ServicePetCare)
	}
}

type bookingFixture struct {
	db      *gorm.DB
	usecase BookingUsecase
}

func newBookingFixture(t *testing.T, now time.Time, cfg config.BookingConfig) *bookingFixture {
	t.Helper()
	return newBookingFixtureWithRepo(t, now, cfg, repository.NewAppointmentRepository())
}

func newBookingFixtureWithRepo(t *testing.T, now time.Time, cfg config.BookingConfig, appointmentRepo domainRepo.AppointmentRepository) *bookingFixture {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())

	return &bookingFixture{
		db: db,
		usecase: NewBookingUsecase(db, log, cfg, clock.Fixed(now),
			appointmentRepo, auditService),
	}
}

func (f *bookingFixture) countOn(t *testing.T, d entity.Date) int64 {
	t.Helper()
	n, err := repository.NewAppointmentRepository().CountByDay(f.db, d, 0)
	if err != nil {
		t.Fatalf("count %s: %v", d, err)
	}
	return n
}

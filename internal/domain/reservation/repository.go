package reservation

import (
	"context"

	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

var (
	ErrNotFound = errs.New("record not found")

	// ErrConflict é devolvido quando a trava da data não pôde ser obtida
	// mesmo após as novas tentativas.
	ErrConflict = errs.New("booking conflict")
)

type Repository interface {
	// -------- Restaurant --------
	GetRestaurantByID(
		ctx context.Context,
		id uint,
	) (*models.Restaurant, error)

	GetRestaurantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Restaurant, error)

	// -------- Snapshot para o motor --------
	ListShifts(
		ctx context.Context,
		restaurantID uint,
	) ([]models.Shift, error)

	ListTables(
		ctx context.Context,
		restaurantID uint,
	) ([]models.Table, error)

	ListReservationsForDate(
		ctx context.Context,
		restaurantID uint,
		date string,
	) ([]models.Reservation, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		restaurantID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Reservation --------
	ReservationCodeExists(
		ctx context.Context,
		code string,
	) (bool, error)

	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	GetReservation(
		ctx context.Context,
		restaurantID uint,
		id uint,
	) (*models.Reservation, error)

	GetReservationByCode(
		ctx context.Context,
		restaurantID uint,
		code string,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// UpdateReservationStatus grava só status, histórico, tags e carimbos;
	// mesa, data e horário ficam como estão no banco.
	UpdateReservationStatus(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Concurrency --------

	// WithinBookingLock executa fn numa transação que serializa as escritas
	// de reservas do restaurante na data. O repo recebido por fn usa a transação.
	WithinBookingLock(
		ctx context.Context,
		restaurantID uint,
		date string,
		fn func(tx Repository) error,
	) error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

const (
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

// ErrDatabase marca falhas de infraestrutura vindas do banco.
var ErrDatabase = errs.New("database error")

type ReservationGormRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewReservationGormRepository(db *gorm.DB, logger zerolog.Logger) *ReservationGormRepository {
	return &ReservationGormRepository{db: db, logger: logger}
}

// --------------------------------------------------
// Restaurant
// --------------------------------------------------

func (r *ReservationGormRepository) GetRestaurantByID(
	ctx context.Context,
	id uint,
) (*models.Restaurant, error) {

	var rest models.Restaurant
	if err := r.db.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, wrap(err, "get restaurant")
	}
	return &rest, nil
}

func (r *ReservationGormRepository) GetRestaurantBySlug(
	ctx context.Context,
	slug string,
) (*models.Restaurant, error) {

	var rest models.Restaurant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&rest).Error; err != nil {
		return nil, wrap(err, "get restaurant by slug")
	}
	return &rest, nil
}

// --------------------------------------------------
// Snapshot
// --------------------------------------------------

func (r *ReservationGormRepository) ListShifts(
	ctx context.Context,
	restaurantID uint,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, wrap(err, "list shifts")
	}
	return shifts, nil
}

func (r *ReservationGormRepository) ListTables(
	ctx context.Context,
	restaurantID uint,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, wrap(err, "list tables")
	}
	return tables, nil
}

// ListReservationsForDate devolve todas as reservas do dia, de qualquer status;
// o motor decide quais ocupam mesa.
func (r *ReservationGormRepository) ListReservationsForDate(
	ctx context.Context,
	restaurantID uint,
	date string,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("restaurant_id = ? AND date = ?", restaurantID, date).
		Order("slot_time ASC, id ASC").
		Find(&res).Error; err != nil {
		return nil, wrap(err, "list reservations")
	}
	return res, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ReservationGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	restaurantID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND phone = ?", restaurantID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrap(err, "find customer")
	}

	customer = models.Customer{
		RestaurantID: restaurantID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, wrap(err, "create customer")
	}

	return &customer, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) ReservationCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("reservation_code = ?", code).
		Count(&count).Error; err != nil {
		return false, wrap(err, "check reservation code")
	}
	return count > 0, nil
}

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error, "create reservation")
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	restaurantID uint,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&res).Error; err != nil {
		return nil, wrap(err, "get reservation")
	}
	return &res, nil
}

func (r *ReservationGormRepository) GetReservationByCode(
	ctx context.Context,
	restaurantID uint,
	code string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("reservation_code = ? AND restaurant_id = ?", code, restaurantID).
		First(&res).Error; err != nil {
		return nil, wrap(err, "get reservation by code")
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error, "update reservation")
}

// statusColumns são as colunas que uma mudança de status pode tocar.
var statusColumns = []string{
	"status",
	"modification_log",
	"tags",
	"cancelled_at",
	"completed_at",
	"updated_at",
}

func (r *ReservationGormRepository) UpdateReservationStatus(
	ctx context.Context,
	res *models.Reservation,
) error {
	return wrap(statusUpdate(r.db.WithContext(ctx), res).Error, "update reservation status")
}

func statusUpdate(db *gorm.DB, res *models.Reservation) *gorm.DB {
	return db.
		Model(res).
		Where("restaurant_id = ?", res.RestaurantID).
		Select(statusColumns).
		Updates(res)
}

// --------------------------------------------------
// Concurrency
// --------------------------------------------------

// WithinBookingLock segura pg_advisory_xact_lock(restaurante, hashtext(data))
// durante a transação. Falhas de serialização e deadlock são repetidas.
func (r *ReservationGormRepository) WithinBookingLock(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {

	var err error
	for attempt := 1; attempt <= lockAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?::int, hashtext(?))",
				restaurantID,
				date,
			).Error; err != nil {
				return errs.Wrap(err, "acquire booking lock")
			}

			return fn(&ReservationGormRepository{db: tx, logger: r.logger})
		})

		if err == nil || !isRetryable(err) {
			return err
		}

		if attempt == lockAttempts {
			break
		}

		wait := time.Duration(attempt) * lockBackoff
		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Uint("restaurant_id", restaurantID).
			Str("date", date).
			Msg("retrying booking transaction")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	r.logger.Error().Err(err).Int("attempts", lockAttempts).Msg("booking transaction failed after retries")
	return errs.Mark(err, domain.ErrConflict)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	// 40001: serialization_failure
	// 40P01: deadlock_detected
	switch pgErr.Code {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Wrap(errs.Mark(err, domain.ErrNotFound), msg)
	}
	return errs.Wrap(errs.Mark(err, ErrDatabase), msg)
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)

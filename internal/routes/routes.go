package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mesa-scheduler/internal/clock"
	"github.com/BruksfildServices01/mesa-scheduler/internal/config"
	"github.com/BruksfildServices01/mesa-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/mesa-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/mesa-scheduler/internal/middleware"
	ucReservation "github.com/BruksfildServices01/mesa-scheduler/internal/usecase/reservation"
)

// Infra reúne os singletons criados em main. Cache e Storage são opcionais.
type Infra struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  zerolog.Logger
	Audit   ucReservation.Auditor
	Cache   ucReservation.SlotCache
	Storage ucReservation.ObjectStorage
	Limiter *middleware.IPRateLimiter
}

func RegisterRoutes(r *gin.Engine, infra Infra) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(infra.DB, infra.Logger)

	deps := &ucReservation.Deps{
		Repo:   reservationRepo,
		Audit:  infra.Audit,
		Cache:  infra.Cache,
		Clock:  clock.NewRealClock(),
		Logger: infra.Logger,
	}

	// ======================================================
	// 🧠 USE CASES - RESERVATIONS
	// ======================================================
	useCases := handlers.ReservationUseCases{
		FindRestaurant: ucReservation.NewFindRestaurantBySlug(reservationRepo),
		Create:         ucReservation.NewCreateReservation(deps),
		Update:         ucReservation.NewUpdateReservation(deps),
		Confirm:        ucReservation.NewConfirmReservation(deps),
		Cancel:         ucReservation.NewCancelReservation(deps),
		Complete:       ucReservation.NewCompleteReservation(deps),
		NoShow:         ucReservation.NewMarkNoShow(deps),
		Slots:          ucReservation.NewGetAvailableSlots(deps),
		ListByDate:     ucReservation.NewListReservationsByDate(reservationRepo),
		GetByCode:      ucReservation.NewGetReservationByCode(reservationRepo),
		Export:         ucReservation.NewExportAgenda(deps, infra.Storage),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	reservationHandler := handlers.NewReservationHandler(useCases)
	publicHandler := handlers.NewPublicHandler(useCases)
	auditLogsHandler := handlers.NewAuditLogsHandler(infra.DB)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(infra.Limiter))
		{
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/reservations", publicHandler.CreateReservation)
			publicAPI.GET("/:slug/reservations/:code", publicHandler.GetReservation)
			publicAPI.PATCH("/:slug/reservations/:code", publicHandler.UpdateReservation)
			publicAPI.PATCH("/:slug/reservations/:code/cancel", publicHandler.CancelReservation)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(infra.Config))
		{
			secured.GET("/availability", reservationHandler.Availability)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations", reservationHandler.ListByDate)
			secured.POST("/reservations/export", reservationHandler.Export)
			secured.PATCH("/reservations/:id", reservationHandler.Update)
			secured.PATCH("/reservations/:id/confirm", reservationHandler.Confirm())
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel())
			secured.PATCH("/reservations/:id/complete", reservationHandler.Complete())
			secured.PATCH("/reservations/:id/no-show", reservationHandler.NoShow())

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

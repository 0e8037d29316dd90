package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/cadence/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mx                 *chi.Mux
	userService        service.UserServiceI
	habitService       service.HabitsServiceI
	antiHabitService   service.AntiHabitsServiceI
	alarmService       service.AlarmsServiceI
	eventsService      service.EventsServiceI
	achievementService service.AchievementsServiceI
	jwtService         JWTServiceI
}

type ServicesList struct {
	UserService        service.UserServiceI
	HabitsService      service.HabitsServiceI
	AntiHabitsService  service.AntiHabitsServiceI
	AlarmsService      service.AlarmsServiceI
	EventsService      service.EventsServiceI
	AchievementService service.AchievementsServiceI
	JwtService         JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                 chi.NewMux(),
		userService:        servicesOptions.UserService,
		habitService:       servicesOptions.HabitsService,
		antiHabitService:   servicesOptions.AntiHabitsService,
		alarmService:       servicesOptions.AlarmsService,
		eventsService:      servicesOptions.EventsService,
		achievementService: servicesOptions.AchievementService,
		jwtService:         servicesOptions.JwtService,
	}
}

func (s *Server) Routes() *chi.Mux {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Route("/habits", func(r chi.Router) {
				r.Get("/", s.GetHabits)
				r.Post("/", s.CreateHabit)
				r.Put("/{id}", s.UpdateHabit)
				r.Delete("/{id}", s.DeleteHabit)
				r.Post("/{id}/tick", s.TickHabit)
				r.Get("/{id}/stats", s.GetHabitStats)
			})
			r.Route("/antihabits", func(r chi.Router) {
				r.Get("/", s.GetAntiHabits)
				r.Post("/", s.CreateAntiHabit)
				r.Delete("/{id}", s.DeleteAntiHabit)
				r.Post("/{id}/slip", s.RecordSlip)
			})
			r.Route("/alarms", func(r chi.Router) {
				r.Get("/", s.GetAlarms)
				r.Post("/", s.CreateAlarm)
				r.Delete("/{id}", s.DeleteAlarm)
				r.Post("/{id}/dismiss", s.DismissAlarm)
				r.Post("/{id}/enable", s.EnableAlarm)
				r.Post("/{id}/disable", s.DisableAlarm)
			})
			r.Get("/events", s.GetEvents)
			r.Get("/achievements", s.GetAchievements)
			r.Get("/progress", s.GetProgress)
			r.Get("/celebrations", s.GetCelebrations)
			r.Delete("/celebrations/{id}", s.AckCelebration)
		})
	})
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.Routes())
}

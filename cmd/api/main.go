// @title Cadence API
// @description API for behavioral coaching backend "Cadence"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/cadence/internal/api"
	"github.com/limbo/cadence/internal/notifier"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/internal/service"
	"github.com/limbo/cadence/internal/worker"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/config"
	jwtservice "github.com/limbo/cadence/pkg/jwt_service"
	"github.com/sirupsen/logrus"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}

	usersRepo := repository.NewUsersRepo(&dbCfg)
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	antiHabitsRepo := repository.NewAntiHabitsRepo(&dbCfg)
	alarmsRepo := repository.NewAlarmsRepo(&dbCfg)
	eventsRepo := repository.NewEventsRepo(&dbCfg)
	achievementsRepo := repository.NewAchievementsRepo(&dbCfg)
	idempotencyRepo := repository.NewIdempotencyRepo(&dbCfg)
	jobsRepo := repository.NewJobsRepo(&dbCfg)

	notif := notifier.NewLogNotifier(logrus.StandardLogger())

	achievementService := service.NewAchievementsService(achievementsRepo, eventsRepo, notif)
	habitService := service.NewHabitsService(habitsRepo, usersRepo, achievementService)
	rulesService := service.NewRulesService(habitsRepo, antiHabitsRepo, usersRepo, eventsRepo, idempotencyRepo, notif, lateHour(cfg))
	antiHabitService := service.NewAntiHabitsService(antiHabitsRepo, rulesService)
	alarmService := service.NewAlarmsService(alarmsRepo, usersRepo, eventsRepo, jobsRepo, notif, graceWindow(cfg))

	w := worker.New(jobsRepo, alarmService, rulesService, logrus.StandardLogger())
	if err := w.Start(); err != nil {
		log.Fatal("starting worker error: " + err.Error())
	}

	serv := api.New(&api.ServicesList{
		UserService:        service.NewUserService(usersRepo),
		HabitsService:      habitService,
		AntiHabitsService:  antiHabitService,
		AlarmsService:      alarmService,
		EventsService:      service.NewEventsService(eventsRepo),
		AchievementService: achievementService,
		JwtService:         jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cleanup.CleanUp()
		os.Exit(0)
	}()

	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func graceWindow(cfg *config.Config) time.Duration {
	minutes := cfg.GetInt("ESCALATION_GRACE_MINUTES", 0)
	if minutes <= 0 {
		return service.DefaultGraceWindow
	}
	return time.Duration(minutes) * time.Minute
}

func lateHour(cfg *config.Config) int {
	return cfg.GetInt("STREAK_AT_RISK_HOUR", service.DefaultLateHour)
}

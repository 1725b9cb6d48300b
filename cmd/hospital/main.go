package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-manager/internal/cache"
	"hospital-manager/internal/cli"
	"hospital-manager/internal/config"
	"hospital-manager/internal/gemini"
	"hospital-manager/internal/mail"
	"hospital-manager/internal/repo"
	"hospital-manager/internal/schedule"
	"hospital-manager/internal/service"
	"hospital-manager/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// cancel in-flight remote calls on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := store.NewClient(cfg.StoreURL, cfg.StoreRPS, 2*int(cfg.StoreRPS))
	c := cache.New()
	repos := repo.NewSet(client, c)

	checker := schedule.NewChecker(c.Appointments, c.Doctors)
	assistant := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	sender := mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	mailer := mail.NewMailer(sender, repos.EmailLogs)

	patients := service.NewPatientService(repos.Patients)
	doctors := service.NewDoctorService(repos.Doctors)
	users := service.NewUserService(repos.Users)
	appointments := service.NewAppointmentService(
		repos.Appointments, repos.Doctors, repos.Patients,
		checker, assistant, mailer,
	)

	app := cli.New(cfg, c, repos, patients, doctors, users, appointments, assistant)
	if err := app.Run(ctx); err != nil {
		log.Printf("session: %v", err)
		os.Exit(1)
	}
}

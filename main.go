package main

import (
	"os"

	"github.com/TWRT/task-tracker/internal/cli"
	"github.com/TWRT/task-tracker/internal/config"
	"github.com/TWRT/task-tracker/internal/mailer/smtp"
	"github.com/TWRT/task-tracker/internal/repository"
	"github.com/TWRT/task-tracker/internal/service"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("init db: ", err)
	}
	defer db.Close()

	taskRepo := repository.NewTaskRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	mail := smtp.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	taskService := service.NewTaskService(taskRepo, memberRepo)
	memberService := service.NewMemberService(memberRepo, taskRepo)
	reportService := service.NewReportService(taskRepo, memberRepo)
	reminderService := service.NewReminderService(taskRepo, memberRepo, mail)

	c := cli.New(taskService, memberService, reportService, reminderService, cfg)
	if err := c.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

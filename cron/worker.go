package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"turnobot/config"
	"turnobot/services/turnos"
	"turnobot/services/whatsapp"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTurnoExpire = "turno:expire"

const msgTurnoReleased = "⏰ El tiempo para completar el pago de tu turno venció y el horario fue liberado. " +
	"Si todavía lo necesitas, escribe *solicitar turno* para agendar de nuevo."

// ExpirePayload identifies a negotiated turno awaiting payment.
type ExpirePayload struct {
	ReferenceID string `json:"referenceId"`
	Phone       string `json:"phone"`
}

// Scheduler enqueues delayed expiry tasks. It satisfies
// conversation.ExpiryScheduler.
type Scheduler struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &Scheduler{client: client, logger: logger}
}

// ScheduleRelease enqueues the release check to run after delay.
func (s *Scheduler) ScheduleRelease(ctx context.Context, referenceID, phone string, delay time.Duration) error {
	payload, err := json.Marshal(ExpirePayload{ReferenceID: referenceID, Phone: phone})
	if err != nil {
		return fmt.Errorf("encoding expiry payload: %w", err)
	}

	task := asynq.NewTask(TypeTurnoExpire, payload)
	info, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return fmt.Errorf("enqueueing expiry task: %w", err)
	}

	s.logger.Info("payment expiry scheduled",
		zap.String("referenceId", referenceID),
		zap.String("taskId", info.ID),
		zap.Duration("delay", delay))
	return nil
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}

// InitExpiryWorker runs the async worker in background.
func InitExpiryWorker(turnosRepo turnos.Repository, messenger whatsapp.Messenger, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTurnoExpire, handleExpireTask(turnosRepo, messenger, logger))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ExpiryWorker] failed to start worker: %v", err)
		}
	}()
}

// handleExpireTask fires when the payment window for a negotiated turno
// closes. A turno that was confirmed in the meantime is left alone.
func handleExpireTask(turnosRepo turnos.Repository, messenger whatsapp.Messenger, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid expiry payload", zap.Error(err))
			return err
		}

		if _, err := turnosRepo.GetByID(p.ReferenceID); err == nil {
			logger.Debug("turno paid in time, nothing to release",
				zap.String("referenceId", p.ReferenceID))
			return nil
		} else if !errors.Is(err, turnos.ErrNotFound) {
			return fmt.Errorf("looking up turno %s: %w", p.ReferenceID, err)
		}

		logger.Info("releasing unpaid turno",
			zap.String("referenceId", p.ReferenceID), zap.String("phone", p.Phone))
		if err := messenger.SendText(ctx, p.Phone, msgTurnoReleased); err != nil {
			logger.Error("failed to notify turno release",
				zap.String("phone", p.Phone), zap.Error(err))
		}
		return nil
	}
}

package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"facilitybot/config"
	"facilitybot/models"
	"facilitybot/services/notification"
	"facilitybot/services/tasks"

	"github.com/hibiken/asynq"
)

// InitChannelWorker runs the async announcement worker in the background.
func InitChannelWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeChannelUpdate, handleChannelUpdate(notifSvc))

	go func() {
		log.Println("[ChannelWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ChannelWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ChannelWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleChannelUpdate(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ChannelUpdatePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ChannelWorker] invalid payload: %v", err)
			return err
		}
		return notifSvc.AnnounceBookingChange(ctx, p.Text)
	}
}

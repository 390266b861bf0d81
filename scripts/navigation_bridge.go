//go:build ignore

// navigation_bridge регистрирует consumer group на стриме навигации и печатает
// полученные запросы. Пока он запущен, API считает навигацию доступной.
//
//	go run scripts/navigation_bridge.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

type navigationRequest struct {
	RequestID   string    `json:"request_id"`
	VenueID     string    `json:"venue_id"`
	Arguments   string    `json:"arguments"`
	RequestedAt time.Time `json:"requested_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:navigation:requests", "Navigation stream")
	group := flag.String("group", "lifestream", "Consumer group")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	err := client.XGroupCreateMkStream(ctx, *stream, *group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Fatalf("Failed to create consumer group: %v", err)
	}

	hostname, _ := os.Hostname()
	consumer := fmt.Sprintf("bridge-%s-%d", hostname, os.Getpid())
	if err := client.XGroupCreateConsumer(ctx, *stream, *group, consumer).Err(); err != nil {
		log.Fatalf("Failed to register consumer: %v", err)
	}
	defer client.XGroupDelConsumer(context.Background(), *stream, *group, consumer)

	fmt.Printf("Listening on %s as %s/%s\n", *stream, *group, consumer)

	for {
		streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    *group,
			Consumer: consumer,
			Streams:  []string{*stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Printf("Read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				data, _ := msg.Values["data"].(string)
				var req navigationRequest
				if err := json.Unmarshal([]byte(data), &req); err != nil {
					log.Printf("Skipping malformed message %s: %v", msg.ID, err)
				} else {
					fmt.Printf("[%s] /li %s  (venue %s)\n", req.RequestedAt.Format(time.TimeOnly), req.Arguments, req.VenueID)
				}
				client.XAck(ctx, *stream, *group, msg.ID)
			}
		}
	}
}

package tcnats

import (
	"context"
	"log"
	"os"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupTestNats starts a NATS server with JetStream enabled and returns a connection.
// TESTNATS_URL can be used to point to an external server.
func SetupTestNats(ctx context.Context) *natsgo.Conn {
	url := os.Getenv("TESTNATS_URL")
	if url == "" {
		container, err := nats.Run(ctx,
			"nats:2.10-alpine",
			testcontainers.WithWaitStrategy(
				wait.ForAll(
					wait.ForLog("Server is ready"),
					wait.ForListeningPort("4222/tcp"),
				).WithDeadline(45*time.Second),
			),
		)
		if err != nil {
			log.Fatalf("failed to start NATS container: %v", err)
		}
		if url, err = container.ConnectionString(ctx); err != nil {
			log.Fatalf("failed to get NATS connection string: %v", err)
		}
	}
	nc, err := natsgo.Connect(url)
	if err != nil {
		log.Fatalf("failed to connect to NATS: %v", err)
	}
	return nc
}

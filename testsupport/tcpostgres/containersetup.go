package tcpostgres

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:17-alpine"
	postgresPort  = nat.Port("5432/tcp")
)

// PostgresContainer is a started postgres container with the credentials
// of its initial database.
type PostgresContainer struct {
	testcontainers.Container
	user     string
	password string
	dbName   string
}

type containerSetup struct {
	req      testcontainers.ContainerRequest
	reuse    bool
	user     string
	password string
	dbName   string
}

type PostgresContainerOption func(s *containerSetup)

func WithWaitStrategy(strategies ...wait.Strategy) PostgresContainerOption {
	return func(s *containerSetup) {
		s.req.WaitingFor = wait.ForAll(strategies...).WithDeadline(1 * time.Minute)
	}
}

// WithName gives the container a fixed name. Named containers are reused
// between test packages.
func WithName(containerName string) PostgresContainerOption {
	return func(s *containerSetup) {
		s.req.Name = containerName
		s.reuse = true
	}
}

func WithInitialDatabase(user, password, dbName string) PostgresContainerOption {
	return func(s *containerSetup) {
		s.user, s.password, s.dbName = user, password, dbName
	}
}

// SetupPostgres starts a postgres container with fsync disabled.
func SetupPostgres(ctx context.Context, opts ...PostgresContainerOption) (
	*PostgresContainer, error,
) {
	s := &containerSetup{
		req: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{string(postgresPort)},
			Cmd:          []string{"postgres", "-c", "fsync=off"},
		},
		user:     "hcc",
		password: "hcc",
		dbName:   "hcc_test",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.req.Env = map[string]string{
		"POSTGRES_USER":     s.user,
		"POSTGRES_PASSWORD": s.password,
		"POSTGRES_DB":       s.dbName,
	}

	container, err := testcontainers.GenericContainer(
		ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: s.req,
			Started:          true,
			Reuse:            s.reuse,
		})
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{
		Container: container,
		user:      s.user,
		password:  s.password,
		dbName:    s.dbName,
	}, nil
}

// ConnectionString returns the url of the initial database.
func (c *PostgresContainer) ConnectionString(ctx context.Context) (string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", err
	}
	port, err := c.MappedPort(ctx, postgresPort)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		c.user, c.password, host, port.Port(), c.dbName), nil
}

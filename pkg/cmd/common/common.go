// Package common contains the setup shared by the hcc commands.
package common

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mpapenbr/handicap-calculator-go/log"
	"github.com/mpapenbr/handicap-calculator-go/pkg/config"
	"github.com/mpapenbr/handicap-calculator-go/pkg/course"
	"github.com/mpapenbr/handicap-calculator-go/pkg/handicap"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/factory"
	_ "github.com/mpapenbr/handicap-calculator-go/pkg/storage/memory"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/natskv"
	"github.com/mpapenbr/handicap-calculator-go/pkg/storage/postgres"
	_ "github.com/mpapenbr/handicap-calculator-go/pkg/storage/sqlite"
	"github.com/mpapenbr/handicap-calculator-go/pkg/utils"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger replaces the default logger according to the log flags.
func SetupLogger() error {
	var opts []log.Option
	if config.LogFilter != "" {
		filter, err := log.WithFilter(config.LogFilter)
		if err != nil {
			return fmt.Errorf("invalid log filter: %w", err)
		}
		opts = append(opts, filter)
	}
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(os.Stderr, parseLogLevel(config.LogLevel, log.WarnLevel), opts...)
	default:
		logger = log.DevLogger(os.Stderr, parseLogLevel(config.LogLevel, log.WarnLevel), opts...)
	}
	log.ResetDefault(logger)
	return nil
}

// LoadCatalog returns the catalog from the courses file or the embedded one.
func LoadCatalog() (*course.Catalog, error) {
	if config.CoursesFile == "" {
		return course.Default(), nil
	}
	return course.LoadFile(config.CoursesFile)
}

func Limits() (handicap.Limits, error) {
	return handicap.NewLimits(config.MinIndex, config.MaxIndex)
}

// NewEngine creates an engine for catalog with the configured limits.
func NewEngine(catalog *course.Catalog) (*handicap.Engine, error) {
	limits, err := Limits()
	if err != nil {
		return nil, err
	}
	return handicap.New(catalog, handicap.WithLimits(limits)), nil
}

// OpenStore opens the configured store. Network backends are waited for.
func OpenStore(ctx context.Context) (storage.Store, error) {
	kind := factory.StoreType(config.StoreType)
	if addr := serviceAddr(kind, config.StoreDSN); addr != "" {
		if err := utils.WaitForTCP(addr, waitTimeout()); err != nil {
			return nil, err
		}
	}
	log.Debug("opening store", log.String("type", config.StoreType))
	return factory.New(ctx, kind, config.StoreDSN)
}

func waitTimeout() time.Duration {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 15s", log.ErrorField(err))
		timeout = 15 * time.Second
	}
	return timeout
}

// WaitForDB waits until the database in dsn accepts connections.
func WaitForDB(dsn string) error {
	if addr := utils.ExtractFromDBURL(dsn); addr != "" {
		return utils.WaitForTCP(addr, waitTimeout())
	}
	return nil
}

func serviceAddr(kind factory.StoreType, dsn string) string {
	switch kind {
	case postgres.StoreTypePostgres:
		return utils.ExtractFromDBURL(dsn)
	case natskv.StoreTypeNats:
		return utils.ExtractFromNatsURL(dsn)
	default:
		return ""
	}
}

// ParseKeyValues parses "k1=v1,k2=v2". Keys are lower cased.
func ParseKeyValues(s string) (map[string]string, error) {
	ret := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", part)
		}
		ret[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return ret, nil
}

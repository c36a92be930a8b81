package app

import (
	"os"
	"path/filepath"

	"go-leavehub/internal/employee"
	"go-leavehub/internal/leave"
	kafkaoutbox "go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/shared/jsonstore"
	"go-leavehub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores holds every durable collection the process owns. Each collection is
// one JSON file with its own write gate.
type Stores struct {
	Requests  *jsonstore.Collection[leave.LeaveRequest]
	Balances  *jsonstore.Collection[leave.LeaveBalance]
	Employees *jsonstore.Collection[employee.Employee]
	Users     *jsonstore.Collection[user.User]
	Outbox    *jsonstore.Collection[kafkaoutbox.OutboxEvent]
}

// DataDir resolves the data directory from the environment, defaulting to
// ./data.
func DataDir() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	return dir
}

// OpenStores loads all durable collections from dataDir.
func OpenStores(dataDir string) (*Stores, error) {
	requests, err := jsonstore.Open[leave.LeaveRequest](filepath.Join(dataDir, "leave_requests.json"))
	if err != nil {
		return nil, err
	}
	balances, err := jsonstore.Open[leave.LeaveBalance](filepath.Join(dataDir, "leave_balances.json"))
	if err != nil {
		return nil, err
	}
	employees, err := jsonstore.Open[employee.Employee](filepath.Join(dataDir, "employees.json"))
	if err != nil {
		return nil, err
	}
	users, err := jsonstore.Open[user.User](filepath.Join(dataDir, "users.json"))
	if err != nil {
		return nil, err
	}
	outbox, err := jsonstore.Open[kafkaoutbox.OutboxEvent](filepath.Join(dataDir, "outbox_events.json"))
	if err != nil {
		return nil, err
	}

	return &Stores{
		Requests:  requests,
		Balances:  balances,
		Employees: employees,
		Users:     users,
		Outbox:    outbox,
	}, nil
}

// BuildApp loads storage, connects optional infrastructure and registers all
// routes on router.
func BuildApp(router *gin.Engine) error {
	stores, err := OpenStores(DataDir())
	if err != nil {
		return err
	}
	zap.L().Info("durable collections loaded",
		zap.Int("leave_requests", stores.Requests.Len()),
		zap.Int("leave_balances", stores.Balances.Len()),
		zap.Int("employees", stores.Employees.Len()),
		zap.Int("users", stores.Users.Len()),
	)

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		zap.L().Info("redis idempotency enabled", zap.String("addr", addr))
	}

	return registerModules(router, stores, rdb)
}

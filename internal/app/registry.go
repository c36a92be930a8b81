package app

import (
	"go-leavehub/internal/employee"
	"go-leavehub/internal/leave"
	kafkaoutbox "go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
	"go-leavehub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func registerModules(
	router *gin.Engine,
	stores *Stores,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	requestRepo := leave.NewRequestRepository(stores.Requests)
	balanceRepo := leave.NewBalanceRepository(stores.Balances)
	employeeRepo := employee.NewRepository(stores.Employees)
	userRepo := user.NewRepository(stores.Users)
	outboxRepo := kafkaoutbox.NewOutboxRepository(stores.Outbox)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(employeeRepo)
	leaveService := leave.NewService(requestRepo, balanceRepo, employeeRepo, userRepo, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
	}

	return nil
}

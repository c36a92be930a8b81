package leave

import (
	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the leave endpoints. rdb is optional; when present,
// request creation is protected by the idempotency middleware.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.Authorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/pending", middleware.Authorize(rbacService, "leave", "read"), handler.GetPending)
		leaves.GET("/statistics", middleware.Authorize(rbacService, "leave", "stats"), handler.GetStatistics)
		leaves.GET("/my", handler.GetMine)
		leaves.GET("/my/balance", handler.GetMyBalance)
		leaves.GET("/employee/:employeeId", middleware.Authorize(rbacService, "leave", "read"), handler.GetByEmployee)
		leaves.GET("/employee/:employeeId/balance", middleware.Authorize(rbacService, "leave", "read"), handler.GetBalance)
		leaves.GET("/:id", middleware.Authorize(rbacService, "leave", "read"), handler.GetById)

		createHandlers := []gin.HandlerFunc{middleware.Authorize(rbacService, "leave", "create")}
		if rdb != nil {
			createHandlers = append(createHandlers, middleware.Idempotency(rdb))
		}
		leaves.POST("", append(createHandlers, handler.Create)...)

		leaves.POST("/:id/approve", middleware.Authorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.Authorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", handler.Cancel)
		leaves.DELETE("/:id", middleware.Authorize(rbacService, "leave", "delete"), handler.Delete)
	}
}

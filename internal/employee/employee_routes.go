package employee

import (
	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.Authorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", middleware.Authorize(rbacService, "employee", "write"), handler.Create)
		employees.DELETE("/:id", middleware.Authorize(rbacService, "employee", "write"), handler.Delete)
	}
}

package web

import "github.com/gin-gonic/gin"

// RegisterRoutes serves the dashboard pages. SessionGate must already be
// installed on the engine so unknown /dashboard paths are redirected too.
func RegisterRoutes(r *gin.Engine, handler *Handler) {
	r.SetHTMLTemplate(Templates())

	r.GET("/", handler.Login)
	r.GET("/Dashboard", handler.Dashboard)

	pages := r.Group("/Dashboard")
	{
		pages.GET("/employee-directory", handler.EmployeeDirectory)
		pages.GET("/leave-requests", handler.LeaveRequests)
		pages.GET("/profile", handler.Profile)
	}
}

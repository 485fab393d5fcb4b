package reporting

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the report views. guard runs before every view.
func RegisterRoutes(r *gin.RouterGroup, svc *Service, guard ...gin.HandlerFunc) {
	h := NewHandler(svc)

	reports := r.Group("/reports", guard...)
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/branches", h.Branches)
		reports.GET("/sales", h.Sales)
		reports.GET("/stock", h.Stock)
	}
}

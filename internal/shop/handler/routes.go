package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部业务路由。authMW解析JWT身份，
// shopMW解析门店并注入shop_id，门店注册/查询只走authMW。
func RegisterRoutes(r *gin.Engine, h *Handlers, authMW, shopMW gin.HandlerFunc) {
	api := r.Group("/api", authMW)

	// 门店自身，不要求已有门店
	shops := api.Group("/shops")
	{
		shops.POST("", h.Shop.Create)
		shops.GET("/me", h.Shop.Get)
		shops.PUT("/me", h.Shop.Update)
	}

	// 其余资源都挂在门店之下
	scoped := api.Group("", shopMW)
	{
		jobs := scoped.Group("/jobs")
		{
			jobs.GET("", h.JobCard.List)
			jobs.POST("", h.JobCard.Create)
			jobs.GET("/:id", h.JobCard.Get)
			jobs.PUT("/:id", h.JobCard.Update)
			jobs.DELETE("/:id", h.JobCard.Delete)
			jobs.PATCH("/:id/status", h.JobCard.UpdateStatus)
			jobs.POST("/:id/notes", h.JobCard.AddNote)

			jobs.GET("/:id/parts", h.Part.List)
			jobs.POST("/:id/parts", h.Part.Attach)
			jobs.PUT("/:id/parts/:partId", h.Part.Update)
			jobs.DELETE("/:id/parts/:partId", h.Part.Remove)
			jobs.POST("/:id/parts/:partId/install", h.Part.Install)
			jobs.POST("/:id/parts/:partId/return", h.Part.Return)

			jobs.POST("/:id/costs", h.Part.AddCost)
			jobs.PUT("/:id/costs/:costId", h.Part.UpdateCost)
			jobs.DELETE("/:id/costs/:costId", h.Part.DeleteCost)

			jobs.POST("/:id/schedule", h.Schedule.ScheduleJob)
			jobs.PUT("/:id/schedule", h.Schedule.UpdateSchedule)

			jobs.GET("/:id/estimates", h.Estimate.ListByJob)
			jobs.POST("/:id/estimates", h.Estimate.Create)
		}

		scoped.GET("/schedule", h.Schedule.Get)

		mechanics := scoped.Group("/mechanics")
		{
			mechanics.GET("", h.Mechanic.List)
			mechanics.POST("", h.Mechanic.Create)
			mechanics.GET("/:id", h.Mechanic.Get)
			mechanics.PUT("/:id", h.Mechanic.Update)
			mechanics.DELETE("/:id", h.Mechanic.Delete)
			mechanics.GET("/:id/jobs", h.Schedule.MechanicJobs)
		}

		inventory := scoped.Group("/inventory")
		{
			inventory.GET("", h.Inventory.List)
			inventory.POST("", h.Inventory.Create)
			inventory.GET("/settings", h.Inventory.GetSettings)
			inventory.PUT("/settings", h.Inventory.UpdateSettings)
			inventory.GET("/adjustments", h.Inventory.ListAdjustments)
			inventory.POST("/adjustments", h.Inventory.CreateAdjustment)
			inventory.GET("/:id", h.Inventory.Get)
			inventory.PUT("/:id", h.Inventory.Update)
			inventory.DELETE("/:id", h.Inventory.Delete)
		}

		suppliers := scoped.Group("/suppliers")
		{
			suppliers.GET("", h.Supplier.List)
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", h.Supplier.Delete)
			suppliers.GET("/:id/parts", h.Supplier.GetParts)
			suppliers.GET("/:id/orders", h.Supplier.GetOrders)
		}

		orders := scoped.Group("/part-orders")
		{
			orders.GET("", h.PartOrder.List)
			orders.POST("", h.PartOrder.Create)
			orders.GET("/:id", h.PartOrder.Get)
			orders.PATCH("/:id/status", h.PartOrder.UpdateStatus)
		}

		estimates := scoped.Group("/estimates")
		{
			estimates.GET("/:id", h.Estimate.Get)
			estimates.PATCH("/:id/status", h.Estimate.UpdateStatus)
		}

		reports := scoped.Group("/reports")
		{
			reports.GET("/inventory", h.Report.Summary)
			reports.GET("/inventory/export", h.Report.ExportCSV)
			reports.GET("/inventory/export/xlsx", h.Report.ExportExcel)
		}
	}
}

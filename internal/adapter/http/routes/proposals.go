package routes

import (
	"motofinance/internal/adapter/http/handlers"
	"motofinance/internal/adapter/http/middleware"
	"motofinance/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathProposals    = "/proposals"
	PathFinancing    = "/financing"
	PathDownPayments = "/down-payments"
	PathUsers        = "/users"
)

func addFinancingRoutes(rg *gin.RouterGroup, h *handlers.FinancingHandler) {
	financing := rg.Group(PathFinancing, middleware.RequireCapability(entities.CapabilityComputeFinancing))
	{
		financing.GET("", h.ComputeFinancing)
		financing.GET("/fees", h.FeeSchedule)
	}
}

func addProposalRoutes(rg *gin.RouterGroup, h *handlers.ProposalHandler, dp *handlers.DownPaymentHandler) {
	view := middleware.RequireCapability(entities.CapabilityViewProposals)
	evaluate := middleware.RequireCapability(entities.CapabilityEvaluateProposal)

	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", middleware.RequireCapability(entities.CapabilityCreateProposal), h.CreateProposal)
		proposals.GET("", view, h.ListProposals)
		proposals.GET("/:id", view, h.GetProposal)
		proposals.GET("/:id/financing", view, h.GetFinancing)
		proposals.GET("/:id/product", view, h.GetOfficialProduct)
		proposals.GET("/:id/watch", view, h.WatchProposal)

		proposals.DELETE("/:id/financing", evaluate, h.InvalidateFinancing)
		proposals.PATCH("/:id/review", evaluate, h.StartReview)
		proposals.PATCH("/:id/approve", evaluate, h.ApproveProposal)
		proposals.PATCH("/:id/reject", evaluate, h.RejectProposal)
		proposals.PATCH("/:id/price", middleware.RequireCapability(entities.CapabilityReviseProposal), h.UpdatePrice)
		proposals.POST("/:id/negotiations", middleware.RequireCapability(entities.CapabilityNegotiate), h.AddNegotiation)
		proposals.DELETE("/:id", middleware.RequireCapability(entities.CapabilityDeleteProposal), h.DeleteProposal)

		proposals.POST("/:id"+PathDownPayments, middleware.RequireCapability(entities.CapabilityChargeDownPayment), dp.ChargeDownPayment)
		proposals.GET("/:id"+PathDownPayments, middleware.RequireCapability(entities.CapabilityViewDownPayments), dp.ListDownPayments)
	}

	rg.GET(PathDownPayments+"/:payment_id", middleware.RequireCapability(entities.CapabilityViewDownPayments), dp.GetDownPayment)
}

func addUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler) {
	rg.GET(PathUsers+"/me", h.Me)
}

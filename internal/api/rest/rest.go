package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Asset download sits outside the version prefix so stored token
	// metadata URLs stay short and stable.
	router.GET("/asset/:key", handler.DownloadAsset)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Collection surface (public read access)
		v1.GET("/collection", handler.GetCollection)
		v1.GET("/collection/metadata", handler.GetCollectionMetadata)
		v1.GET("/collection/standards", handler.GetStandards)
		v1.PATCH("/collection", handler.UpdateCollection)
		v1.PUT("/collection/base-url", handler.UpdateBaseURL)

		// Token queries (public read access; batch lookups use POST bodies)
		v1.GET("/tokens", handler.ListTokens)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens/:id/history", handler.GetTransferHistory)
		v1.POST("/tokens/owner-of", handler.OwnerOf)
		v1.POST("/tokens/balance-of", handler.BalanceOf)
		v1.POST("/tokens/metadata", handler.TokenMetadata)
		v1.GET("/owners/:owner/tokens", handler.TokensOf)
		v1.GET("/owners/:owner/nfts", handler.UserTokens)

		// Transaction log (public read access)
		v1.GET("/transactions", handler.ListTransactions)
		v1.GET("/transactions/:id", handler.GetTransaction)
		v1.GET("/archives", handler.ListArchives)

		// Transfer and approval protocol (caller from principal header)
		v1.POST("/transfers", handler.Transfer)
		v1.POST("/transfers/from", handler.TransferFrom)
		v1.POST("/approvals/tokens", handler.ApproveTokens)
		v1.POST("/approvals/collection", handler.ApproveCollection)
		v1.GET("/approvals/check", handler.CheckApproval)

		// Minting
		v1.POST("/mint", handler.Mint)
		v1.POST("/mint/bundle", handler.MintBundle)
		v1.GET("/schedules/active", handler.ActiveSchedules)
		v1.GET("/bundles", handler.AvailableBundles)
		v1.PUT("/schedules/:name", handler.UpsertSchedule)
		v1.DELETE("/schedules/:name", handler.RemoveSchedule)

		// Access lists
		v1.GET("/admins", handler.ListAdmins)
		v1.POST("/admins", handler.AddAdmin)
		v1.DELETE("/admins/:principal", handler.RemoveAdmin)
		v1.GET("/whitelist/:principal", handler.CheckWhitelist)
		v1.POST("/whitelist", handler.AddToWhitelist)
		v1.DELETE("/whitelist/:principal", handler.RemoveFromWhitelist)
		v1.GET("/whoami", handler.WhoAmI)

		// Asset store
		v1.GET("/assets", handler.ListAssets)
		v1.POST("/assets", handler.UploadAsset)

		// State snapshot (admin only, checked in the handler)
		v1.POST("/snapshot", handler.SaveSnapshot)
	}
}

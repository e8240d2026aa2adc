package router

import (
	"meriter/internal/config"
	"meriter/internal/handlers"
	"meriter/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// One mutating ledger call per second per IP, with a small burst.
const (
	voteRateRPS   = rate.Limit(1)
	voteRateBurst = 3
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Handlers
	authHandler := handlers.NewAuthHandler(cfg)
	publicationHandler := handlers.NewPublicationHandler()
	voteHandler := handlers.NewVoteHandler()
	walletHandler := handlers.NewWalletHandler()
	communityHandler := handlers.NewCommunityHandler()
	rankHandler := handlers.NewRankHandler()
	userHandler := handlers.NewUserHandler()

	voteLimiter := middleware.NewIPRateLimiter(voteRateRPS, voteRateBurst)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/auth/telegram", authHandler.TelegramLogin)
		api.GET("/publications", publicationHandler.List)
		api.GET("/publications/:uid", publicationHandler.Detail)
		api.GET("/publications/:uid/transactions", publicationHandler.Transactions)
		api.GET("/communities", communityHandler.List)
		api.GET("/communities/:chatId", communityHandler.Get)
		api.GET("/communities/:chatId/rank", rankHandler.Community)
		api.GET("/hashtags/:tag/rank", rankHandler.Hashtag)

		// Protected routes
		authorized := api.Group("")
		authorized.Use(middleware.AuthRequired())
		{
			authorized.GET("/me", userHandler.Me)
			authorized.GET("/wallets", walletHandler.List)
			authorized.GET("/wallets/:chatId", walletHandler.Get)
			authorized.GET("/communities/:chatId/quota", walletHandler.Quota)
			authorized.POST("/publications", publicationHandler.Create)
			authorized.POST("/communities/:chatId/admins", communityHandler.AddAdmin)
			authorized.DELETE("/communities/:chatId/admins/:tgId", communityHandler.RemoveAdmin)

			// Ledger mutations get rate limited per IP.
			limited := authorized.Group("")
			limited.Use(middleware.RateLimit(voteLimiter))
			{
				limited.POST("/publications/:uid/vote", voteHandler.VotePublication)
				limited.POST("/transactions/:uid/vote", voteHandler.VoteTransaction)
				limited.POST("/publications/:uid/withdraw", voteHandler.Withdraw)
			}
		}
	}
}

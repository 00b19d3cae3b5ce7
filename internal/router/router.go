// Package router 负责组装 Gin 引擎：中间件与全部 API 路由。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/handler"
	"netqa-go/internal/middleware"
	"netqa-go/internal/service"
)

// Dependencies 是注册路由所需的全部服务。
type Dependencies struct {
	Verifier           service.CredentialVerifier
	UserService        service.UserService
	ChatService        service.ChatService
	HotQuestionService service.HotQuestionService
	FeedbackService    service.FeedbackService
	KnowledgeService   service.KnowledgeService

	CORSOrigins []string
	// 本地存储时对外提供附件的静态目录，为空则不注册
	StaticURLPrefix string
	StaticDir       string
}

// New 创建路由引擎。
func New(deps Dependencies) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(deps.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    http.StatusOK,
			"message": "Welcome to the network protocol Q&A API",
			"data":    nil,
		})
	})
	if deps.StaticDir != "" && deps.StaticURLPrefix != "" {
		r.Static(deps.StaticURLPrefix, deps.StaticDir)
	}

	auth := middleware.AuthMiddleware(deps.Verifier)
	userHandler := handler.NewUserHandler(deps.UserService)
	chatHandler := handler.NewChatHandler(deps.ChatService)
	hotHandler := handler.NewHotQuestionHandler(deps.HotQuestionService)
	feedbackHandler := handler.NewFeedbackHandler(deps.FeedbackService)
	knowledgeHandler := handler.NewKnowledgeHandler(deps.KnowledgeService)

	apiV1 := r.Group("/api/v1")
	{
		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("", userHandler.Register)
			users.POST("/token", userHandler.Login)
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)

			// 需要认证的路由
			users.POST("/logout", auth, userHandler.Logout)
		}

		chat := apiV1.Group("/chat")
		{
			chat.POST("", auth, chatHandler.Ask)
			chat.GET("/hot-questions", hotHandler.List)
			chat.POST("/hot-questions/:id/click", hotHandler.Click)
		}

		apiV1.GET("/questions/categories", feedbackHandler.QuestionCategories)
		apiV1.GET("/questions/:id", feedbackHandler.GetQuestion)
		apiV1.GET("/solutions/:id", feedbackHandler.GetSolution)
		apiV1.POST("/solutions/:id/references", auth, knowledgeHandler.LinkReference)

		feedbacks := apiV1.Group("/feedbacks")
		{
			feedbacks.POST("", feedbackHandler.Create)
			feedbacks.GET("", feedbackHandler.List)
			feedbacks.GET("/stats", feedbackHandler.Stats)
			feedbacks.PUT("/:id/status", feedbackHandler.UpdateStatus)
		}

		protocols := apiV1.Group("/protocols")
		{
			protocols.POST("", knowledgeHandler.CreateProtocol)
			protocols.GET("", knowledgeHandler.ListProtocols)
			protocols.GET("/:id", knowledgeHandler.GetProtocol)
		}

		knowledge := apiV1.Group("/knowledge")
		{
			knowledge.POST("", knowledgeHandler.CreateKnowledge)
			knowledge.GET("/search", knowledgeHandler.SearchKnowledge)
			knowledge.GET("/:id", knowledgeHandler.GetKnowledge)
		}
	}

	return r
}

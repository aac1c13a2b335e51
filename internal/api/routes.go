package api

import (
	"net/http"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth       service.AuthService
	Library    service.LibraryService
	Roster     service.RosterService
	Lessons    service.LessonService
	Compliance service.ComplianceService
	Workspace  *lesson.Workspace
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth, svc.Lessons)
	libraryHandler := NewLibraryHandler(svc.Library)
	rosterHandler := NewRosterHandler(svc.Roster)
	lessonHandler := NewLessonHandler(svc.Lessons, svc.Library)
	studentHandler := NewStudentHandler(svc.Lessons, svc.Library)
	adminHandler := NewAdminHandler(svc.Compliance, svc.Lessons, svc.Workspace)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.POST("/auth/login", authHandler.Login)

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/lesson", lessonHandler.State)
		protected.POST("/lesson/reset", lessonHandler.dispatch(lesson.Reset{}))

		// --- Reference data, any role ---
		protected.GET("/library", libraryHandler.ListPacks)
		protected.GET("/library/categories", libraryHandler.ListCategories)
		protected.GET("/library/:packId", libraryHandler.GetPack)
		protected.GET("/classes", rosterHandler.ListClasses)
		protected.GET("/schedule/:date", rosterHandler.Schedule)

		// --- Library editing: private packs only ---
		editors := protected.Group("/library")
		editors.Use(RoleMiddleware(domain.RoleAdmin, domain.RoleCoach))
		{
			editors.POST("", libraryHandler.CreatePack)
			editors.PUT("/:packId", libraryHandler.UpdatePack)
			editors.DELETE("/:packId", libraryHandler.DeletePack)
			editors.POST("/:packId/videos", libraryHandler.RequestVideoUpload)
			editors.POST("/combos/generate", libraryHandler.GenerateCombos)
			editors.POST("/combos", libraryHandler.SaveCombos)
		}

		// --- Coach lesson workflow ---
		coach := protected.Group("")
		coach.Use(RoleMiddleware(domain.RoleCoach, domain.RoleAdmin))
		{
			coach.GET("/coach/schedule", lessonHandler.Schedule)
			coach.GET("/coach/history", lessonHandler.History)
			coach.GET("/coach/plans/:classId/:date", lessonHandler.SavedPlan)

			coach.POST("/lesson/select", lessonHandler.SelectClass)
			coach.POST("/lesson/back", lessonHandler.dispatch(lesson.BackToSchedule{}))
			coach.POST("/lesson/items", lessonHandler.AddPack)
			coach.PATCH("/lesson/items/:packId", lessonHandler.UpdateItem)
			coach.POST("/lesson/items/:packId/actions/:actionId/toggle", lessonHandler.ToggleAction)
			coach.DELETE("/lesson/items/:packId", lessonHandler.RemoveItem)
			coach.POST("/lesson/submit", lessonHandler.dispatch(lesson.SubmitPlan{}))
			coach.POST("/lesson/draft", lessonHandler.dispatch(lesson.SaveDraft{}))
			coach.POST("/lesson/confirm", lessonHandler.dispatch(lesson.Confirm{}))
			coach.POST("/lesson/execute", lessonHandler.dispatch(lesson.ExecuteExisting{}))
			coach.POST("/lesson/return", lessonHandler.dispatch(lesson.ReturnToClass{}))
			coach.POST("/lesson/end", lessonHandler.dispatch(lesson.EndLesson{}))
		}

		// --- Student feedback ---
		student := protected.Group("/student")
		student.Use(RoleMiddleware(domain.RoleStudent))
		{
			student.GET("/classes", studentHandler.Classes)
			student.POST("/classes/:classId/open", studentHandler.OpenLesson)
			student.POST("/feedback", studentHandler.SubmitFeedback)
			student.POST("/report/dismiss", lessonHandler.dispatch(lesson.DismissReport{}))
		}

		// --- Admin ---
		admin := protected.Group("/admin")
		admin.Use(RoleMiddleware(domain.RoleAdmin))
		{
			admin.POST("/classes", rosterHandler.CreateClass)
			admin.DELETE("/classes/:classId", rosterHandler.DeleteClass)
			admin.GET("/compliance", adminHandler.Compliance)
			admin.GET("/deviations", adminHandler.Deviations)
			admin.GET("/classes/:classId/feedback", adminHandler.ClassFeedback)
		}
	}
}

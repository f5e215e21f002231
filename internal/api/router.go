package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/studentregistry/registry-api/docs"
	"github.com/studentregistry/registry-api/internal/api/handler"
	"github.com/studentregistry/registry-api/internal/api/middleware"
	"github.com/studentregistry/registry-api/internal/core/service"
	mongodb "github.com/studentregistry/registry-api/internal/infrastructure/db/mongo"
	httphandlers "github.com/studentregistry/registry-api/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes, middleware, and
// dependencies wired.
func NewRouter(db *mongo.Database, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registry"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	absenceRepo := mongodb.NewAbsenceRepository(db)
	settingRepo := mongodb.NewSettingRepository(db)

	// --- Services ---
	codec := service.NewTokenCodec(jwtSecret, tokenTTL)
	audit := service.NewAuditService(auditRepo, userRepo, log)
	authService := service.NewAuthService(userRepo, roleRepo, codec, audit, log)
	studentService := service.NewStudentService(studentRepo, audit, log)
	teacherService := service.NewTeacherService(teacherRepo, userRepo, audit, log)
	courseService := service.NewCourseService(courseRepo, audit, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, audit, log)
	absenceService := service.NewAbsenceService(absenceRepo, studentRepo, courseRepo, audit, log)
	settingService := service.NewSettingService(settingRepo, audit, log)
	userService := service.NewUserService(userRepo, roleRepo, audit, log)
	roleService := service.NewRoleService(roleRepo, log)

	// --- Authorization pipeline: fail-open token filter, fail-closed policy ---
	e.Use(middleware.BearerAuth(codec))
	e.Use(middleware.Enforce(middleware.DefaultPolicy()))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService, enrollmentService, absenceService)
	teacherHandler := handler.NewTeacherHandler(teacherService)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	absenceHandler := handler.NewAbsenceHandler(absenceService)
	settingHandler := handler.NewSettingHandler(settingService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	logHandler := handler.NewLogHandler(audit)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/change-password", authHandler.ChangePassword)
	auth.POST("/setup-admin", authHandler.SetupAdmin)

	// --- Students ---
	students := e.Group("/api/students")
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Delete)
	students.GET("/:id/enrollments", studentHandler.Enrollments)
	students.GET("/:id/absences", studentHandler.Absences)

	// --- Teachers ---
	teachers := e.Group("/api/teachers")
	teachers.GET("", teacherHandler.List)
	teachers.POST("", teacherHandler.Create)
	teachers.GET("/:id", teacherHandler.Get)
	teachers.PUT("/:id", teacherHandler.Update)
	teachers.DELETE("/:id", teacherHandler.Delete)
	teachers.PUT("/:id/user", teacherHandler.AssignUser)
	teachers.DELETE("/:id/user", teacherHandler.RevokeUser)

	// --- Courses ---
	courses := e.Group("/api/courses")
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update)
	courses.DELETE("/:id", courseHandler.Delete)

	// --- Enrollments ---
	enrollments := e.Group("/api/enrollments")
	enrollments.GET("", enrollmentHandler.List)
	enrollments.POST("", enrollmentHandler.Create)
	enrollments.DELETE("", enrollmentHandler.DeleteByStudentAndCourse)
	enrollments.GET("/:id", enrollmentHandler.Get)
	enrollments.PUT("/:id/grade", enrollmentHandler.UpdateGrade)
	enrollments.DELETE("/:id", enrollmentHandler.Delete)
	enrollments.GET("/student/:studentId/course/:courseId", enrollmentHandler.GetByStudentAndCourse)

	// --- Absences ---
	absences := e.Group("/api/absences")
	absences.GET("", absenceHandler.List)
	absences.POST("", absenceHandler.Create)
	absences.DELETE("/student/:studentId/course/:courseId/date/:date", absenceHandler.Delete)

	// --- Settings ---
	settings := e.Group("/api/settings")
	settings.GET("", settingHandler.List)
	settings.POST("", settingHandler.Create)
	settings.GET("/current-semester", settingHandler.CurrentSemester)
	settings.PUT("/current-semester", settingHandler.SetCurrentSemester)
	settings.GET("/key/:key", settingHandler.GetByKey)
	settings.PUT("/key/:key", settingHandler.SetByKey)
	settings.DELETE("/key/:key", settingHandler.DeleteByKey)
	settings.GET("/exists/:key", settingHandler.ExistsByKey)
	settings.GET("/value/:key", settingHandler.Value)
	settings.GET("/:id", settingHandler.Get)
	settings.PUT("/:id", settingHandler.Update)
	settings.DELETE("/:id", settingHandler.Delete)

	// --- Users (admin) ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/username/:username", userHandler.GetByUsername)
	users.GET("/email/:email", userHandler.GetByEmail)
	users.GET("/exists/username/:username", userHandler.ExistsByUsername)
	users.GET("/exists/email/:email", userHandler.ExistsByEmail)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Roles (admin) ---
	roles := e.Group("/api/roles")
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.GET("/:id", roleHandler.Get)
	roles.DELETE("/:id", roleHandler.Delete)

	// --- Audit log (admin) ---
	logs := e.Group("/api/logs")
	logs.GET("", logHandler.List)
	logs.GET("/:id", logHandler.Get)

	// --- Operational endpoints ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

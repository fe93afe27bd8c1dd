package router

import (
	"context"
	"net/http"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/middleware"
	"hrm/backend/internal/pkg/config"
	"hrm/backend/internal/pkg/repository/mongodb"
	"hrm/backend/internal/repository/mongo/attendance"
	"hrm/backend/internal/repository/mongo/event"
	"hrm/backend/internal/repository/mongo/feed"
	"hrm/backend/internal/repository/mongo/leave"
	"hrm/backend/internal/repository/mongo/meeting"
	"hrm/backend/internal/repository/mongo/message"
	"hrm/backend/internal/repository/mongo/recognition"
	"hrm/backend/internal/repository/mongo/user"
	"hrm/backend/internal/service/mail"
	"hrm/backend/internal/service/throttle"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	attendance_controller "hrm/backend/internal/controller/http/v1/attendance"
	auth_controller "hrm/backend/internal/controller/http/v1/auth"
	event_controller "hrm/backend/internal/controller/http/v1/event"
	feed_controller "hrm/backend/internal/controller/http/v1/feed"
	file_controller "hrm/backend/internal/controller/http/v1/file"
	leave_controller "hrm/backend/internal/controller/http/v1/leave"
	meeting_controller "hrm/backend/internal/controller/http/v1/meeting"
	message_controller "hrm/backend/internal/controller/http/v1/message"
	recognition_controller "hrm/backend/internal/controller/http/v1/recognition"
	user_controller "hrm/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	mongoDB  *mongodb.Database
	redisDB  *redis.Client
	auth     *auth.Auth
	mail     *mail.Mailer
	registry *prometheus.Registry
	cfg      config.Config
}

func NewRouter(
	app *web.App,
	mongoDB *mongodb.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	mail *mail.Mailer,
	registry *prometheus.Registry,
	cfg config.Config,
) *Router {
	return &Router{
		app,
		mongoDB,
		redisDB,
		auth,
		mail,
		registry,
		cfg,
	}
}

// Init installs the middlewares and registers every route.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.Logger(r.Log()),
		middleware.NewMetrics(r.registry).Handler(),
		middleware.CORS(r.cfg.Web.AllowedOrigins),
	)

	// - mongo
	userMongo := user.NewRepository(r.mongoDB)
	attendanceMongo := attendance.NewRepository(r.mongoDB)
	leaveMongo := leave.NewRepository(r.mongoDB)
	eventMongo := event.NewRepository(r.mongoDB)
	meetingMongo := meeting.NewRepository(r.mongoDB)
	messageMongo := message.NewRepository(r.mongoDB)
	feedMongo := feed.NewRepository(r.mongoDB)
	recognitionMongo := recognition.NewRepository(r.mongoDB)

	limiter := throttle.New(r.redisDB, r.cfg.Redis.MaxAttempts, r.cfg.Redis.Window)
	media := auth_controller.Media{Dir: r.cfg.Media.Dir, Prefix: r.cfg.Media.Prefix}

	// controller
	authController := auth_controller.NewController(userMongo, r.auth, limiter, r.mail, media)
	userController := user_controller.NewController(userMongo)
	attendanceController := attendance_controller.NewController(attendanceMongo)
	leaveController := leave_controller.NewController(leaveMongo, r.mail)
	eventController := event_controller.NewController(eventMongo)
	meetingController := meeting_controller.NewController(meetingMongo)
	messageController := message_controller.NewController(messageMongo)
	feedController := feed_controller.NewController(feedMongo)
	recognitionController := recognition_controller.NewController(recognitionMongo)

	fileC := file_controller.NewController(r.cfg.Media.Dir)

	member := middleware.Authenticate(r.auth, userMongo)
	admin := middleware.Authenticate(r.auth, userMongo, auth.RoleAdmin)

	r.GET("/health", r.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))
	r.GET(r.cfg.Media.Prefix+"/*filepath", fileC.File)
	r.HEAD(r.cfg.Media.Prefix+"/*filepath", fileC.File)

	// #auth
	r.Post("/api/auth/login", authController.SignIn)
	r.Post("/api/auth/register", authController.Register, admin)
	r.Get("/api/auth/profile", authController.GetProfile, member)
	r.Post("/api/auth/upload-avatar", authController.UploadAvatar, member)

	// #employees
	r.Get("/api/employees", userController.GetUserList, member)
	r.Get("/api/employees/export", userController.ExportEmployee, admin)
	r.Get("/api/employees/badges", userController.GetQrCodeList, admin)
	r.Post("/api/employees/import", userController.ImportEmployee, admin)
	r.Get("/api/employees/:id", userController.GetUserDetailById, member)
	r.Get("/api/employees/:id/qrcode", userController.GetQrCodeByEmployeeId, admin)
	r.Put("/api/employees/:id", userController.UpdateUserColumns, admin)
	r.Delete("/api/employees/:id", userController.DeleteUser, admin)

	// #attendance
	r.Post("/api/attendance/check-in", attendanceController.CheckIn, member)
	r.Post("/api/attendance/check-out", attendanceController.CheckOut, member)
	r.Get("/api/attendance/my-history", attendanceController.GetMyHistory, member)
	r.Get("/api/attendance/export", attendanceController.Export, admin)
	r.Get("/api/attendance", attendanceController.GetList, admin)

	// #leaves
	r.Post("/api/leaves", leaveController.CreateLeave, member)
	r.Get("/api/leaves/my-leaves", leaveController.GetMyLeaves, member)
	r.Get("/api/leaves", leaveController.GetLeaveList, admin)
	r.Put("/api/leaves/:id/status", leaveController.UpdateLeaveStatus, admin)

	// #events
	r.Get("/api/events", eventController.GetEventList, member)
	r.Post("/api/events", eventController.CreateEvent, admin)
	r.Get("/api/events/upcoming", eventController.GetUpcomingEvents, member)
	r.Get("/api/events/past", eventController.GetPastEvents, member)
	r.Put("/api/events/:id", eventController.UpdateEvent, admin)
	r.Delete("/api/events/:id", eventController.DeleteEvent, admin)
	r.Post("/api/events/:id/register", eventController.RegisterEvent, member)
	r.Delete("/api/events/:id/register", eventController.UnregisterEvent, member)

	// #meetings
	r.Get("/api/meetings", meetingController.GetMeetingList, member)
	r.Post("/api/meetings", meetingController.CreateMeeting, admin)
	r.Delete("/api/meetings/:id", meetingController.DeleteMeeting, admin)

	// #messages
	r.Get("/api/messages/conversations", messageController.GetConversations, member)
	r.Get("/api/messages/users", messageController.GetChatUsers, member)
	r.Get("/api/messages/:userId", messageController.GetThread, member)
	r.Post("/api/messages", messageController.SendMessage, member)

	// #feed
	r.Get("/api/feed", feedController.GetFeed, member)
	r.Post("/api/feed", feedController.CreateFeedItem, admin)
	r.Put("/api/feed/:id/like", feedController.ToggleLike, member)
	r.Post("/api/feed/:id/comment", feedController.AddComment, member)
	r.Delete("/api/feed/:id", feedController.DeleteFeedItem, admin)

	// #recognitions
	r.Get("/api/recognitions", recognitionController.GetRecognitionList, member)
	r.Post("/api/recognitions", recognitionController.CreateRecognition, member)
	r.Get("/api/recognitions/stats", recognitionController.GetStats, member)
	r.Get("/api/recognitions/user/:userId", recognitionController.GetUserStats, member)
}

func (r Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if r.mongoDB == nil {
		c.JSON(http.StatusServiceUnavailable, map[string]any{"error": "mongo not configured", "status": false})
		return
	}
	if err := r.mongoDB.Ping(ctx); err != nil {
		r.Log().Warn("health check", "error", err)
		c.JSON(http.StatusServiceUnavailable, map[string]any{"error": "mongo unreachable", "status": false})
		return
	}

	c.JSON(http.StatusOK, map[string]any{"data": map[string]string{"mongo": "ok"}, "status": true})
}

// Package routes owns the portal's route table: the public auth entry
// points, the three role-guarded subtrees, and the 404 fallback. Each
// protected subtree names exactly one required role; the guard decides per
// request whether its handlers run.
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/handlers"
	"github.com/campushub/portal/internal/app/middleware"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/session"
)

func Setup(r *gin.Engine, h *handlers.Handlers, sessions session.Store, log *zap.Logger) {
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login", h.LoginPage)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}

	student := r.Group("/student", middleware.RequireRole(sessions, models.RoleStudent))
	{
		student.GET("", h.StudentDashboard)
		student.GET("/registrations", h.StudentRegistrations)
		student.POST("/registrations", h.RegisterCourse)
		student.DELETE("/registrations/:id", h.DropRegistration)
		student.GET("/exams", h.StudentExams)
		student.GET("/materials", h.StudentMaterials)
		student.GET("/payments", h.StudentPayments)
		student.POST("/payments", h.PayTuition)
		student.GET("/scholarships", h.StudentScholarships)
		student.GET("/announcements", h.StudentAnnouncements)
	}

	lecturer := r.Group("/lecturer", middleware.RequireRole(sessions, models.RoleLecturer))
	{
		lecturer.GET("", h.LecturerDashboard)
		lecturer.GET("/courses", h.LecturerCourses)
		lecturer.GET("/students", h.LecturerStudents)
		lecturer.GET("/exams", h.LecturerExams)
		lecturer.POST("/exams", h.ScheduleExam)
		lecturer.DELETE("/exams/:id", h.CancelExam)
		lecturer.GET("/attendance", h.LecturerAttendance)
		lecturer.POST("/attendance", h.MarkAttendance)
		lecturer.GET("/materials", h.LecturerMaterials)
		lecturer.POST("/materials", h.ShareMaterial)
		lecturer.DELETE("/materials/:id", h.RemoveMaterial)
		lecturer.GET("/announcements", h.LecturerAnnouncements)
	}

	admin := r.Group("/admin", middleware.RequireRole(sessions, models.RoleAdmin))
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/students", h.AdminStudents)
		admin.POST("/students", h.CreateStudent)
		admin.PUT("/students/:id", h.UpdateStudent)
		admin.DELETE("/students/:id", h.DeleteStudent)
		admin.GET("/lecturers", h.AdminLecturers)
		admin.POST("/lecturers", h.CreateLecturer)
		admin.DELETE("/lecturers/:id", h.DeleteLecturer)
		admin.GET("/courses", h.AdminCourses)
		admin.POST("/courses", h.CreateCourse)
		admin.DELETE("/courses/:id", h.DeleteCourse)
		admin.GET("/payments", h.AdminPayments)
		admin.POST("/payments", h.RecordPayment)
		admin.GET("/refunds", h.AdminRefunds)
		admin.POST("/refunds", h.IssueRefund)
		admin.GET("/scholarships", h.AdminScholarships)
		admin.POST("/scholarships", h.AwardScholarship)
		admin.DELETE("/scholarships/:id", h.RevokeScholarship)
		admin.GET("/tuition", h.AdminTuition)
		admin.POST("/tuition", h.SetTuitionFee)
		admin.DELETE("/tuition/:id", h.RemoveTuitionFee)
		admin.GET("/announcements", h.AdminAnnouncements)
		admin.POST("/announcements", h.CreateAnnouncement)
		admin.DELETE("/announcements/:id", h.DeleteAnnouncement)
	}

	// Unmatched paths, including those under the protected subtrees, render
	// the 404 placeholder rather than redirecting.
	r.NoRoute(func(c *gin.Context) {
		log.Info("404 - Page not found",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("ip", c.ClientIP()),
		)
		h.NotFound(c)
	})
}

package routes

import (
	adminapi "artcert-backend/internal/api/admin"
	artworksapi "artcert-backend/internal/api/artworks"
	authapi "artcert-backend/internal/api/auth"
	billingapi "artcert-backend/internal/api/billing"
	certificatesapi "artcert-backend/internal/api/certificates"
	nfctagsapi "artcert-backend/internal/api/nfctags"
	profilesapi "artcert-backend/internal/api/profiles"
	stripewebhooks "artcert-backend/internal/api/stripewebhook"
	"artcert-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Raw body needed for signature verification, keep it off the
	// sanitizing group
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public certificate surface: what a tag scan or QR code resolves to
	r.GET("/nfc/scan/:uid", nfctagsapi.ScanTag)
	r.GET("/certificates/:certificate_id", certificatesapi.GetPublicCertificate)
	r.GET("/p/:slug", profilesapi.GetPublicProfile)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", profilesapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", profilesapi.GetCurrentProfile)
	auth.PUT("/me", profilesapi.UpdateProfile)
	auth.PUT("/me/username", profilesapi.UpdateUsername)
	auth.POST("/me/share-link", profilesapi.GetShareLink)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.GET("/orders", billingapi.GetOrderHistory)

	auth.GET("/artworks", artworksapi.ListArtworks)
	auth.GET("/artworks/:id", artworksapi.GetArtworkByID)
	auth.POST("/artworks", artworksapi.CreateArtwork)
	auth.PUT("/artworks/:id", artworksapi.UpdateArtwork)
	auth.DELETE("/artworks/:id", artworksapi.DeleteArtwork)

	// Certifying actions need an artist or gallery profile
	certifying := auth.Group("/")
	certifying.Use(middleware.RequireArtistProfile())
	certifying.POST("/artworks/:id/tag", nfctagsapi.LinkTag)
	certifying.DELETE("/artworks/:id/tag", nfctagsapi.UnlinkTag)
	certifying.POST("/artworks/:id/certificate", certificatesapi.IssueCertificate)
	certifying.POST("/artworks/:id/request-verification", billingapi.RequestVerification)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/profiles", adminapi.ListAllProfiles)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/profile/:id", adminapi.GetProfileDetails)
	admin.POST("/artworks/:id/verify", adminapi.VerifyArtwork)
}

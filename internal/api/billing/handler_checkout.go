package billingapi

import (
	"fmt"
	"net/http"
	"os"

	"artcert-backend/config"
	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/billing"
	"artcert-backend/internal/domain/profiles"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

// RequestVerification starts a paid verification for an owned, still
// unverified artwork. The webhook flips the artwork to verified once
// Stripe confirms payment.
func RequestVerification(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	priceID := os.Getenv("STRIPE_VERIFICATION_PRICE_ID")
	if priceID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification price not configured"})
		return
	}

	profileID := c.GetString("profile_id")
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var artwork artworks.Artwork
	if err := database.DB.Where("id = ? AND owner_id = ?", c.Param("id"), profileID).
		First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	if artwork.Status == artworks.StatusVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Artwork is already verified"})
		return
	}

	var profile profiles.UserProfile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile not found"})
		return
	}

	if !profile.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	// ensure stripe customer
	if profile.StripeCustomerID == nil || *profile.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(profile.Email),
			Metadata: map[string]string{
				"profile_id": profile.ID,
				"app_env":    os.Getenv("APP_ENV"),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
			return
		}

		if err := database.DB.Model(&profiles.UserProfile{}).
			Where("id = ?", profile.ID).
			Update("stripe_customer_id", cus.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}

		profile.StripeCustomerID = stripe.String(cus.ID)
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/artworks/" + artwork.ID + "?verification=pending"),
		CancelURL:  stripe.String(config.APP_URL + "/artworks/" + artwork.ID + "?verification=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(*profile.StripeCustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(profile.ID),
		Metadata: map[string]string{
			"artwork_id": artwork.ID,
			"profile_id": profile.ID,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		fmt.Println("❌ Stripe checkout error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	order := billing.VerificationOrder{
		ProfileID:       profile.ID,
		ArtworkID:       artwork.ID,
		StripeSessionID: sess.ID,
		AmountEUR:       float64(sess.AmountTotal) / 100,
		Status:          billing.OrderPending,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record verification order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": sess.URL})
}

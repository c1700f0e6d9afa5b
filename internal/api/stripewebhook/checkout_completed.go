package stripewebhooks

import (
	"errors"
	"fmt"

	"artcert-backend/database"
	"artcert-backend/internal/domain/artworks"
	"artcert-backend/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	// Fetch full session so we get payment status and amounts
	fullSession, err := checkoutsession.Get(session.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch checkout session: %w", err)
	}

	if fullSession.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		// unpaid completion (e.g. delayed payment methods); keep it pending
		return nil
	}

	var order billing.VerificationOrder
	if err := database.DB.Where("stripe_session_id = ?", fullSession.ID).First(&order).Error; err != nil {
		return fmt.Errorf("verification order not found for session %s: %w", fullSession.ID, err)
	}

	if order.Status == billing.OrderPaid {
		// already processed, webhook retry
		return nil
	}

	updates := map[string]interface{}{
		"status":     billing.OrderPaid,
		"amount_eur": float64(fullSession.AmountTotal) / 100,
	}
	if err := database.DB.Model(&order).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	// Paid verification is the external process that flips the artwork
	if err := database.DB.Model(&artworks.Artwork{}).
		Where("id = ?", order.ArtworkID).
		Update("status", artworks.StatusVerified).Error; err != nil {
		return fmt.Errorf("failed to mark artwork verified: %w", err)
	}

	return nil
}

func handleCheckoutSessionExpired(session *stripe.CheckoutSession) error {
	var order billing.VerificationOrder
	err := database.DB.Where("stripe_session_id = ?", session.ID).First(&order).Error
	if err != nil {
		// nothing to expire; not a retryable failure
		return nil
	}

	if order.Status != billing.OrderPending {
		return nil
	}

	if err := database.DB.Model(&order).Update("status", billing.OrderFailed).Error; err != nil {
		return errors.New("failed to expire order")
	}
	return nil
}

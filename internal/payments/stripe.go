package payments

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stillwrite/stillwrite-backend/internal/models"
)

// ErrNotConfigured means no Stripe secret key is set; payments are disabled.
var ErrNotConfigured = errors.New("payment service not configured")

const paymentsCollection = "payments"

// Checkout is a created Stripe checkout session the client is redirected to.
type Checkout struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// ProStatus is the outcome of a verification or status lookup.
type ProStatus struct {
	IsPro       bool       `json:"isPro"`
	Email       string     `json:"email,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// Service handles Pro upgrades through Stripe Checkout and records verified
// payments in MongoDB.
type Service struct {
	secretKey  string
	priceID    string
	appBaseURL string
	db         *mongo.Database
}

// NewService configures the service. secretKey may be empty (payments
// disabled); db may be nil (verified payments are not persisted, status
// lookups report not-pro).
func NewService(secretKey, priceID, appBaseURL string, db *mongo.Database) *Service {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &Service{secretKey: secretKey, priceID: priceID, appBaseURL: appBaseURL, db: db}
}

// Configured reports whether a Stripe key is available.
func (s *Service) Configured() bool {
	return s.secretKey != ""
}

// CreateCheckout opens a checkout session for the Pro upgrade.
func (s *Service) CreateCheckout(ctx context.Context, email, userID string) (Checkout, error) {
	if s.secretKey == "" {
		return Checkout{}, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(s.appBaseURL + "/upgrade/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.appBaseURL + "/upgrade/cancelled"),
		CustomerEmail: stripe.String(email),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("email", email)

	sess, err := session.New(params)
	if err != nil {
		return Checkout{}, err
	}
	return Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifySession fetches a checkout session from Stripe and, when paid,
// records the upgrade. Verification is the only write path into the payments
// collection.
func (s *Service) VerifySession(ctx context.Context, sessionID string) (ProStatus, error) {
	if s.secretKey == "" {
		return ProStatus{}, ErrNotConfigured
	}

	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return ProStatus{}, err
	}

	userID := sess.Metadata["user_id"]
	email := sess.Metadata["email"]
	if email == "" && sess.CustomerEmail != "" {
		email = sess.CustomerEmail
	}

	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return ProStatus{IsPro: false, Email: email, UserID: userID}, nil
	}

	paidAt := time.Now()
	if s.db != nil {
		record := models.PaymentRecord{
			UserID:    userID,
			Email:     email,
			SessionID: sessionID,
			PaidAt:    paidAt,
		}
		opts := options.Replace().SetUpsert(true)
		_, err = s.db.Collection(paymentsCollection).
			ReplaceOne(ctx, bson.M{"session_id": sessionID}, record, opts)
		if err != nil {
			return ProStatus{}, err
		}
	}

	return ProStatus{IsPro: true, Email: email, UserID: userID, PaymentDate: &paidAt}, nil
}

// Status reports whether the user has a recorded payment. Any failure reads
// as not-pro: this is a non-critical check and must never block the app.
func (s *Service) Status(ctx context.Context, userID string) ProStatus {
	if s.db == nil || userID == "" {
		return ProStatus{IsPro: false}
	}

	var record models.PaymentRecord
	err := s.db.Collection(paymentsCollection).
		FindOne(ctx, bson.M{"user_id": userID},
			options.FindOne().SetSort(bson.M{"paid_at": -1})).
		Decode(&record)
	if err != nil {
		return ProStatus{IsPro: false}
	}
	return ProStatus{IsPro: true, UserID: userID, Email: record.Email, PaymentDate: &record.PaidAt}
}

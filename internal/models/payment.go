package models

import "time"

// PaymentRecord marks a completed Pro upgrade, one document per verified
// checkout session.
type PaymentRecord struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Email     string    `bson:"email" json:"email"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	PaidAt    time.Time `bson:"paid_at" json:"paidAt"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber records one opted-in email address.
type NewsletterSubscriber struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex:idx_newsletter_email"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;autoCreateTime"`
}

func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }

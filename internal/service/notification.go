package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rental/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated  NotificationType = "BOOKING_CREATED"
	NotificationTripConfirmed   NotificationType = "TRIP_CONFIRMED"
	NotificationTripStarted     NotificationType = "TRIP_STARTED"
	NotificationTripCompleted   NotificationType = "TRIP_COMPLETED"
	NotificationTripCancelled   NotificationType = "TRIP_CANCELLED"
	NotificationRatingSubmitted NotificationType = "RATING_SUBMITTED"
	NotificationClaimLinked     NotificationType = "CLAIM_LINKED"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - Email client (SendGrid)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingCreated notifies the owner about a new booking on their vehicle.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationBookingCreated,
		RecipientID: trip.OwnerID,
		Title:       "New Booking",
		Message:     fmt.Sprintf("Your vehicle has a new booking from %s to %s", trip.PlannedStart.Format(time.RFC3339), trip.PlannedEnd.Format(time.RFC3339)),
		Data: map[string]interface{}{
			"trip_id":    trip.ID,
			"vehicle_id": trip.VehicleID,
			"total":      trip.TotalAmount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripConfirmed notifies the renter that the booking is confirmed.
func (s *NotificationService) NotifyTripConfirmed(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationTripConfirmed,
		RecipientID: trip.RenterID,
		Title:       "Booking Confirmed",
		Message:     "Your booking has been confirmed. The vehicle is reserved for you.",
		Data: map[string]interface{}{
			"trip_id":    trip.ID,
			"vehicle_id": trip.VehicleID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripStarted notifies the owner that the trip has started.
func (s *NotificationService) NotifyTripStarted(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationTripStarted,
		RecipientID: trip.OwnerID,
		Title:       "Trip Started",
		Message:     "The renter has picked up your vehicle.",
		Data: map[string]interface{}{
			"trip_id":        trip.ID,
			"vehicle_id":     trip.VehicleID,
			"start_odometer": trip.StartOdometer,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripCompleted notifies the owner that the vehicle is back.
func (s *NotificationService) NotifyTripCompleted(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationTripCompleted,
		RecipientID: trip.OwnerID,
		Title:       "Trip Completed",
		Message:     fmt.Sprintf("Your vehicle has been returned. Distance driven: %d km", trip.DistanceTraveled()),
		Data: map[string]interface{}{
			"trip_id":      trip.ID,
			"vehicle_id":   trip.VehicleID,
			"end_odometer": trip.EndOdometer,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripCancelled notifies the other party about a cancellation.
func (s *NotificationService) NotifyTripCancelled(ctx context.Context, trip *domain.Trip, cancelledBy string, reason string) error {
	var recipientID string
	var message string

	if cancelledBy == trip.RenterID {
		recipientID = trip.OwnerID
		message = "The renter has cancelled the booking"
	} else {
		recipientID = trip.RenterID
		message = "The owner has cancelled the booking"
	}

	notification := Notification{
		Type:        NotificationTripCancelled,
		RecipientID: recipientID,
		Title:       "Booking Cancelled",
		Message:     message,
		Data: map[string]interface{}{
			"trip_id":      trip.ID,
			"cancelled_by": cancelledBy,
			"reason":       reason,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyRatingSubmitted notifies the rated party.
func (s *NotificationService) NotifyRatingSubmitted(ctx context.Context, trip *domain.Trip, recipientID string, rating int) error {
	notification := Notification{
		Type:        NotificationRatingSubmitted,
		RecipientID: recipientID,
		Title:       "New Rating",
		Message:     fmt.Sprintf("You received a %d-star rating", rating),
		Data: map[string]interface{}{
			"trip_id": trip.ID,
			"rating":  rating,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyClaimLinked notifies both parties about a linked insurance claim.
func (s *NotificationService) NotifyClaimLinked(ctx context.Context, trip *domain.Trip) error {
	for _, recipientID := range []string{trip.RenterID, trip.OwnerID} {
		notification := Notification{
			Type:        NotificationClaimLinked,
			RecipientID: recipientID,
			Title:       "Insurance Claim Linked",
			Message:     fmt.Sprintf("Insurance claim %s has been linked to your trip", trip.InsuranceClaimID),
			Data: map[string]interface{}{
				"trip_id":  trip.ID,
				"claim_id": trip.InsuranceClaimID,
			},
			CreatedAt: time.Now(),
		}
		if err := s.send(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Send SMS or email if enabled

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}

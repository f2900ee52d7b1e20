package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightbook_bookings_created_total",
		Help: "Bookings successfully committed.",
	})

	BookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightbook_bookings_rejected_total",
		Help: "Booking attempts rejected for insufficient capacity.",
	})

	NotificationsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightbook_notifications_published_total",
		Help: "Notification events published to Kafka.",
	})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightbook_notifications_sent_total",
		Help: "Notification emails delivered by the worker.",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightbook_notifications_failed_total",
		Help: "Notification emails the worker failed to deliver.",
	})
)

package application

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rahe01/StayVista/domain"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

var (
	smtpServer     = os.Getenv("SMTP_SERVER")
	smtpServerPort = smtpPort()
	smtpEmail      = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword   = os.Getenv("SMTP_AUTH_PASSWORD")
)

func smtpPort() int {
	port, err := strconv.Atoi(os.Getenv("SMTP_SERVER_PORT"))
	if err != nil {
		return 587
	}
	return port
}

// NotificationService is an outbox: every notification is persisted first,
// then handed to a background worker that delivers mail. Delivery is
// best-effort; a full queue or a dead SMTP server never reaches the caller.
type NotificationService struct {
	store  domain.NotificationStore
	queue  chan *domain.Notification
	cb     *gobreaker.CircuitBreaker
	logger *logrus.Logger
}

func NewNotificationService(store domain.NotificationStore, logger *logrus.Logger) *NotificationService {
	service := &NotificationService{
		store:  store,
		queue:  make(chan *domain.Notification, 64),
		cb:     CircuitBreaker("notificationService"),
		logger: logger,
	}

	go service.deliver()

	return service
}

// Enqueue records the notification and schedules delivery. It never blocks
// and never returns an error to the booking flow.
func (service *NotificationService) Enqueue(ctx context.Context, notification *domain.Notification) {
	notification.CreatedAt = time.Now()

	saved, err := service.store.Insert(ctx, notification)
	if err != nil {
		service.logger.Errorf("could not persist notification for %s: %s", notification.Email, err)
		saved = notification
	}

	select {
	case service.queue <- saved:
	default:
		service.logger.Warnf("notification queue full, dropping mail for %s", saved.Email)
	}
}

func (service *NotificationService) GetByEmail(ctx context.Context, email string) ([]*domain.Notification, error) {
	return service.store.GetByEmail(ctx, email)
}

func (service *NotificationService) deliver() {
	for notification := range service.queue {
		_, err := service.cb.Execute(func() (interface{}, error) {
			return nil, sendMail(notification)
		})
		if err != nil {
			service.logger.Errorf("failed to send mail to %s: %s", notification.Email, err)
		}
	}
}

func sendMail(notification *domain.Notification) error {
	message := gomail.NewMessage()
	message.SetHeader("From", fmt.Sprintf("\"StayVista\" <%s>", smtpEmail))
	message.SetHeader("To", notification.Email)
	message.SetHeader("Subject", notification.Subject)
	message.SetBody("text/html", notification.Message)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)

	return client.DialAndSend(message)
}

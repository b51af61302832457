package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"rope-coach/internal/models"
)

const (
	SubjectSessionClosed = "session.closed"
	SubjectLowBalance    = "wallet.low_balance"
)

type Publisher interface {
	PublishSessionClosed(session *models.SessionRecord, charged []ChargedStudent) error
	PublishLowBalance(wallet models.LessonWallet) error
	Close()
}

type ChargedStudent struct {
	StudentID string  `json:"student_id"`
	Lessons   float64 `json:"lessons"`
}

type SessionClosedEvent struct {
	EventID   uuid.UUID        `json:"event_id"`
	EventType string           `json:"event_type"`
	SessionID string           `json:"session_id"`
	ClassID   string           `json:"class_id"`
	Date      time.Time        `json:"date"`
	Charged   []ChargedStudent `json:"charged"`
	ClosedAt  time.Time        `json:"closed_at"`
}

type LowBalanceEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType string    `json:"event_type"`
	StudentID string    `json:"student_id"`
	Remaining float64   `json:"remaining"`
	At        time.Time `json:"at"`
}

type NatsPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNatsPublisher(natsURL string, log *zap.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("rope-coach"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &NatsPublisher{conn: nc, log: log}, nil
}

// NewPublisher - NATS, если задан URL, иначе публикация отключена
func NewPublisher(natsURL string, log *zap.Logger) (Publisher, error) {
	if natsURL == "" {
		log.Info("NATS_URL не задан, события не публикуются")
		return NoopPublisher{}, nil
	}
	p, err := NewNatsPublisher(natsURL, log)
	if err != nil {
		return nil, err
	}
	log.Info("подключились к NATS", zap.String("url", natsURL))
	return p, nil
}

func NewSessionClosedEvent(session *models.SessionRecord, charged []ChargedStudent, now time.Time) SessionClosedEvent {
	if charged == nil {
		charged = []ChargedStudent{}
	}
	return SessionClosedEvent{
		EventID:   uuid.New(),
		EventType: SubjectSessionClosed,
		SessionID: session.ID,
		ClassID:   session.ClassID,
		Date:      session.Date,
		Charged:   charged,
		ClosedAt:  now,
	}
}

func NewLowBalanceEvent(wallet models.LessonWallet, now time.Time) LowBalanceEvent {
	return LowBalanceEvent{
		EventID:   uuid.New(),
		EventType: SubjectLowBalance,
		StudentID: wallet.StudentID,
		Remaining: wallet.Remaining,
		At:        now,
	}
}

func (p *NatsPublisher) PublishSessionClosed(session *models.SessionRecord, charged []ChargedStudent) error {
	return p.publish(SubjectSessionClosed, NewSessionClosedEvent(session, charged, time.Now()))
}

func (p *NatsPublisher) PublishLowBalance(wallet models.LessonWallet) error {
	return p.publish(SubjectLowBalance, NewLowBalanceEvent(wallet, time.Now()))
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		p.log.Error("ошибка публикации в NATS", zap.String("subject", subject), zap.Error(err))
		return err
	}

	p.log.Debug("событие опубликовано", zap.String("subject", subject))
	return nil
}

func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("nats drain", zap.Error(err))
	}
}

type NoopPublisher struct{}

func (NoopPublisher) PublishSessionClosed(*models.SessionRecord, []ChargedStudent) error { return nil }
func (NoopPublisher) PublishLowBalance(models.LessonWallet) error                      { return nil }
func (NoopPublisher) Close()                                                           {}

package service

import (
	"errors"
	"time"

	"github.com/uplink-social/uplink/core"
	"github.com/uplink-social/uplink/db"
	"github.com/uplink-social/uplink/db/models"

	"gorm.io/gorm"
)

var _ core.MessageService = (*MessageServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.MESSAGE_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewMessageService()
		},
		Depends: []string{core.USER_SERVICE},
	})
}

type MessageServiceDefault struct {
	ctx  core.Context
	db   *gorm.DB
	user core.UserService
}

func NewMessageService() (*MessageServiceDefault, []core.ContextBuilderOption, error) {
	message := &MessageServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			message.ctx = ctx
			message.db = ctx.DB()
			message.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return message, opts, nil
}

func (m MessageServiceDefault) ID() string {
	return core.MESSAGE_SERVICE
}

func (m MessageServiceDefault) SendMessage(senderID uint, receiverID uint, body string) (*models.Message, error) {
	if body == "" {
		return nil, core.NewDomainError(core.ErrKeyValidationFailed, nil, "Message body is required.")
	}

	if exists, _, err := m.user.AccountExists(receiverID); err != nil {
		return nil, err
	} else if !exists {
		return nil, core.NewDomainError(core.ErrKeyUserNotFound, nil)
	}

	record := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	}

	if err := db.RetryOnLock(m.db, func(db *gorm.DB) *gorm.DB {
		return db.Create(&record)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return &record, nil
}

// GetMessage is restricted to the two participants. The receiver's first
// read marks the message read; later reads keep the original timestamp.
func (m MessageServiceDefault) GetMessage(userID uint, messageID uint) (*models.Message, error) {
	var record models.Message

	if err := db.RetryOnLock(m.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Sender").Preload("Receiver").First(&record, messageID)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NewDomainError(core.ErrKeyMessageNotFound, nil)
		}

		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	if record.SenderID != userID && record.ReceiverID != userID {
		return nil, core.NewDomainError(core.ErrKeyForbidden, nil)
	}

	if record.ReceiverID == userID && !record.IsRead {
		now := time.Now()
		record.IsRead = true
		record.ReadAt = &now

		if err := db.RetryOnLock(m.db, func(db *gorm.DB) *gorm.DB {
			return db.Model(&record).Updates(map[string]any{"is_read": true, "read_at": &now})
		}); err != nil {
			return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
		}
	}

	return &record, nil
}

// Inbox returns the latest message per conversation peer, newest first.
func (m MessageServiceDefault) Inbox(userID uint) ([]models.Message, error) {
	var all []models.Message

	if err := db.RetryOnLock(m.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Sender").Preload("Receiver").
			Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Order("created_at desc").Find(&all)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	seen := make(map[uint]bool)
	var inbox []models.Message

	for _, msg := range all {
		peer := msg.SenderID
		if peer == userID {
			peer = msg.ReceiverID
		}

		if seen[peer] {
			continue
		}

		seen[peer] = true
		inbox = append(inbox, msg)
	}

	return inbox, nil
}

func (m MessageServiceDefault) History(userID uint, peerID uint) ([]models.Message, error) {
	var history []models.Message

	if err := db.RetryOnLock(m.db, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Sender").Preload("Receiver").
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, peerID, peerID, userID).
			Order("created_at asc").Find(&history)
	}); err != nil {
		return nil, core.NewDomainError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return history, nil
}

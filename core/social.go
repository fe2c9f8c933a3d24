package core

import "github.com/uplink-social/uplink/db/models"

const SOCIAL_SERVICE = "social"
const MESSAGE_SERVICE = "message"

type SocialService interface {
	// ToggleFollow follows the target if not yet followed and unfollows
	// otherwise. Following yourself is rejected. It reports whether the
	// follower follows the target after the call.
	ToggleFollow(followerID uint, followingID uint) (bool, error)

	// Followers returns the users following the given user.
	Followers(userID uint) ([]models.Follow, error)

	// Following returns the users the given user follows.
	Following(userID uint) ([]models.Follow, error)

	Service
}

type MessageService interface {
	// SendMessage creates a direct message from sender to receiver.
	SendMessage(senderID uint, receiverID uint, body string) (*models.Message, error)

	// GetMessage returns one message. Only the sender or receiver may read
	// it; the first read by the receiver marks it read.
	GetMessage(userID uint, messageID uint) (*models.Message, error)

	// Inbox returns the latest message exchanged with each peer, newest
	// first.
	Inbox(userID uint) ([]models.Message, error)

	// History returns the full conversation between two users in
	// chronological order.
	History(userID uint, peerID uint) ([]models.Message, error)

	Service
}

package tgbot

import api "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Types the Bot API has not changed since the library release are taken from
// it as is.
type (
	MessageID            = api.MessageID
	PhotoSize            = api.PhotoSize
	Location             = api.Location
	UserProfilePhotos    = api.UserProfilePhotos
	InlineKeyboardMarkup = api.InlineKeyboardMarkup
	InlineKeyboardButton = api.InlineKeyboardButton
	ShippingAddress      = api.ShippingAddress
	OrderInfo            = api.OrderInfo
	LabeledPrice         = api.LabeledPrice
	ShippingOption       = api.ShippingOption
)

// Media for editMessageMedia and sendMediaGroup. Media and thumbnails that
// need uploading are attached to the request by Params.
type (
	InputMediaPhoto     = api.InputMediaPhoto
	InputMediaVideo     = api.InputMediaVideo
	InputMediaAnimation = api.InputMediaAnimation
	InputMediaAudio     = api.InputMediaAudio
	InputMediaDocument  = api.InputMediaDocument
)

// Chat types reported in Chat.Type.
const (
	ChatTypePrivate    = "private"
	ChatTypeGroup      = "group"
	ChatTypeSupergroup = "supergroup"
	ChatTypeChannel    = "channel"
)

// IsChatType reports whether t is one of the chat type tags.
func IsChatType(t string) bool {
	switch t {
	case ChatTypePrivate, ChatTypeGroup, ChatTypeSupergroup, ChatTypeChannel:
		return true
	}
	return false
}

// User represents a Telegram user or bot.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// Chat represents a chat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsForum   bool   `json:"is_forum,omitempty"`

	// Only returned by getChat.
	Description string           `json:"description,omitempty"`
	InviteLink  string           `json:"invite_link,omitempty"`
	Permissions *ChatPermissions `json:"permissions,omitempty"`
}

// Message represents a message.
type Message struct {
	MessageID            int    `json:"message_id"`
	MessageThreadID      int    `json:"message_thread_id,omitempty"`
	BusinessConnectionID string `json:"business_connection_id,omitempty"`
	From                 *User  `json:"from,omitempty"`
	SenderChat           *Chat  `json:"sender_chat,omitempty"`
	Date                 int64  `json:"date"`
	EditDate             int64  `json:"edit_date,omitempty"`
	Chat                 *Chat  `json:"chat"`

	ReplyToMessage *Message `json:"reply_to_message,omitempty"`

	Text            string          `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`

	Photo    []PhotoSize `json:"photo,omitempty"`
	Sticker  *Sticker    `json:"sticker,omitempty"`
	Location *Location   `json:"location,omitempty"`

	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// MessageEntity represents one special entity in a text message.
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	User          *User  `json:"user,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// EntityCustomEmoji is the MessageEntity.Type of inline custom emoji stickers.
const EntityCustomEmoji = "custom_emoji"

// InlineMessage identifies a message sent via inline mode. It is all the
// platform hands back for such messages.
type InlineMessage struct {
	InlineMessageID string `json:"inline_message_id"`
}

// Sticker represents a sticker.
type Sticker struct {
	FileID        string `json:"file_id"`
	FileUniqueID  string `json:"file_unique_id"`
	Type          string `json:"type"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	IsAnimated    bool   `json:"is_animated"`
	IsVideo       bool   `json:"is_video"`
	Emoji         string `json:"emoji,omitempty"`
	SetName       string `json:"set_name,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// Reaction types.
const (
	ReactionEmoji       = "emoji"
	ReactionCustomEmoji = "custom_emoji"
	ReactionPaid        = "paid"
)

// ReactionType describes a reaction on a message.
type ReactionType struct {
	Type          string `json:"type"`
	Emoji         string `json:"emoji,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// CallbackQuery is an incoming callback query from an inline keyboard button.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            *User    `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`
}

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID       string    `json:"id"`
	From     *User     `json:"from"`
	Query    string    `json:"query"`
	Offset   string    `json:"offset"`
	ChatType string    `json:"chat_type,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// ChosenInlineResult is an inline result chosen by a user and sent to their
// chat partner.
type ChosenInlineResult struct {
	ResultID        string    `json:"result_id"`
	From            *User     `json:"from"`
	Location        *Location `json:"location,omitempty"`
	InlineMessageID string    `json:"inline_message_id,omitempty"`
	Query           string    `json:"query"`
}

// ShippingQuery is an incoming shipping query.
type ShippingQuery struct {
	ID              string           `json:"id"`
	From            *User            `json:"from"`
	InvoicePayload  string           `json:"invoice_payload"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// PreCheckoutQuery is an incoming pre-checkout query.
type PreCheckoutQuery struct {
	ID               string     `json:"id"`
	From             *User      `json:"from"`
	Currency         string     `json:"currency"`
	TotalAmount      int        `json:"total_amount"`
	InvoicePayload   string     `json:"invoice_payload"`
	ShippingOptionID string     `json:"shipping_option_id,omitempty"`
	OrderInfo        *OrderInfo `json:"order_info,omitempty"`
}

// ChatInviteLink is an invite link for a chat.
type ChatInviteLink struct {
	InviteLink              string `json:"invite_link"`
	Creator                 *User  `json:"creator"`
	CreatesJoinRequest      bool   `json:"creates_join_request"`
	IsPrimary               bool   `json:"is_primary"`
	IsRevoked               bool   `json:"is_revoked"`
	Name                    string `json:"name,omitempty"`
	ExpireDate              int64  `json:"expire_date,omitempty"`
	MemberLimit             int    `json:"member_limit,omitempty"`
	PendingJoinRequestCount int    `json:"pending_join_request_count,omitempty"`
}

// ChatJoinRequest is a request to join a chat.
type ChatJoinRequest struct {
	Chat       *Chat           `json:"chat"`
	From       *User           `json:"from"`
	UserChatID int64           `json:"user_chat_id"`
	Date       int64           `json:"date"`
	Bio        string          `json:"bio,omitempty"`
	InviteLink *ChatInviteLink `json:"invite_link,omitempty"`
}

// Chat member statuses.
const (
	MemberCreator       = "creator"
	MemberAdministrator = "administrator"
	MemberMember        = "member"
	MemberRestricted    = "restricted"
	MemberLeft          = "left"
	MemberKicked        = "kicked"
)

// ChatMember contains information about one member of a chat. It flattens
// every member status into one struct; fields not relevant to Status are zero.
type ChatMember struct {
	Status      string `json:"status"`
	User        *User  `json:"user"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
	CustomTitle string `json:"custom_title,omitempty"`
	UntilDate   int64  `json:"until_date,omitempty"`
	IsMember    bool   `json:"is_member,omitempty"`

	CanBeEdited           bool `json:"can_be_edited,omitempty"`
	CanManageChat         bool `json:"can_manage_chat,omitempty"`
	CanDeleteMessages     bool `json:"can_delete_messages,omitempty"`
	CanRestrictMembers    bool `json:"can_restrict_members,omitempty"`
	CanPromoteMembers     bool `json:"can_promote_members,omitempty"`
	CanChangeInfo         bool `json:"can_change_info,omitempty"`
	CanInviteUsers        bool `json:"can_invite_users,omitempty"`
	CanPinMessages        bool `json:"can_pin_messages,omitempty"`
	CanManageTopics       bool `json:"can_manage_topics,omitempty"`
	CanPostMessages       bool `json:"can_post_messages,omitempty"`
	CanEditMessages       bool `json:"can_edit_messages,omitempty"`
	CanSendMessages       bool `json:"can_send_messages,omitempty"`
	CanSendPolls          bool `json:"can_send_polls,omitempty"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews,omitempty"`
}

// ChatPermissions describes actions a non-administrator user may take in a
// chat.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages,omitempty"`
	CanSendAudios         bool `json:"can_send_audios,omitempty"`
	CanSendDocuments      bool `json:"can_send_documents,omitempty"`
	CanSendPhotos         bool `json:"can_send_photos,omitempty"`
	CanSendVideos         bool `json:"can_send_videos,omitempty"`
	CanSendVideoNotes     bool `json:"can_send_video_notes,omitempty"`
	CanSendVoiceNotes     bool `json:"can_send_voice_notes,omitempty"`
	CanSendPolls          bool `json:"can_send_polls,omitempty"`
	CanSendOtherMessages  bool `json:"can_send_other_messages,omitempty"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews,omitempty"`
	CanChangeInfo         bool `json:"can_change_info,omitempty"`
	CanInviteUsers        bool `json:"can_invite_users,omitempty"`
	CanPinMessages        bool `json:"can_pin_messages,omitempty"`
	CanManageTopics       bool `json:"can_manage_topics,omitempty"`
}

// ForumTopic is a forum topic.
type ForumTopic struct {
	MessageThreadID   int    `json:"message_thread_id"`
	Name              string `json:"name"`
	IconColor         int    `json:"icon_color"`
	IconCustomEmojiID string `json:"icon_custom_emoji_id,omitempty"`
}

// MenuButton describes the bot's menu button in a private chat.
type MenuButton struct {
	Type   string      `json:"type"`
	Text   string      `json:"text,omitempty"`
	WebApp *WebAppInfo `json:"web_app,omitempty"`
}

// WebAppInfo describes a Web App.
type WebAppInfo struct {
	URL string `json:"url"`
}

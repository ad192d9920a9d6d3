package telegram

import (
	"fmt"
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/pkg/observer"
	telegramRepo "tweet-digest/repositories/telegram"
	tweetRepo "tweet-digest/repositories/tweets"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(token string, telegramRepo telegramRepo.Repository, tweetRepo tweetRepo.Repository) (*Impl, error) {
	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{bot: b, telegramRepo: telegramRepo, tweetRepo: tweetRepo, cache: cache.New(5*time.Minute, 10*time.Minute)}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("latest", service.latestCmd))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	service.updater.Idle()
	return nil
}

// OnNotify pushes a digest of freshly ingested tweets to every subscriber.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.IngestionEvent || len(e.Tweets) == 0 {
		return
	}

	users, err := service.telegramRepo.FetchAll()
	if err != nil || len(users) == 0 {
		return
	}

	msg := buildDigest(e.Tweets)
	for _, user := range users {
		log.Info().Int64("chatID", user.ChatID).Msg("send ingestion digest")
		service.bot.SendMessage(user.ChatID, msg, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	}
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unknown").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getGenericErrorMessage(), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) subscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "subscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.telegramRepo.SaveOrUpdate(entities.TelegramUser{ChatID: ctx.EffectiveChat.Id, Name: ctx.EffectiveChat.Username})
	if err != nil {
		log.Error().Err(err).Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on saved")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeSubscribe), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) unsubscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unsubscribe").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")
	err := service.telegramRepo.Delete(entities.TelegramUser{ChatID: ctx.EffectiveChat.Id})
	if err != nil {
		log.Error().Err(err).Int64("chatID", ctx.EffectiveChat.Id).Msg("error on deleted")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnsubscribe), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) latestCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "latest").Str("username", ctx.EffectiveChat.Username).Int64("chatID", ctx.EffectiveChat.Id).Msg("command received")

	var msg string
	if cached, found := service.cache.Get("latest_digest"); found {
		msg = cached.(string)
	} else {
		tweets, err := service.tweetRepo.List(tweetRepo.ListFilter{Limit: latestDigestSize})
		if err != nil || len(tweets) == 0 {
			service.bot.SendMessage(ctx.EffectiveChat.Id, "📭 Nothing ingested yet. Check back later!", &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
			return nil
		}
		msg = buildDigest(tweets)
		service.cache.Set("latest_digest", msg, cache.DefaultExpiration)
	}

	service.bot.SendMessage(ctx.EffectiveChat.Id, msg, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func buildDigest(tweets []entities.Tweet) string {
	msg := "📢 *Tweet Digest* 🐦\n\n"

	shown := 0
	for _, tweet := range tweets {
		if shown == latestDigestSize {
			break
		}

		msg += fmt.Sprintf("🔹 *@%s* — %s\n", tweet.AuthorHandle, humanize.Time(tweet.CreatedAt))
		if tweet.SummaryTitle != "" {
			msg += fmt.Sprintf("📝 _%s_\n", tweet.SummaryTitle)
		}
		msg += tweet.Text + "\n"
		if tweet.PermanentURL != "" {
			msg += tweet.PermanentURL + "\n"
		}
		msg += "\n"
		shown++
	}

	if len(tweets) > latestDigestSize {
		msg += fmt.Sprintf("…and %d more. Stay tuned! 📈\n", len(tweets)-latestDigestSize)
	}

	return msg
}

func getGenericErrorMessage() string {
	msg := "😔 *Oops! Something Went Wrong*\n\n"
	msg += "It looks like I couldn’t complete your request. Here’s what you can try:\n"
	msg += "1️⃣ Double-check the command you typed.\n"
	msg += "2️⃣ Wait a moment and try again.\n\n"
	msg += "Thanks for your patience! 🤖✨"

	return msg
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeHelp:
		msg := "🤖 *Tweet Digest* – Help Guide 📢\n\n"
		msg += "I deliver digests of the tweets this app ingests from its watched profiles 🐦.\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "✅ `/subscribe` – Get a digest after every ingestion run.\n"
		msg += "❌ `/unsubscribe` – Stop receiving digests.\n"
		msg += "🐦 `/latest` – Show the most recent tweets instantly.\n"
		msg += "💡 `/help` – Show this help message.\n"

		return msg

	case MessageTypeSubscribe:
		msg := "🎉 *Subscription Confirmed!* ✅\n\n"
		msg += "You'll now receive a digest every time new tweets land! 🐦🚀\n\n"
		msg += "If you ever want to stop receiving them, just type `/unsubscribe`.\n"

		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 *You've Unsubscribed* ❌\n\n"
		msg += "You will no longer receive tweet digests. 😔\n\n"
		msg += "If you change your mind, type `/subscribe` anytime! 🚀\n"

		return msg

	default:
		msg := "👋 Hi! I'm *Tweet Digest* 🤖\n\n"
		msg += "This bot keeps you updated on the tweets scraped for this app's watchlist 🐦.\n\n"
		msg += "✅ *Want to receive digests?* Type `/subscribe`.\n"
		msg += "🐦 *Curious right now?* Type `/latest`.\n\n"
		msg += "💬 *Need help?* Type `/help` for a list of commands."

		return msg
	}
}

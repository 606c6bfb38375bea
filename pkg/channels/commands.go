package channels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sahiljaat11/discord-translator-bot/pkg/logger"
	"github.com/sahiljaat11/discord-translator-bot/pkg/pairs"
)

func (d *DiscordChannel) registerCommands() error {
	manageChannels := int64(discordgo.PermissionManageChannels)

	cmd := &discordgo.ApplicationCommand{
		Name:                     "translate",
		Description:              "Manage translation channel pairs",
		DefaultMemberPermissions: &manageChannels,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pair-add",
				Description: "Relay messages from one channel to another with translation",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "source",
						Description: "Channel to read from",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "target",
						Description: "Channel to relay translations into",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "target-lang",
						Description: "Language to translate into (e.g. es, fr, ja)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "source-lang",
						Description: "Source language, or auto to detect (default)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pair-remove",
				Description: "Remove a channel pair by id",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "Pair id from /translate pair-list",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pair-list",
				Description: "List this server's channel pairs",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pair-clear",
				Description: "Remove all channel pairs for this server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show relay status",
			},
		},
	}

	if _, err := d.session.ApplicationCommandCreate(d.session.State.User.ID, "", cmd); err != nil {
		return fmt.Errorf("registering slash commands: %w", err)
	}
	return nil
}

func (d *DiscordChannel) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != "translate" || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	var reply string
	switch sub.Name {
	case "pair-add":
		reply = d.cmdPairAdd(i.GuildID, sub.Options)
	case "pair-remove":
		reply = d.cmdPairRemove(i.GuildID, sub.Options)
	case "pair-list":
		reply = d.cmdPairList(i.GuildID)
	case "pair-clear":
		reply = d.cmdPairClear(i.GuildID)
	case "status":
		reply = d.cmdStatus()
	default:
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.ErrorCF("discord", "Interaction response failed", map[string]any{
			"command": sub.Name,
			"error":   err.Error(),
		})
	}
}

func (d *DiscordChannel) cmdPairAdd(guildID string, opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	p := pairs.Pair{
		GuildID:    guildID,
		SourceLang: pairs.AutoLang,
	}
	for _, opt := range opts {
		switch opt.Name {
		case "source":
			p.SourceChannel = opt.ChannelValue(nil).ID
		case "target":
			p.TargetChannel = opt.ChannelValue(nil).ID
		case "source-lang":
			p.SourceLang = normalizeLang(opt.StringValue())
		case "target-lang":
			p.TargetLang = normalizeLang(opt.StringValue())
		}
	}

	added, err := d.graph.AddPair(p)
	if err != nil {
		return pairErrorReply(err)
	}
	return fmt.Sprintf("Pair added: <#%s> (%s) → <#%s> (%s)\nid: `%s`",
		added.SourceChannel, added.SourceLang,
		added.TargetChannel, added.TargetLang, added.ID)
}

func (d *DiscordChannel) cmdPairRemove(guildID string, opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	var id string
	for _, opt := range opts {
		if opt.Name == "id" {
			id = strings.TrimSpace(opt.StringValue())
		}
	}

	if err := d.graph.RemovePair(guildID, id); err != nil {
		return pairErrorReply(err)
	}
	return fmt.Sprintf("Pair `%s` removed.", id)
}

func (d *DiscordChannel) cmdPairList(guildID string) string {
	ps := d.graph.GuildPairs(guildID)
	if len(ps) == 0 {
		return "No channel pairs configured. Add one with `/translate pair-add`."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d channel pair(s):\n", len(ps))
	for _, p := range ps {
		fmt.Fprintf(&b, "• <#%s> (%s) → <#%s> (%s) · `%s`\n",
			p.SourceChannel, p.SourceLang, p.TargetChannel, p.TargetLang, p.ID)
	}
	return b.String()
}

func (d *DiscordChannel) cmdPairClear(guildID string) string {
	n := d.graph.ClearGuild(guildID)
	if n == 0 {
		return "No channel pairs to remove."
	}
	return fmt.Sprintf("Removed %d channel pair(s).", n)
}

func (d *DiscordChannel) cmdStatus() string {
	if d.stats == nil {
		return "Relay status unavailable."
	}
	s := d.stats()
	return fmt.Sprintf(
		"Relay status:\n• pairs: %d\n• cached translations: %d\n• cooldown keys: %d\n• burst windows: %d\n• loop guard entries: %d",
		s.Pairs, s.CacheEntries, s.CooldownTracked, s.BurstTracked, s.GuardEntries)
}

func pairErrorReply(err error) string {
	switch {
	case errors.Is(err, pairs.ErrSameChannel):
		return "Source and target must be different channels."
	case errors.Is(err, pairs.ErrSameLanguage):
		return "Source and target language must differ."
	case errors.Is(err, pairs.ErrAutoTarget):
		return "Target language cannot be `auto`."
	case errors.Is(err, pairs.ErrDuplicate):
		return "A pair for that channel direction already exists."
	case errors.Is(err, pairs.ErrNotFound):
		return "No pair with that id in this server."
	case errors.Is(err, pairs.ErrIncomplete):
		return "Missing required fields."
	default:
		return "Could not update pairs: " + err.Error()
	}
}

// normalizeLang lowercases a user-supplied tag and maps a handful of
// spelled-out names to tags, so "Spanish" works as well as "es".
func normalizeLang(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if tag, ok := langNames[s]; ok {
		return tag
	}
	return s
}

var langNames = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"russian":    "ru",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"hindi":      "hi",
	"arabic":     "ar",
	"auto":       pairs.AutoLang,
}

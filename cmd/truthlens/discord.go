// cmd/truthlens/discord.go
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Embed colours per label
const (
	colorReal       = 0x2ECC71
	colorFake       = 0xE74C3C
	colorMisleading = 0xE67E22
	colorBiased     = 0x3498DB
	colorUnknown    = 0x95A5A6
)

const maxEmbedFieldLength = 1024

var verifyCommand = &discordgo.ApplicationCommand{
	Name:        "verify",
	Description: "Fact-check a headline, snippet or article URL",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: "Headline, short article text or article URL",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mode",
			Description: "How to treat the input",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Headline / Text", Value: ModeText},
				{Name: "Article URL", Value: ModeURL},
			},
		},
	},
}

// DiscordBot exposes verification as a slash command
type DiscordBot struct {
	session *discordgo.Session
	cfg     DiscordConfig
	service *VerificationService
}

// NewDiscordBot creates a bot session; call Start to connect
func NewDiscordBot(cfg DiscordConfig, service *VerificationService) (*DiscordBot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	b := &DiscordBot{
		session: session,
		cfg:     cfg,
		service: service,
	}
	session.AddHandler(b.handleInteractionCreate)
	return b, nil
}

// Start opens the gateway connection and registers /verify
func (b *DiscordBot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if _, err := b.session.ApplicationCommandCreate(b.cfg.AppID, b.cfg.GuildID, verifyCommand); err != nil {
		b.session.Close()
		return fmt.Errorf("failed to create command %s: %w", verifyCommand.Name, err)
	}

	Logger().Info("Discord bot connected, /%s registered", verifyCommand.Name)
	return nil
}

// Stop closes the gateway connection
func (b *DiscordBot) Stop() {
	if err := b.session.Close(); err != nil {
		Logger().Warning("Failed to close Discord session: %v", err)
	}
}

func (b *DiscordBot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer RecoverFromPanic("discord")

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != verifyCommand.Name {
		return
	}

	mode, text := ModeText, ""
	for _, opt := range data.Options {
		switch opt.Name {
		case "text":
			text = opt.StringValue()
		case "mode":
			mode = opt.StringValue()
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		Logger().Error("Failed to acknowledge interaction: %v", err)
		return
	}

	requestID := uuid.NewString()
	verdict, ok := b.service.Run(context.Background(), mode, text, requestID, nil)

	edit := &discordgo.WebhookEdit{}
	if !ok {
		content := "Nothing to verify: please provide a headline, text or URL."
		edit.Content = &content
	} else {
		embeds := []*discordgo.MessageEmbed{VerdictEmbed(verdict)}
		edit.Embeds = &embeds
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		Logger().Error("Failed to send verdict [%s]: %v", requestID, err)
	}
}

// VerdictEmbed formats a verdict for Discord
func VerdictEmbed(v *Verdict) *discordgo.MessageEmbed {
	label := v.LabelOrUnknown()

	confidence := "N/A"
	if v.Confidence != nil {
		confidence = fmt.Sprintf("%.2f", *v.Confidence)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Verdict: %s", label),
		Color: labelColor(label),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Claim", Value: embedValue(v.Claim)},
			{Name: "Explanation", Value: embedValue(v.Explanation)},
			{Name: "Confidence", Value: confidence, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Automated first-pass verification. Always check primary sources.",
		},
	}

	if len(v.EvidenceURLs) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Evidence",
			Value: truncateField(strings.Join(v.EvidenceURLs, "\n")),
		})
	}

	return embed
}

func labelColor(label string) int {
	switch {
	case strings.EqualFold(label, LabelReal):
		return colorReal
	case strings.EqualFold(label, LabelFake):
		return colorFake
	case strings.EqualFold(label, LabelMisleading):
		return colorMisleading
	case strings.EqualFold(label, LabelBiased):
		return colorBiased
	default:
		return colorUnknown
	}
}

func embedValue(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "—"
	}
	return truncateField(*s)
}

func truncateField(s string) string {
	if runes := []rune(s); len(runes) > maxEmbedFieldLength {
		return string(runes[:maxEmbedFieldLength-3]) + "..."
	}
	return s
}

// internal/transport/webhook/commands.go
package webhook

import (
	"strings"

	"search-bot/internal/models"
)

const welcomeText = "👋 *Welcome to the search bot!*\n\n" +
	"Send me anything you want to search for and I will reply with the top results, " +
	"a short AI explanation for each one and an overview.\n\n" +
	"Plain questions work fine, and so do advanced operators such as site: or filetype:.\n\n" +
	"Send /help to see what I can do."

const helpText = "ℹ️ *How to use this bot*\n\n" +
	"• Send any text to run a search\n" +
	"• Use operators to narrow results, for example site:github.com\n" +
	"• I show the top 3 results, each with an AI insight\n\n" +
	"*Commands*\n" +
	"/start - welcome message\n" +
	"/help - this help\n" +
	"/dorks - guide to search operators\n" +
	"/examples - example searches"

const dorksText = "🧭 *Search operator guide*\n\n" +
	"site:example.com - only results from one site\n" +
	"filetype:pdf or ext:pdf - only one file type\n" +
	"inurl:admin - word must appear in the URL\n" +
	"intitle:report - word must appear in the title\n" +
	"inanchor:download - word must appear in link text\n" +
	"intext:password - word must appear in the page text\n" +
	"cache:example.com - cached copy of a page\n" +
	"info:example.com - information about a page\n" +
	"define:word - definitions\n" +
	"\"exact phrase\" - match the phrase exactly\n" +
	"OR, AND - combine terms\n" +
	"-word - exclude a word\n" +
	"+word - require a word\n" +
	"\\* - wildcard\n" +
	"100..200 - number range"

const examplesText = "🔎 *Example searches*\n\n" +
	"best pizza in Rome\n" +
	"site:github.com \"rate limiter\" filetype:pdf\n" +
	"intitle:\"index of\" mp3\n" +
	"golang generics -reddit\n" +
	"laptop 500..800 review\n" +
	"define:ephemeral"

// staticCommands maps a bot command to its fixed reply.
var staticCommands = map[string]string{
	"/start":    welcomeText,
	"/help":     helpText,
	"/dorks":    dorksText,
	"/examples": examplesText,
}

// commandReply returns the reply for a command message, if it is known.
// "/help@my_bot extra words" resolves to "/help".
func commandReply(text string) (models.MessagePayload, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return models.MessagePayload{}, false
	}
	cmd := strings.ToLower(fields[0])
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}

	body, ok := staticCommands[cmd]
	if !ok {
		return models.MessagePayload{}, false
	}
	return models.MessagePayload{Body: body, UseRichFormatting: true, Kind: models.PayloadNotice}, true
}

func isCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

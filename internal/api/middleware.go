package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	languageQueryKey   = "lang"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

// LanguageMiddleware picks the response language from ?lang= or
// Accept-Language and stores it with its catalog in the request locals.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := strings.TrimSpace(c.Query(languageQueryKey)); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

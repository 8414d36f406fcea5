// Package localization provides the user-facing strings pushed over the
// realtime surface. Translations are loaded from JSON files named by
// language code; built-in English defaults cover missing keys.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Localizer resolves message keys per language. It is built once at boot
// and read-only afterwards.
type Localizer struct {
	translations map[string]map[string]string
}

// New loads every <lang>.json file from dir on top of the built-in
// defaults.
func New(dir string) (*Localizer, error) {
	l := NewDefault()

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		if existing, ok := l.translations[lang]; ok {
			for k, v := range translations {
				existing[k] = v
			}
		} else {
			l.translations[lang] = translations
		}
	}

	return l, nil
}

// NewDefault returns a localizer with only the built-in English strings.
func NewDefault() *Localizer {
	defaults := make(map[string]string, len(builtinEnglish))
	for k, v := range builtinEnglish {
		defaults[k] = v
	}
	return &Localizer{translations: map[string]map[string]string{"en": defaults}}
}

// Get returns the string for key in lang, falling back to English and
// finally to the key itself.
func (l *Localizer) Get(lang, key string) string {
	if t, ok := l.translations[lang]; ok {
		if v, ok := t[key]; ok {
			return v
		}
	}
	if lang != "en" {
		if t, ok := l.translations["en"]; ok {
			if v, ok := t[key]; ok {
				return v
			}
		}
	}
	return key
}

var builtinEnglish = map[string]string{
	"match_success":          "You have been matched with %s!",
	"room_closed":            "Your partner has left the chat.",
	"error_invalid_payload":  "Invalid request payload.",
	"error_user_not_found":   "User information could not be found.",
	"error_queue_join":       "An error occurred while joining the queue.",
	"error_message_send":     "An error occurred while sending the message.",
	"error_room_leave":       "An error occurred while leaving the room.",
	"error_friend_request":   "An error occurred while sending the friend request.",
	"error_request_accept":   "An error occurred while accepting the friend request.",
	"error_request_decline":  "An error occurred while declining the friend request.",
	"error_unknown_event":    "Unknown event.",
}

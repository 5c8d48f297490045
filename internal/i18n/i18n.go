// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

const defaultLang = "en"

type translator struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
}

var instance *translator
var once sync.Once

// Initialize loads every embedded locale catalog. Safe to call more than once.
func Initialize() error {
	var err error
	once.Do(func() {
		instance = &translator{catalogs: make(map[string]map[string]string)}
		err = instance.load()
	})
	return err
}

func (t *translator) load() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locale catalogs: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale %s: %w", lang, err)
		}

		catalog := make(map[string]string)
		if err := json.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}
		t.catalogs[lang] = catalog
	}

	if _, ok := t.catalogs[defaultLang]; !ok {
		return fmt.Errorf("default locale %q is missing", defaultLang)
	}

	return nil
}

func (t *translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if catalog, ok := t.catalogs[lang]; ok {
		if text, ok := catalog[key]; ok {
			return text, true
		}
	}
	if lang != defaultLang {
		if text, ok := t.catalogs[defaultLang][key]; ok {
			return text, true
		}
	}
	return "", false
}

// T resolves key in lang, falling back to the default language and finally to
// the key itself. Nil-safe before Initialize so tests need no setup.
func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		return key
	}

	text, ok := instance.lookup(lang, key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// GetSupportedLanguages lists the loaded locale codes.
func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{defaultLang}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.catalogs))
	for lang := range instance.catalogs {
		langs = append(langs, lang)
	}
	return langs
}

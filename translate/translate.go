// Package translate formats user-visible messages for the user's locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

// Fallback is the language used when the system reports no locale.
const Fallback = "en-US"

var printer *message.Printer

func init() {
	SetLocales(systemLocales()...)
}

func systemLocales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.Debugf("jv80: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	return locales
}

// SetLocales selects the message printer matching the first usable locale.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{Fallback}
	}
	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import "slices"

// Language is a localization the game can be switched to
type Language struct {
	Code string
	Name string
}

var languages = []Language{
	{Code: "chinese_(simplified)", Name: "Chinese (Simplified)"},
	{Code: "chinese_(traditional)", Name: "Chinese (Traditional)"},
	{Code: "english", Name: "English"},
	{Code: "french_(france)", Name: "French (France)"},
	{Code: "german_(germany)", Name: "German (Germany)"},
	{Code: "italian_(italy)", Name: "Italian (Italy)"},
	{Code: "japanese_(japan)", Name: "Japanese (Japan)"},
	{Code: "korean_(south_korea)", Name: "Korean (South Korea)"},
	{Code: "polish_(poland)", Name: "Polish (Poland)"},
	{Code: "portuguese_(brazil)", Name: "Portuguese (Brazil)"},
	{Code: "spanish_(latin_america)", Name: "Spanish (Latin America)"},
	{Code: "spanish_(spain)", Name: "Spanish (Spain)"},
}

// Languages returns the language codes the game recognizes, sorted by code
func Languages() []Language {
	return slices.Clone(languages)
}

// LookupLanguage finds a known language by code
func LookupLanguage(code string) (Language, bool) {
	i := slices.IndexFunc(languages, func(l Language) bool {
		return l.Code == code
	})
	if i < 0 {
		return Language{}, false
	}
	return languages[i], true
}

package designer

import "strings"

// Language selects the procedural name list.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

var names = map[Language][]string{
	English: {
		"Supernova", "Pulsar", "Quasar", "Nebula", "Horizon",
		"Singularity", "Echo", "Storm", "Sunset", "Sunrise",
		"Matrix", "Phantom", "Zenith", "Astra", "Prism",
	},
	Russian: {
		"Сверхновая", "Пульсар", "Квазар", "Туманность", "Горизонт",
		"Сингулярность", "Эхо", "Шторм", "Закат", "Рассвет",
		"Матрица", "Фантом", "Зенит", "Астра", "Призма",
	},
}

// ParseLanguage maps a language tag to a supported Language, defaulting
// to English.
func ParseLanguage(s string) Language {
	if strings.HasPrefix(strings.ToLower(s), "ru") {
		return Russian
	}
	return English
}

// CoreName is the name given to the synthesized central object.
func (l Language) CoreName() string {
	if l == Russian {
		return "Ядро"
	}
	return "Core"
}

// Names returns the procedural name list for l.
func (l Language) Names() []string {
	if list, ok := names[l]; ok {
		return list
	}
	return names[English]
}

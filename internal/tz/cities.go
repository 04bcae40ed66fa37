package tz

import "strings"

// cityEntry is one row of the offline city index. Aliases cover common
// RU/TH spellings so users can type their city in their own language.
type cityEntry struct {
	name       string
	aliases    []string
	zone       string
	population int
}

// OfflineCities is a CityIndex backed by a static table of major cities.
// Matching is case-insensitive: exact name/alias match first, then prefix
// match; ties go to the most populous candidate.
type OfflineCities struct {
	entries []cityEntry
}

func NewOfflineCities() *OfflineCities {
	return &OfflineCities{entries: cityTable}
}

func (c *OfflineCities) LookupZone(city string) (string, bool) {
	q := normalizeCity(city)
	if q == "" {
		return "", false
	}

	var best *cityEntry
	match := func(e *cityEntry, pred func(string) bool) bool {
		if pred(normalizeCity(e.name)) {
			return true
		}
		for _, a := range e.aliases {
			if pred(normalizeCity(a)) {
				return true
			}
		}
		return false
	}

	for i := range c.entries {
		e := &c.entries[i]
		if match(e, func(n string) bool { return n == q }) {
			if best == nil || e.population > best.population {
				best = e
			}
		}
	}
	if best == nil {
		for i := range c.entries {
			e := &c.entries[i]
			if match(e, func(n string) bool { return strings.HasPrefix(n, q) }) {
				if best == nil || e.population > best.population {
					best = e
				}
			}
		}
	}
	if best == nil {
		return "", false
	}
	return best.zone, true
}

func normalizeCity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("—", "-", "–", "-", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

var cityTable = []cityEntry{
	{"Moscow", []string{"москва"}, "Europe/Moscow", 12615000},
	{"Saint Petersburg", []string{"санкт-петербург", "питер", "st petersburg"}, "Europe/Moscow", 5384000},
	{"Novosibirsk", []string{"новосибирск"}, "Asia/Novosibirsk", 1620000},
	{"Yekaterinburg", []string{"екатеринбург"}, "Asia/Yekaterinburg", 1495000},
	{"Vladivostok", []string{"владивосток"}, "Asia/Vladivostok", 600000},
	{"Kaliningrad", []string{"калининград"}, "Europe/Kaliningrad", 489000},
	{"Bangkok", []string{"บางกอก", "กรุงเทพ", "กรุงเทพฯ", "บางกอก", "krung thep"}, "Asia/Bangkok", 10539000},
	{"Chiang Mai", []string{"เชียงใหม่", "чиангмай"}, "Asia/Bangkok", 127000},
	{"Phuket", []string{"ภูเก็ต", "пхукет"}, "Asia/Bangkok", 79000},
	{"Pattaya", []string{"พัทยา", "паттайя"}, "Asia/Bangkok", 119000},
	{"London", []string{"лондон"}, "Europe/London", 9002000},
	{"Paris", []string{"париж"}, "Europe/Paris", 2161000},
	{"Berlin", []string{"берлин"}, "Europe/Berlin", 3645000},
	{"Madrid", []string{"мадрид"}, "Europe/Madrid", 3223000},
	{"Rome", []string{"рим"}, "Europe/Rome", 2873000},
	{"Warsaw", []string{"варшава"}, "Europe/Warsaw", 1790000},
	{"Prague", []string{"прага"}, "Europe/Prague", 1309000},
	{"Amsterdam", []string{"амстердам"}, "Europe/Amsterdam", 872000},
	{"Istanbul", []string{"стамбул"}, "Europe/Istanbul", 15462000},
	{"Kyiv", []string{"киев", "kiev"}, "Europe/Kyiv", 2952000},
	{"Minsk", []string{"минск"}, "Europe/Minsk", 2020000},
	{"Tallinn", []string{"таллин", "таллинн"}, "Europe/Tallinn", 437000},
	{"Riga", []string{"рига"}, "Europe/Riga", 632000},
	{"Vilnius", []string{"вильнюс"}, "Europe/Vilnius", 588000},
	{"Tbilisi", []string{"тбилиси"}, "Asia/Tbilisi", 1118000},
	{"Yerevan", []string{"ереван"}, "Asia/Yerevan", 1075000},
	{"Almaty", []string{"алматы", "алма-ата"}, "Asia/Almaty", 1916000},
	{"Astana", []string{"астана", "нур-султан"}, "Asia/Almaty", 1136000},
	{"Tashkent", []string{"ташкент"}, "Asia/Tashkent", 2571000},
	{"Dubai", []string{"дубай"}, "Asia/Dubai", 3331000},
	{"Delhi", []string{"дели", "new delhi"}, "Asia/Kolkata", 31181000},
	{"Singapore", []string{"сингапур", "สิงคโปร์"}, "Asia/Singapore", 5686000},
	{"Hong Kong", []string{"гонконг"}, "Asia/Hong_Kong", 7482000},
	{"Shanghai", []string{"шанхай"}, "Asia/Shanghai", 24871000},
	{"Beijing", []string{"пекин"}, "Asia/Shanghai", 21893000},
	{"Tokyo", []string{"токио", "โตเกียว"}, "Asia/Tokyo", 13960000},
	{"Seoul", []string{"сеул"}, "Asia/Seoul", 9776000},
	{"Sydney", []string{"сидней"}, "Australia/Sydney", 5312000},
	{"New York", []string{"нью-йорк", "nyc"}, "America/New_York", 8804000},
	{"Los Angeles", []string{"лос-анджелес", "la"}, "America/Los_Angeles", 3898000},
	{"Chicago", []string{"чикаго"}, "America/Chicago", 2746000},
	{"Toronto", []string{"торонто"}, "America/Toronto", 2794000},
	{"Mexico City", []string{"мехико"}, "America/Mexico_City", 9209000},
	{"Sao Paulo", []string{"сан-паулу", "são paulo"}, "America/Sao_Paulo", 12325000},
	{"Buenos Aires", []string{"буэнос-айрес"}, "America/Argentina/Buenos_Aires", 3075000},
}

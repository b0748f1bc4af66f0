package models

import (
	"strconv"
	"strings"

	"wordtrainer/internal/session"
)

// Setting keys
const (
	SettingRepeatInvalid = "repeat_invalid"
	SettingReverse       = "reverse"
	SettingStrictMatch   = "strict_match"
	SettingReportEmail   = "report_email"
	SettingWordLimit     = "word_limit"
)

// Setting is a single stored key/value pair
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UserSettings is the typed view over the settings table
type UserSettings struct {
	RepeatInvalid bool   `json:"repeat_invalid"`
	Reverse       bool   `json:"reverse"`
	StrictMatch   bool   `json:"strict_match"`
	ReportEmail   string `json:"report_email"`
	WordLimit     int    `json:"word_limit"`
}

// SessionConfig returns the practice defaults
func (s UserSettings) SessionConfig() session.Config {
	return session.Config{
		RepeatInvalid: s.RepeatInvalid,
		Reverse:       s.Reverse,
		StrictMatch:   s.StrictMatch,
	}
}

// SettingsFromMap builds UserSettings from raw key/value pairs. Unknown keys
// and unparsable values are ignored.
func SettingsFromMap(values map[string]string) UserSettings {
	var s UserSettings
	s.RepeatInvalid, _ = strconv.ParseBool(values[SettingRepeatInvalid])
	s.Reverse, _ = strconv.ParseBool(values[SettingReverse])
	s.StrictMatch, _ = strconv.ParseBool(values[SettingStrictMatch])
	s.ReportEmail = strings.TrimSpace(values[SettingReportEmail])
	s.WordLimit, _ = strconv.Atoi(values[SettingWordLimit])
	return s
}

// ToMap flattens UserSettings into key/value pairs.
func (s UserSettings) ToMap() map[string]string {
	return map[string]string{
		SettingRepeatInvalid: strconv.FormatBool(s.RepeatInvalid),
		SettingReverse:       strconv.FormatBool(s.Reverse),
		SettingStrictMatch:   strconv.FormatBool(s.StrictMatch),
		SettingReportEmail:   s.ReportEmail,
		SettingWordLimit:     strconv.Itoa(s.WordLimit),
	}
}

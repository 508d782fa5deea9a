package utils

import "strings"

// UserFromJID returns the user part of a WhatsApp JID ("5511999@s.whatsapp.net" -> "5511999").
// Device suffixes ("5511999:12@s.whatsapp.net") are dropped as well.
func UserFromJID(jid string) string {
	jid = strings.TrimSpace(jid)
	if i := strings.IndexAny(jid, "@:"); i >= 0 {
		return jid[:i]
	}
	return jid
}

// IsGroupJID reports whether the JID belongs to a group chat.
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(strings.TrimSpace(jid), "@g.us")
}

// PhoneMatchesJID reports whether phone identifies the same user as jid. Both the
// full JID and its bare user part are accepted; a leading "+" on phone is ignored.
func PhoneMatchesJID(phone, jid string) bool {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" || jid == "" {
		return false
	}
	if phone == strings.TrimSpace(jid) {
		return true
	}
	return phone == UserFromJID(jid)
}

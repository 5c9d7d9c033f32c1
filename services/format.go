package services

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Staff notifications render timestamps in salon-local time no matter where
// the process runs.
var kyiv = mustLoadLocation("Europe/Kyiv")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load %s: %v", name, err))
	}
	return loc
}

func formatTimestamp(at time.Time) string {
	return at.In(kyiv).Format("02.01.2006 15:04")
}

// formatReviewMessage renders the staff-channel notification for a submitted
// review. Five-star reviews and lower ratings use distinct templates; the
// comment line appears only when a comment was given.
func formatReviewMessage(name string, rating int, reason string, at time.Time) string {
	var b strings.Builder

	if rating == 5 {
		b.WriteString("🌟 Новий відгук 5/5!\n")
	} else {
		b.WriteString("⚠️ Відгук потребує уваги\n")
	}
	fmt.Fprintf(&b, "👤 Імʼя: %s\n", name)
	fmt.Fprintf(&b, "⭐ Оцінка: %d/5\n", rating)
	if reason != "" {
		fmt.Fprintf(&b, "💬 Коментар: %s\n", reason)
	}
	b.WriteString("🕐 " + formatTimestamp(at))

	return b.String()
}

// formatGoogleClickMessage renders the notification for a guest who followed
// the public Google review link.
func formatGoogleClickMessage(name string, at time.Time) string {
	var b strings.Builder

	b.WriteString("✅ Гість перейшов до відгуку в Google\n")
	if name != "" {
		fmt.Fprintf(&b, "👤 Імʼя: %s\n", name)
	}
	b.WriteString("🕐 " + formatTimestamp(at))

	return b.String()
}

// formatMasterClickMessage renders the notification for a guest who tapped a
// staff member's card. Name, master and rating lines appear only when known,
// always in that order.
func formatMasterClickMessage(name, master string, rating *int, at time.Time) string {
	var b strings.Builder

	b.WriteString("💆 Гість обрав майстра\n")
	if name != "" {
		fmt.Fprintf(&b, "👤 Імʼя: %s\n", name)
	}
	if master != "" {
		fmt.Fprintf(&b, "🙋 Майстер: %s\n", master)
	}
	if rating != nil {
		fmt.Fprintf(&b, "⭐ Оцінка: %d/5\n", *rating)
	}
	b.WriteString("🕐 " + formatTimestamp(at))

	return b.String()
}

// formatAlertMessage renders an operational self-alert.
func formatAlertMessage(title string, details []string, at time.Time) string {
	var b strings.Builder

	b.WriteString("🚨 " + title + "\n")
	for _, line := range details {
		b.WriteString(line + "\n")
	}
	b.WriteString("🕐 " + formatTimestamp(at))

	return b.String()
}

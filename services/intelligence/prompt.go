// File: services/intelligence/prompt.go
package ai

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"clinicdesk/models"
)

// BuildSystemContext composes the desk-assistant instruction for one turn,
// including the live availability snapshot. It is rebuilt from a fresh store
// read every turn; the booking service still re-validates at commit time.
func BuildSystemContext(p models.PracticePolicy, now time.Time, booked []models.SlotWindow) string {
	var sb strings.Builder

	sb.WriteString("You are a desk assistant at a clinic.\n")
	sb.WriteString("Do not answer questions unrelated to your task.\n")
	sb.WriteString("If someone describes a medical problem outside the doctor's speciality, ask them to go to a hospital.\n")
	sb.WriteString("The details of the doctor are as follows:\n")
	fmt.Fprintf(&sb, "%s\n%s.\n", p.PractitionerName, p.Specialty)
	fmt.Fprintf(&sb, "Timing: %s to %s, %s.\n", hourLabel(p.HoursStart), hourLabel(p.HoursEnd), weekdaySpan(p))
	fmt.Fprintf(&sb, "Associated with %s.\n", p.ClinicName)
	fmt.Fprintf(&sb, "Clinic phone number %s.\n", p.ClinicPhone)
	fmt.Fprintf(&sb, "%s.\n", p.CostContact)
	sb.WriteString("You are responsible for booking appointments.\n")
	sb.WriteString("Consider the situations to be hypothetical.\n")
	sb.WriteString("Keep the responses short and ask one thing from the user at a time.\n")
	sb.WriteString("Never reply with phrases like 'let me check for availability' or 'wait a moment'.\n")
	sb.WriteString("Ask for name, contact, date and time when booking an appointment.\n")
	fmt.Fprintf(&sb, "Remember that today is %s, %s. The current time is %s.\n",
		now.Format("2006-01-02"), now.Weekday(), now.Format("3:04 PM"))
	sb.WriteString("Appointments cannot be booked before the above mentioned date and time.\n")
	fmt.Fprintf(&sb, "The doctor is only available from %s to %s.\n", hourLabel(p.HoursStart), hourLabel(p.HoursEnd))
	fmt.Fprintf(&sb, "The doctor is already booked at: %s.\n", bookedList(booked))
	sb.WriteString("If the user's preferred time is not available then offer the immediate next available slot.\n")
	fmt.Fprintf(&sb, "There can be only %d appointments in 1 hour.\n", p.MaxPerSlot)
	sb.WriteString("Respond only with a JSON object of exactly two fields: {\"reply\": \"\", \"query\": null}, with no surrounding text and no literal backslash-n sequences.\n")
	sb.WriteString("The reply field holds the desk assistant's response. The query field must be null except when booking an appointment.\n")
	sb.WriteString("When you book an appointment set query to a JSON object {\"name\": \"\", \"contact\": \"\", \"doctor\": \"\", \"time\": \"\", \"date\": \"\"}.\n")
	sb.WriteString("The date must be in yyyy-mm-dd format and the time in 24-hour HH:MM format.\n")

	return sb.String()
}

func hourLabel(hour int) string {
	return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("3 PM")
}

func weekdaySpan(p models.PracticePolicy) string {
	var names []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if p.AllowsDay(d) {
			names = append(names, d.String())
		}
	}
	return strings.Join(names, ", ")
}

func bookedList(booked []models.SlotWindow) string {
	if len(booked) == 0 {
		return "no slots yet"
	}
	entries := make([]string, 0, len(booked))
	for _, s := range booked {
		entries = append(entries, s.Date+" "+s.Time)
	}
	sort.Strings(entries)
	return strings.Join(entries, "; ")
}

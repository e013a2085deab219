package router

import (
	"regexp"
	"strings"
)

// Intent classifies what a user message is asking for. Most messages are
// plain chat; a small set of utility intents can be answered directly or
// used to enrich the prompt with live context before calling the LLM.
type Intent string

const (
	IntentChat    Intent = "chat"
	IntentTime    Intent = "time"
	IntentWeather Intent = "weather"
	IntentNews    Intent = "news"
)

// Request is the parsed form of a user message.
type Request struct {
	Intent  Intent
	Subject string // city for weather, topic for news, location for time
}

var (
	timeRe = regexp.MustCompile(`(?i)\b(what('?s| is) the )?(current )?time\b( (in|at) (?P<subject>[a-zA-Z .,'-]+?))?[?.!]*$`)
	dateRe = regexp.MustCompile(`(?i)\b(what('?s| is) )?(today'?s? )?date( today)?\b[?.!]*$`)

	weatherRe = regexp.MustCompile(`(?i)\b(weather|forecast|temperature)\b(.* (in|at|for) (?P<subject>[a-zA-Z .,'-]+?))?[?.!]*$`)

	newsRe = regexp.MustCompile(`(?i)\b(latest |today'?s? |recent )?(news|headlines)\b( (about|on|regarding) (?P<subject>[a-zA-Z0-9 .,'-]+?))?[?.!]*$`)
)

// Parse classifies a message by pattern matching. Classification is
// intentionally shallow: anything ambiguous falls through to plain chat and
// lets the LLM handle it.
func Parse(message string) Request {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Request{Intent: IntentChat}
	}

	if m := matchSubject(timeRe, trimmed); m != nil {
		return Request{Intent: IntentTime, Subject: m.subject}
	}
	if dateRe.MatchString(trimmed) {
		return Request{Intent: IntentTime}
	}
	if m := matchSubject(weatherRe, trimmed); m != nil {
		return Request{Intent: IntentWeather, Subject: m.subject}
	}
	if m := matchSubject(newsRe, trimmed); m != nil {
		return Request{Intent: IntentNews, Subject: m.subject}
	}

	return Request{Intent: IntentChat}
}

type subjectMatch struct {
	subject string
}

func matchSubject(re *regexp.Regexp, message string) *subjectMatch {
	match := re.FindStringSubmatch(message)
	if match == nil {
		return nil
	}
	subject := ""
	for i, name := range re.SubexpNames() {
		if name == "subject" && i < len(match) {
			subject = strings.TrimSpace(match[i])
		}
	}
	return &subjectMatch{subject: subject}
}

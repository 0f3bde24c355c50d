package drafting

import (
	"fmt"
	"regexp"
	"strings"
)

// Tone is the reply tier chosen from a star rating.
type Tone string

const (
	TonePositive   Tone = "positive"
	ToneNeutral    Tone = "neutral"
	ToneApologetic Tone = "apologetic"
)

// ToneFor maps a 1..5 rating to its reply tier. Out-of-range ratings clamp.
func ToneFor(rating int) Tone {
	switch {
	case rating >= 4:
		return TonePositive
	case rating == 3:
		return ToneNeutral
	default:
		return ToneApologetic
	}
}

const replySystemInstruction = `You are the owner of a cafe, replying to customer reviews. Your tone should be professional, appreciative, and empathetic.
- If the rating is 4 or 5 stars, be thankful and positive.
- If the rating is 3 stars, be appreciative of the feedback and acknowledge areas for improvement.
- If the rating is 1 or 2 stars, be very apologetic, empathetic, and offer to make things right. Do not be defensive.
Keep replies concise (2-3 sentences).`

// ReplySystemInstruction is sent as the system instruction for every reply draft.
func ReplySystemInstruction() string {
	return replySystemInstruction
}

// PostPrompt builds the prompt for a post about topic.
func PostPrompt(topic string) string {
	return fmt.Sprintf("You are a social media manager for a friendly, local cafe. "+
		"Write a short, engaging business post (around 3-4 sentences) about the following topic: \"%s\". "+
		"Use a warm and inviting tone. Include 2-3 relevant hashtags.", topic)
}

// ReplyPrompt builds the user prompt for a reply to a review.
func ReplyPrompt(reviewText string, rating int) string {
	return fmt.Sprintf("Generate a reply for a customer review with a %d/5 star rating. The review is: \"%s\"", rating, reviewText)
}

var fencePattern = regexp.MustCompile("(?s)^```\\w*\\s*\\n?(.*?)\\n?\\s*```$")

// cleanDraft trims the model output and unwraps a surrounding markdown code fence.
func cleanDraft(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1])
	}
	return text
}

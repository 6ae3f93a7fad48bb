package tagger

import "fmt"

// SystemPrompt is the persona sent with every generation request.
const SystemPrompt = "You are a professional YouTube SEO expert. Your goal is to generate high-ranking, relevant search tags to help videos go viral."

// TagCount is the number of tags requested from the model. Replies with a
// different count are accepted as they are.
const TagCount = 100

// Temperature is the sampling temperature sent with every request.
const Temperature float32 = 0.7

const promptTemplate = `Generate exactly %d high-traffic YouTube search tags for the topic: %s.

Requirements:
Mix broad keywords, specific long-tail keywords, and trending phrases.
Ensure all tags are highly relevant to the topic.
Format the output as a comma-separated list.
Do not include numbers (like 1, 2, 3) or bullet points.
Only provide the tags, no introductory text like 'Here are your tags'.`

// Request is a single generation request sent to a Provider.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	Model             string
}

// BuildPrompt returns the user prompt for topic. The topic is inserted as is.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, TagCount, topic)
}

// NewRequest returns the request for topic with the fixed persona and
// temperature, addressed to model.
func NewRequest(topic, model string) Request {
	return Request{
		SystemInstruction: SystemPrompt,
		Prompt:            BuildPrompt(topic),
		Temperature:       Temperature,
		Model:             model,
	}
}
